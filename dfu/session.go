package dfu

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/moffa90/go-nrfdfu/nrfpkg"
	"github.com/moffa90/go-nrfdfu/protocol"
)

// Session drives the Secure DFU procedure for transfer units over an open
// transport. It issues one protocol step at a time, suspends until the
// matching control point notification arrives, and resumes; only data
// packet writes are sent back-to-back, bounded by the packet receipt
// notification value.
//
// A Session holds no per-transfer state between Run calls and is not safe
// for concurrent use against the same transport.
type Session struct {
	transport Transport
	config    Config
}

// New creates a Session on the given transport.
//
// Example:
//
//	session := dfu.New(transport,
//	    dfu.WithPacketReceiptNotify(10),
//	    dfu.WithProgressCallback(progressFunc),
//	)
func New(transport Transport, opts ...Option) *Session {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		transport: transport,
		config:    cfg,
	}
}

// Run transfers one unit to completion: the packet receipt notification
// value is negotiated, then the init command is transferred as the command
// object and the firmware image as the data object. Executing the final
// data object commits the image and may reboot the device; reconnecting
// afterwards is the caller's responsibility.
//
// Run may be aborted through the context between protocol steps. A
// subsequent Run against the same connection re-Selects and resumes from
// the device-confirmed offset.
func (s *Session) Run(ctx context.Context, unit nrfpkg.TransferUnit) error {
	if err := unit.CheckValid(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"image":          unit.Kind,
		"init_bytes":     len(unit.InitData),
		"firmware_bytes": len(unit.FirmwareData),
	}).Info("Starting DFU transfer")

	if _, err := s.request(ctx, protocol.SetPRNRequest(s.config.PacketReceiptNotify), protocol.OpSetPRN); err != nil {
		return fmt.Errorf("set packet receipt notification: %w", err)
	}

	if err := s.transfer(ctx, protocol.ObjectCommand, unit.InitData); err != nil {
		return fmt.Errorf("init command: %w", err)
	}
	if err := s.transfer(ctx, protocol.ObjectData, unit.FirmwareData); err != nil {
		return fmt.Errorf("firmware image: %w", err)
	}

	log.WithField("image", unit.Kind).Info("DFU transfer complete")
	return nil
}

// transfer brings the device-side object slot in sync with payload and
// commits it. Payloads larger than the device-advertised max object size
// span multiple created objects, each streamed, checksummed and executed
// in turn.
func (s *Session) transfer(ctx context.Context, obj protocol.ObjectType, payload []byte) error {
	sel, err := s.selectObject(ctx, obj)
	if err != nil {
		return err
	}
	if sel.MaxSize == 0 {
		return fmt.Errorf("device advertised zero max object size")
	}

	total := uint32(len(payload))
	offset, crc := sel.Offset, sel.CRC

	// The device-reported state is authoritative, but only trust it when
	// it matches a prefix of the local payload; otherwise the device holds
	// bytes from some other image and the transfer starts over.
	if offset > total || (offset > 0 && crc != protocol.Checksum(0, payload[:offset])) {
		log.WithFields(log.Fields{
			"object": obj,
			"offset": offset,
		}).Warn("Device object does not match local data, restarting transfer")
		offset, crc = 0, 0
	}
	s.reportProgress(obj, offset, total)

	if offset == total {
		// Fully streamed by an earlier run. Executing again commits a
		// pending object and is accepted by the device if the object was
		// already executed.
		log.WithField("object", obj).Info("Object already transferred, skipping streaming")
		return s.execute(ctx)
	}

	for offset < total {
		if err := ctx.Err(); err != nil {
			return err
		}

		begin := offset - offset%sel.MaxSize
		end := begin + sel.MaxSize
		if end > total {
			end = total
		}

		if offset == begin {
			if _, err := s.request(ctx, protocol.CreateRequest(obj, end-begin), protocol.OpCreate); err != nil {
				return fmt.Errorf("create object: %w", err)
			}
		}
		// A mid-object offset means the object was created by an earlier
		// run; only the unconfirmed tail is streamed.

		offset, crc, err = s.streamObject(ctx, obj, payload, begin, offset, crc, end)
		if err != nil {
			return err
		}
		if err := s.execute(ctx); err != nil {
			return err
		}
	}

	return nil
}

// streamObject writes payload[offset:end] to the data characteristic,
// confirming progress with checksum round-trips after every packet receipt
// notification batch and at the object boundary. On mismatch it rewinds to
// the device-confirmed offset (recreating the object when even that
// diverged) until the retry budget is spent. Returns the device-confirmed
// offset and running CRC, which equal end and its prefix CRC on success.
func (s *Session) streamObject(ctx context.Context, obj protocol.ObjectType, payload []byte, begin, offset, crc, end uint32) (uint32, uint32, error) {
	mtu := s.transport.MTU()
	if mtu <= 0 {
		return 0, 0, fmt.Errorf("transport reports invalid MTU %d", mtu)
	}

	pos, posCRC := offset, crc // bytes written, possibly unconfirmed
	retries := 0
	var batched uint32 // packets sent since the last checksum round-trip

	for {
		for pos < end && (s.config.PacketReceiptNotify == 0 || batched < s.config.PacketReceiptNotify) {
			if err := ctx.Err(); err != nil {
				return 0, 0, err
			}

			next := pos + uint32(mtu)
			if next > end {
				next = end
			}
			if err := s.transport.WriteData(payload[pos:next]); err != nil {
				return 0, 0, fmt.Errorf("write data packet: %w", err)
			}
			posCRC = protocol.Checksum(posCRC, payload[pos:next])
			pos = next
			batched++
		}

		resp, err := s.checksum(ctx)
		if err != nil {
			return 0, 0, err
		}
		batched = 0

		if resp.Offset == pos && resp.CRC == posCRC {
			offset, crc = pos, posCRC
			s.reportProgress(obj, offset, uint32(len(payload)))
			if pos == end {
				return offset, crc, nil
			}
			continue
		}

		retries++
		log.WithFields(log.Fields{
			"object":    obj,
			"sent":      pos,
			"confirmed": resp.Offset,
			"attempt":   retries,
		}).Warn("Checksum mismatch, rewinding to confirmed offset")

		if retries > s.config.ChecksumRetries {
			return 0, 0, &ChecksumMismatchError{
				Object:   obj,
				Offset:   resp.Offset,
				Expected: posCRC,
				Actual:   resp.CRC,
			}
		}

		if resp.Offset >= begin && resp.Offset <= pos && resp.CRC == protocol.Checksum(0, payload[:resp.Offset]) {
			// Re-stream only the bytes after the confirmed prefix.
			pos, posCRC = resp.Offset, resp.CRC
		} else {
			// The device buffer diverged beyond recovery; recreate the
			// object and stream it from its start.
			if _, err := s.request(ctx, protocol.CreateRequest(obj, end-begin), protocol.OpCreate); err != nil {
				return 0, 0, fmt.Errorf("recreate object: %w", err)
			}
			pos = begin
			posCRC = protocol.Checksum(0, payload[:begin])
		}
	}
}

// selectObject issues Select and decodes the device-side object state.
func (s *Session) selectObject(ctx context.Context, obj protocol.ObjectType) (*protocol.SelectResponse, error) {
	payload, err := s.request(ctx, protocol.SelectRequest(obj), protocol.OpSelect)
	if err != nil {
		return nil, fmt.Errorf("select object: %w", err)
	}

	sel, err := protocol.ParseSelectResponse(payload)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"object":   obj,
		"max_size": sel.MaxSize,
		"offset":   sel.Offset,
		"crc":      fmt.Sprintf("0x%08X", sel.CRC),
	}).Debug("Selected object")

	return sel, nil
}

// checksum issues Calculate Checksum and decodes the confirmed progress.
func (s *Session) checksum(ctx context.Context) (*protocol.ChecksumResponse, error) {
	payload, err := s.request(ctx, protocol.ChecksumRequest(), protocol.OpCalcChecksum)
	if err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	return protocol.ParseChecksumResponse(payload)
}

// execute commits the current object.
func (s *Session) execute(ctx context.Context) error {
	if _, err := s.request(ctx, protocol.ExecuteRequest(), protocol.OpExecute); err != nil {
		return fmt.Errorf("execute object: %w", err)
	}
	return nil
}

// request writes a control request and awaits its matching response,
// reissuing the request when the response times out. At most one request
// is outstanding at any time.
func (s *Session) request(ctx context.Context, req []byte, op protocol.OpCode) ([]byte, error) {
	for attempt := 0; attempt < s.config.RequestRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := s.transport.WriteControl(req); err != nil {
			return nil, fmt.Errorf("write control request: %w", err)
		}

		frame, err := s.await(ctx, op)
		if err == nil {
			return protocol.ParseResponse(frame, op)
		}

		var timeout *TimeoutError
		if !errors.As(err, &timeout) {
			return nil, err
		}
		log.WithFields(log.Fields{
			"request": fmt.Sprintf("0x%02X", byte(op)),
			"attempt": attempt + 1,
		}).Debug("Response timed out, reissuing request")
	}

	return nil, &TimeoutError{Request: op}
}

// await suspends until the next control point notification, the response
// timeout, or cancellation.
func (s *Session) await(ctx context.Context, op protocol.OpCode) ([]byte, error) {
	timer := time.NewTimer(s.config.ResponseTimeout)
	defer timer.Stop()

	select {
	case frame, ok := <-s.transport.Notifications():
		if !ok {
			return nil, fmt.Errorf("notification stream closed")
		}
		return frame, nil
	case <-timer.C:
		return nil, &TimeoutError{Request: op}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// reportProgress calls the progress callback if configured.
func (s *Session) reportProgress(obj protocol.ObjectType, sent, total uint32) {
	if s.config.ProgressCallback != nil {
		s.config.ProgressCallback(Progress{
			Object:     obj,
			BytesSent:  sent,
			TotalBytes: total,
		})
	}
}
