package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tinygo-org/bluetooth"
)

var adapter = bluetooth.DefaultAdapter

// Secure DFU service (16-bit UUID 0xFE59 on the Bluetooth base UUID) and its
// characteristics.
var (
	serviceUUID    = bluetooth.NewUUID([16]byte{0x00, 0x00, 0xfe, 0x59, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0x80, 0x5f, 0x9b, 0x34, 0xfb})
	controlUUID    = bluetooth.NewUUID([16]byte{0x8e, 0xc9, 0x00, 0x01, 0xf3, 0x15, 0x4f, 0x60, 0x9f, 0xb8, 0x83, 0x88, 0x30, 0xda, 0xea, 0x50})
	dataUUID       = bluetooth.NewUUID([16]byte{0x8e, 0xc9, 0x00, 0x02, 0xf3, 0x15, 0x4f, 0x60, 0x9f, 0xb8, 0x83, 0x88, 0x30, 0xda, 0xea, 0x50})
	buttonlessUUID = bluetooth.NewUUID([16]byte{0x8e, 0xc9, 0x00, 0x03, 0xf3, 0x15, 0x4f, 0x60, 0x9f, 0xb8, 0x83, 0x88, 0x30, 0xda, 0xea, 0x50})
)

// bleTransport exposes an open GATT connection to the bootloader as a DFU
// transport: requests go to the control point characteristic, firmware bytes
// to the data characteristic, and control point notifications are funneled
// into a channel.
//
// There is no explicit teardown: the device drops the connection itself when
// it resets after activating an image, and the buttonless trigger does the
// same.
type bleTransport struct {
	control       bluetooth.DeviceCharacteristic
	data          bluetooth.DeviceCharacteristic
	notifications chan []byte
	packetSize    int
}

func (t *bleTransport) WriteControl(p []byte) error {
	_, err := t.control.WriteWithoutResponse(p)
	return err
}

func (t *bleTransport) WriteData(p []byte) error {
	_, err := t.data.WriteWithoutResponse(p)
	return err
}

func (t *bleTransport) Notifications() <-chan []byte {
	return t.notifications
}

func (t *bleTransport) MTU() int {
	return t.packetSize
}

// onNotify copies a control point notification into the channel. The
// callback must not block, so a full channel drops the frame and lets the
// session's response timeout recover.
func (t *bleTransport) onNotify(buf []byte) {
	frame := make([]byte, len(buf))
	copy(frame, buf)

	select {
	case t.notifications <- frame:
	default:
		log.Warn("Dropping control point notification, channel full")
	}
}

// connect scans for the target device and wires up the DFU characteristics.
// A device found in application mode is switched into bootloader mode
// through the buttonless trigger first, then reconnected.
func connect(name, addr string, conf tomlConfig) (*bleTransport, error) {
	for attempt := 0; ; attempt++ {
		transport, triggered, err := connectOnce(name, addr, conf)
		if err != nil {
			return nil, err
		}
		if !triggered {
			return transport, nil
		}
		if attempt > 0 {
			return nil, errors.New("device did not enter bootloader mode")
		}

		// The device resets and advertises the bootloader shortly after.
		log.Info("Waiting for the bootloader to advertise")
		time.Sleep(time.Second)
	}
}

// connectOnce establishes a single connection attempt. The boolean result
// reports that the buttonless trigger was fired and the caller has to
// reconnect.
func connectOnce(name, addr string, conf tomlConfig) (*bleTransport, bool, error) {
	found, err := scan(name, addr)
	if err != nil {
		return nil, false, err
	}

	logger := log.WithFields(log.Fields{
		"name": found.LocalName(),
		"addr": fmt.Sprint(found.Address),
	})
	logger.Info("Connecting")

	device, err := adapter.Connect(found.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, false, fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil || len(services) == 0 {
		return nil, false, fmt.Errorf("DFU service not found: %w", err)
	}
	service := services[0]

	chars, err := service.DiscoverCharacteristics([]bluetooth.UUID{controlUUID, dataUUID})
	if err == nil && len(chars) == 2 {
		transport := &bleTransport{
			control:       chars[0],
			data:          chars[1],
			notifications: make(chan []byte, 16),
			packetSize:    conf.Dfu.PacketSize,
		}
		if err := transport.control.EnableNotifications(transport.onNotify); err != nil {
			return nil, false, fmt.Errorf("failed to enable control point notifications: %w", err)
		}
		return transport, false, nil
	}

	// The bootloader characteristics are absent, so the device is running
	// its application. The buttonless characteristic lets us reboot it into
	// the bootloader.
	trigger, triggerErr := service.DiscoverCharacteristics([]bluetooth.UUID{buttonlessUUID})
	if triggerErr != nil || len(trigger) == 0 {
		return nil, false, fmt.Errorf("failed to discover DFU characteristics: %w", err)
	}

	logger.Info("Device is in application mode, entering bootloader")
	if err := enterBootloader(trigger[0]); err != nil {
		return nil, false, err
	}

	return nil, true, nil
}

// scan blocks until an advertisement matches the requested name or address.
func scan(name, addr string) (bluetooth.ScanResult, error) {
	var found bluetooth.ScanResult

	err := adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		if !matches(result, name, addr) {
			return
		}
		found = result

		if err := adapter.StopScan(); err != nil {
			log.WithField("error", err).Warn("Could not stop the scan")
		}
	})
	if err != nil {
		return found, fmt.Errorf("scan failed: %w", err)
	}

	return found, nil
}

func matches(result bluetooth.ScanResult, name, addr string) bool {
	if name != "" && result.LocalName() == name {
		return true
	}
	if addr != "" && strings.EqualFold(fmt.Sprint(result.Address), addr) {
		return true
	}
	return false
}

// enterBootloader writes the buttonless trigger and waits for the device to
// acknowledge before it resets into DFU mode.
func enterBootloader(trigger bluetooth.DeviceCharacteristic) error {
	ack := make(chan []byte, 1)
	if err := trigger.EnableNotifications(func(buf []byte) {
		frame := make([]byte, len(buf))
		copy(frame, buf)
		select {
		case ack <- frame:
		default:
		}
	}); err != nil {
		return fmt.Errorf("failed to enable trigger notifications: %w", err)
	}

	if _, err := trigger.WriteWithoutResponse([]byte{0x01}); err != nil {
		return fmt.Errorf("failed to write bootloader trigger: %w", err)
	}

	select {
	case frame := <-ack:
		// Response header, echoed "enter bootloader" opcode, success.
		if len(frame) != 3 || frame[0] != 0x20 || frame[1] != 0x01 || frame[2] != 0x01 {
			return fmt.Errorf("unexpected trigger response % X", frame)
		}
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("no response to bootloader trigger")
	}
}
