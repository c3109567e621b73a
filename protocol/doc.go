// Package protocol implements the wire format of the nRF Secure DFU
// control point.
//
// Requests are a single opcode byte followed by a little-endian payload.
// Every request is answered by exactly one notification on the control
// characteristic, prefixed with the 0x60 response header, the echoed
// request opcode and a result code. Select and Calculate Checksum success
// responses additionally carry the device-side offset and running CRC32
// (Select also prepends the maximum object size).
//
// Request builders return frames ready to write to the control
// characteristic:
//
//	frame := protocol.CreateRequest(protocol.ObjectData, uint32(len(chunk)))
//
// Response parsing is split in two steps: ParseResponse validates the
// prefix against the issued opcode and strips it, and the per-command
// parsers decode the remaining payload:
//
//	payload, err := protocol.ParseResponse(notification, protocol.OpSelect)
//	if err != nil {
//	    return err
//	}
//	sel, err := protocol.ParseSelectResponse(payload)
//
// The package carries no transport or session state; it only encodes and
// decodes bytes.
package protocol
