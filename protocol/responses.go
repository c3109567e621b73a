package protocol

import (
	"encoding/binary"
	"fmt"
)

// ParseResponse validates a control-point response frame against the request
// it answers and returns the payload bytes following the response prefix.
//
// Response frame structure:
//
//	[0x60][REQUEST_OPCODE][RESULT][PAYLOAD...]
//
// A frame answering a different opcode yields an *UnexpectedResponseError;
// a non-success result yields a *ResponseError.
func ParseResponse(frame []byte, request OpCode) ([]byte, error) {
	if len(frame) < ResponseHeaderSize {
		return nil, fmt.Errorf("response too short: got %d bytes, minimum is %d", len(frame), ResponseHeaderSize)
	}

	if frame[0] != ResponseHeader {
		return nil, fmt.Errorf("invalid response header: got 0x%02X, expected 0x%02X", frame[0], ResponseHeader)
	}

	if OpCode(frame[1]) != request {
		return nil, &UnexpectedResponseError{Expected: request, Actual: OpCode(frame[1])}
	}

	result := ResultCode(frame[2])
	if result != ResultSuccess {
		respErr := &ResponseError{Request: request, Result: result}
		if result == ResultExtError && len(frame) > ResponseHeaderSize {
			respErr.ExtendedError = frame[ResponseHeaderSize]
		}
		return nil, respErr
	}

	return frame[ResponseHeaderSize:], nil
}

// ParseSelectResponse parses the payload of a successful Select response.
//
// Payload format (SelectPayloadSize bytes, little-endian):
//
//	[MAX_SIZE(4)][OFFSET(4)][CRC32(4)]
func ParseSelectResponse(payload []byte) (*SelectResponse, error) {
	if len(payload) != SelectPayloadSize {
		return nil, fmt.Errorf("invalid payload length for Select response: got %d bytes, expected %d", len(payload), SelectPayloadSize)
	}

	return &SelectResponse{
		MaxSize: binary.LittleEndian.Uint32(payload[0:4]),
		Offset:  binary.LittleEndian.Uint32(payload[4:8]),
		CRC:     binary.LittleEndian.Uint32(payload[8:12]),
	}, nil
}

// ParseChecksumResponse parses the payload of a successful Calculate
// Checksum response.
//
// Payload format (ChecksumPayloadSize bytes, little-endian):
//
//	[OFFSET(4)][CRC32(4)]
func ParseChecksumResponse(payload []byte) (*ChecksumResponse, error) {
	if len(payload) != ChecksumPayloadSize {
		return nil, fmt.Errorf("invalid payload length for Checksum response: got %d bytes, expected %d", len(payload), ChecksumPayloadSize)
	}

	return &ChecksumResponse{
		Offset: binary.LittleEndian.Uint32(payload[0:4]),
		CRC:    binary.LittleEndian.Uint32(payload[4:8]),
	}, nil
}
