package protocol

import (
	"errors"
	"fmt"
)

// ResponseError represents a non-success result returned by the bootloader.
type ResponseError struct {
	// Request is the opcode the response answers
	Request OpCode

	// Result is the result code from the response
	Result ResultCode

	// ExtendedError holds the detail byte when Result is ResultExtError
	ExtendedError byte
}

func (e *ResponseError) Error() string {
	if e.Result == ResultExtError {
		return fmt.Sprintf("%s failed: extended error 0x%02X", requestName(e.Request), e.ExtendedError)
	}
	return fmt.Sprintf("%s failed: %s (0x%02X)", requestName(e.Request), resultName(e.Result), byte(e.Result))
}

// UnexpectedResponseError indicates a response answering a different request
// than the one most recently issued. The session runs strict request/reply,
// so this always means host and device are out of sync.
type UnexpectedResponseError struct {
	Expected OpCode
	Actual   OpCode
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("response opcode mismatch: expected %s, got %s",
		requestName(e.Expected), requestName(e.Actual))
}

// IsResponseError returns true if the error is a bootloader result failure.
func IsResponseError(err error) bool {
	var respErr *ResponseError
	return errors.As(err, &respErr)
}

// requestName returns a human-readable name for an opcode.
func requestName(op OpCode) string {
	switch op {
	case OpProtocolVersion:
		return "protocol version"
	case OpCreate:
		return "create object"
	case OpSetPRN:
		return "set receipt notification"
	case OpCalcChecksum:
		return "calculate checksum"
	case OpExecute:
		return "execute object"
	case OpSelect:
		return "select object"
	case OpMTUGet:
		return "get MTU"
	case OpWrite:
		return "write object"
	case OpPing:
		return "ping"
	case OpHardwareVersion:
		return "hardware version"
	case OpFirmwareVersion:
		return "firmware version"
	case OpAbort:
		return "abort"
	default:
		return fmt.Sprintf("opcode 0x%02X", byte(op))
	}
}

// resultName returns a human-readable name for a result code.
func resultName(code ResultCode) string {
	switch code {
	case ResultInvalid:
		return "invalid opcode"
	case ResultSuccess:
		return "success"
	case ResultOpCodeNotSupported:
		return "opcode not supported"
	case ResultInvalidParameter:
		return "invalid parameter"
	case ResultInsufficientResources:
		return "insufficient resources"
	case ResultInvalidObject:
		return "invalid object"
	case ResultUnsupportedType:
		return "unsupported object type"
	case ResultOperationNotPermitted:
		return "operation not permitted"
	case ResultOperationFailed:
		return "operation failed"
	case ResultExtError:
		return "extended error"
	default:
		return fmt.Sprintf("unknown result code 0x%02X", byte(code))
	}
}
