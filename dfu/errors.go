package dfu

import (
	"fmt"

	"github.com/moffa90/go-nrfdfu/protocol"
)

// ChecksumMismatchError indicates the device-reported checksum still
// disagreed with the locally computed one after the retry budget was spent.
type ChecksumMismatchError struct {
	// Object is the object type that failed
	Object protocol.ObjectType

	// Offset is the device-reported offset on the final attempt
	Offset uint32

	// Expected is the locally computed CRC32 of the bytes sent
	Expected uint32

	// Actual is the device-reported CRC32
	Actual uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s object at offset %d: expected 0x%08X, got 0x%08X",
		e.Object, e.Offset, e.Expected, e.Actual)
}

// TimeoutError indicates no response arrived within the configured bound,
// including reissue attempts. Distinct from a received-but-invalid response.
type TimeoutError struct {
	// Request is the opcode that went unanswered
	Request protocol.OpCode
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no response to request 0x%02X within timeout", byte(e.Request))
}
