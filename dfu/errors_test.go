package dfu

import (
	"strings"
	"testing"

	"github.com/moffa90/go-nrfdfu/protocol"
)

func TestChecksumMismatchError(t *testing.T) {
	err := &ChecksumMismatchError{
		Object:   protocol.ObjectData,
		Offset:   4096,
		Expected: 0x12345678,
		Actual:   0x87654321,
	}

	errMsg := err.Error()

	if !strings.Contains(errMsg, "checksum mismatch") {
		t.Errorf("error message should contain 'checksum mismatch', got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "data") {
		t.Errorf("error message should name the object, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "0x12345678") {
		t.Errorf("error message should contain expected CRC, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "0x87654321") {
		t.Errorf("error message should contain actual CRC, got: %s", errMsg)
	}
}

func TestTimeoutError(t *testing.T) {
	err := &TimeoutError{Request: protocol.OpExecute}

	if !strings.Contains(err.Error(), "0x04") {
		t.Errorf("error message should name the request opcode, got: %s", err)
	}
}
