package protocol

// ObjectType selects the device-side object slot a transfer operates against.
type ObjectType byte

// Object types per the nRF5 SDK bootloader request handler.
const (
	// ObjectCommand is the init-command (metadata) object slot
	ObjectCommand ObjectType = 0x01

	// ObjectData is the firmware-image object slot
	ObjectData ObjectType = 0x02
)

// String returns a human-readable name for the object type.
func (o ObjectType) String() string {
	switch o {
	case ObjectCommand:
		return "command"
	case ObjectData:
		return "data"
	default:
		return "unknown"
	}
}

// OpCode is a control-point request opcode.
type OpCode byte

// Control-point opcodes per the nRF5 SDK bootloader request handler.
// Only a subset is issued by this library; the rest are listed so responses
// carrying them can be named in errors.
const (
	// OpProtocolVersion queries the DFU protocol version
	OpProtocolVersion OpCode = 0x00

	// OpCreate creates (or re-initializes) a command or data object
	OpCreate OpCode = 0x01

	// OpSetPRN sets the Packet Receipt Notification value
	OpSetPRN OpCode = 0x02

	// OpCalcChecksum requests the current offset and CRC32 of the selected object
	OpCalcChecksum OpCode = 0x03

	// OpExecute executes (commits) the current object
	OpExecute OpCode = 0x04

	// OpSelect selects an object slot and reports its offset, CRC and max size
	OpSelect OpCode = 0x06

	// OpMTUGet queries the serial transport MTU (unused over BLE)
	OpMTUGet OpCode = 0x07

	// OpWrite writes object data over the control channel (unused over BLE)
	OpWrite OpCode = 0x08

	// OpPing pings the bootloader
	OpPing OpCode = 0x09

	// OpHardwareVersion queries the hardware version
	OpHardwareVersion OpCode = 0x0A

	// OpFirmwareVersion queries the firmware version
	OpFirmwareVersion OpCode = 0x0B

	// OpAbort aborts the DFU procedure
	OpAbort OpCode = 0x0C
)

// ResultCode is the status byte carried in every response.
type ResultCode byte

// Result codes per the nRF5 SDK bootloader request handler.
const (
	// ResultInvalid indicates an invalid (uninterpretable) opcode
	ResultInvalid ResultCode = 0x00

	// ResultSuccess indicates the request was executed successfully
	ResultSuccess ResultCode = 0x01

	// ResultOpCodeNotSupported indicates an unsupported opcode
	ResultOpCodeNotSupported ResultCode = 0x02

	// ResultInvalidParameter indicates a missing or malformed request parameter
	ResultInvalidParameter ResultCode = 0x03

	// ResultInsufficientResources indicates the object is too large
	ResultInsufficientResources ResultCode = 0x04

	// ResultInvalidObject indicates the object is invalid or failed verification
	ResultInvalidObject ResultCode = 0x05

	// ResultUnsupportedType indicates an unknown object type
	ResultUnsupportedType ResultCode = 0x07

	// ResultOperationNotPermitted indicates the request is not allowed in this state
	ResultOperationNotPermitted ResultCode = 0x08

	// ResultOperationFailed indicates the request failed
	ResultOperationFailed ResultCode = 0x0A

	// ResultExtError indicates an extended error; the next byte holds the detail
	ResultExtError ResultCode = 0x0B
)

// Response framing constants.
const (
	// ResponseHeader is the marker byte starting every control-point response
	ResponseHeader = 0x60

	// ResponseHeaderSize is the size of the response prefix:
	// HEADER(1) + REQUEST_OPCODE(1) + RESULT(1)
	ResponseHeaderSize = 3

	// ChecksumPayloadSize is the payload size of a CalcChecksum success
	// response: OFFSET(4) + CRC32(4)
	ChecksumPayloadSize = 8

	// SelectPayloadSize is the payload size of a Select success response:
	// MAX_SIZE(4) + OFFSET(4) + CRC32(4)
	SelectPayloadSize = 12
)
