package protocol

import "encoding/binary"

// CreateRequest builds a Create request for the given object slot.
// Creating an object (re)initializes the device-side buffer for it.
//
// Wire format:
//
//	[OP_CREATE][OBJECT_TYPE][SIZE(4, little-endian)]
func CreateRequest(obj ObjectType, size uint32) []byte {
	req := make([]byte, 6)
	req[0] = byte(OpCreate)
	req[1] = byte(obj)
	binary.LittleEndian.PutUint32(req[2:], size)
	return req
}

// SetPRNRequest builds a Set Packet Receipt Notification request.
// A value of zero disables receipt notifications entirely.
//
// Wire format:
//
//	[OP_SET_PRN][VALUE(4, little-endian)]
func SetPRNRequest(value uint32) []byte {
	req := make([]byte, 5)
	req[0] = byte(OpSetPRN)
	binary.LittleEndian.PutUint32(req[1:], value)
	return req
}

// ChecksumRequest builds a Calculate Checksum request. The response carries
// the device-side offset and running CRC32 of the selected object.
func ChecksumRequest() []byte {
	return []byte{byte(OpCalcChecksum)}
}

// ExecuteRequest builds an Execute request, committing the current object.
// For a command object this activates the init metadata; for a data object
// it writes the received bytes to flash.
func ExecuteRequest() []byte {
	return []byte{byte(OpExecute)}
}

// SelectRequest builds a Select request for the given object slot.
//
// Wire format:
//
//	[OP_SELECT][OBJECT_TYPE]
func SelectRequest(obj ObjectType) []byte {
	return []byte{byte(OpSelect), byte(obj)}
}
