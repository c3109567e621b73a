package protocol

// SelectResponse carries the device-side state of an object slot.
// Returned by the Select command.
type SelectResponse struct {
	// MaxSize is the maximum object size the device accepts for this slot
	MaxSize uint32

	// Offset is the number of bytes the device holds for this slot
	Offset uint32

	// CRC is the CRC32 of the bytes the device holds for this slot
	CRC uint32
}

// ChecksumResponse carries the device-confirmed progress of the current
// object. Returned by the Calculate Checksum command.
type ChecksumResponse struct {
	// Offset is the number of bytes the device has received
	Offset uint32

	// CRC is the CRC32 of the received bytes
	CRC uint32
}
