package protocol

import "hash/crc32"

// Checksum returns the running CRC32 of data continued from a previous
// value. The bootloader uses the IEEE polynomial with a zero initial value,
// so the checksum of a payload streamed in arbitrary chunks equals the
// checksum of the payload as a whole.
func Checksum(prev uint32, data []byte) uint32 {
	return crc32.Update(prev, crc32.IEEETable, data)
}
