package protocol

import (
	"hash/crc32"
	"math/rand"
	"testing"
)

func TestChecksumIncremental(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	payload := make([]byte, 5000)
	rng.Read(payload)

	want := crc32.ChecksumIEEE(payload)

	// Streaming the payload in packets of any size must yield the same
	// final CRC as checksumming it whole.
	for _, packetSize := range []int{1, 7, 20, 244, 4096, len(payload)} {
		var crc uint32
		for begin := 0; begin < len(payload); begin += packetSize {
			end := begin + packetSize
			if end > len(payload) {
				end = len(payload)
			}
			crc = Checksum(crc, payload[begin:end])
		}
		if crc != want {
			t.Errorf("packet size %d: crc = 0x%08X, want 0x%08X", packetSize, crc, want)
		}
	}

	// Random split points.
	for i := 0; i < 100; i++ {
		split := rng.Intn(len(payload) + 1)
		crc := Checksum(0, payload[:split])
		crc = Checksum(crc, payload[split:])
		if crc != want {
			t.Fatalf("split %d: crc = 0x%08X, want 0x%08X", split, crc, want)
		}
	}
}

func TestChecksumEmpty(t *testing.T) {
	if got := Checksum(0, nil); got != 0 {
		t.Errorf("Checksum(0, nil) = 0x%08X, want 0", got)
	}
}
