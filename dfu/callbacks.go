package dfu

import "github.com/moffa90/go-nrfdfu/protocol"

// Progress contains information about the transfer progress of one object.
// Passed to ProgressCallback after every device-confirmed checksum.
type Progress struct {
	// Object is the object type currently being transferred
	Object protocol.ObjectType

	// BytesSent is the number of bytes confirmed by the device so far
	BytesSent uint32

	// TotalBytes is the total payload size for this object type
	TotalBytes uint32
}

// ProgressCallback is called during a transfer to report progress.
// Implementations should return quickly to avoid stalling the stream.
//
// Example:
//
//	session := dfu.New(transport,
//	    dfu.WithProgressCallback(func(p dfu.Progress) {
//	        fmt.Printf("\r%s: %d/%d bytes", p.Object, p.BytesSent, p.TotalBytes)
//	    }),
//	)
type ProgressCallback func(Progress)
