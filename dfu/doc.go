// Package dfu implements the nRF Secure DFU session: the state machine
// that brings a bootloader's command and data objects in sync with a
// transfer unit and commits them.
//
// # Overview
//
// For each object the session performs, in order:
//   - Select, to learn the device-side offset, CRC32 and max object size
//   - Create, unless the device already holds a matching prefix
//   - streaming of data packets, batched by the packet receipt
//     notification value, each batch confirmed by a checksum round-trip
//   - Execute, committing the object
//
// Device state discovered through Select is authoritative: a transfer
// interrupted at any point resumes from the last device-confirmed offset
// on the next run, and an object already fully present is not re-streamed.
//
// # Basic Usage
//
//	pkg, err := nrfpkg.Parse("app_dfu_package.zip")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session := dfu.New(transport) // transport wraps an open BLE connection
//	for _, unit := range pkg.Units {
//	    if err := session.Run(ctx, unit); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Configuration
//
// The packet receipt notification value, checksum retry bound and response
// timeout are bootloader configuration defaults rather than protocol
// constants; all are adjustable through functional options:
//
//	session := dfu.New(transport,
//	    dfu.WithPacketReceiptNotify(10),
//	    dfu.WithChecksumRetries(5),
//	    dfu.WithResponseTimeout(30*time.Second),
//	)
//
// # Transport Independence
//
// The session does not implement BLE. Callers provide a Transport wrapping
// the connection's control and data characteristics, which also makes the
// session testable against an in-memory bootloader.
package dfu
