package dfu

// Transport is the BLE capability a Session consumes. Implementations wrap
// an open GATT connection with the DFU service discovered; the session
// never touches adapter setup, scanning or reconnection.
type Transport interface {
	// WriteControl writes a request to the DFU control point characteristic.
	WriteControl(p []byte) error

	// WriteData writes a packet to the DFU data characteristic.
	WriteData(p []byte) error

	// Notifications returns the stream of control point notifications in
	// arrival order. The channel lives for the connection's duration and
	// is not restartable.
	Notifications() <-chan []byte

	// MTU returns the maximum data characteristic write size in bytes.
	MTU() int
}
