package dfu

import "time"

// Config holds the session configuration.
type Config struct {
	// ProgressCallback is called after every confirmed checksum (optional)
	ProgressCallback ProgressCallback

	// PacketReceiptNotify is the number of data packets sent between
	// checksum round-trips. Zero disables batching: the checksum is only
	// requested at object boundaries.
	PacketReceiptNotify uint32

	// ChecksumRetries is the number of rewind-and-resend attempts after a
	// checksum mismatch before the object fails
	ChecksumRetries int

	// ResponseTimeout is the bounded wait for each awaited response
	ResponseTimeout time.Duration

	// RequestRetries is the number of times a timed-out request is
	// reissued before the session gives up
	RequestRetries int
}

// defaultConfig returns the default configuration. The packet receipt
// notification value and retry bound are bootloader configuration rather
// than protocol constants, so both are deliberately tunable.
func defaultConfig() Config {
	return Config{
		PacketReceiptNotify: 0,
		ChecksumRetries:     3,
		ResponseTimeout:     5 * time.Second,
		RequestRetries:      3,
	}
}

// Option is a functional option for configuring the Session.
type Option func(*Config)

// WithProgressCallback sets a callback to track transfer progress.
//
// Example:
//
//	session := dfu.New(transport,
//	    dfu.WithProgressCallback(func(p dfu.Progress) {
//	        fmt.Printf("%d/%d bytes\n", p.BytesSent, p.TotalBytes)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithPacketReceiptNotify sets the number of data packets sent between
// checksum round-trips. Zero disables receipt notifications.
//
// Example:
//
//	session := dfu.New(transport, dfu.WithPacketReceiptNotify(10))
func WithPacketReceiptNotify(value uint32) Option {
	return func(c *Config) {
		c.PacketReceiptNotify = value
	}
}

// WithChecksumRetries sets the number of retry attempts after a checksum
// mismatch before the transfer fails.
func WithChecksumRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 0 {
			c.ChecksumRetries = retries
		}
	}
}

// WithResponseTimeout sets the bounded wait for each awaited response.
//
// Example:
//
//	session := dfu.New(transport, dfu.WithResponseTimeout(30*time.Second))
func WithResponseTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ResponseTimeout = timeout
		}
	}
}

// WithRequestRetries sets the number of times a timed-out request is
// reissued before the session gives up.
func WithRequestRetries(retries int) Option {
	return func(c *Config) {
		if retries > 0 {
			c.RequestRetries = retries
		}
	}
}
