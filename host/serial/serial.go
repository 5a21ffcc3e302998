// Package serial abstracts the serial link to a board running the tickos
// firmware.
package serial

import (
	"io"
)

// Port is the serial connection the host tool reads report frames from.
// The abstraction keeps the frame scanner testable against an in-memory
// implementation.
type Port interface {
	io.ReadWriteCloser

	// Flush discards any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate; must match the firmware's UART configuration
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the firmware defaults.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
