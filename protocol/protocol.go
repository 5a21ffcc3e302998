// Package protocol implements the time-report wire format the firmware
// streams to the host: a sync byte, a length, a message type, VLQ-encoded
// fields and a CRC16 trailer.
package protocol

// Version identifies the firmware protocol revision.
const Version = "0.1.0"

// Frame layout constants.
const (
	FrameSync = 0x7E // start-of-frame marker

	FrameMax     = 64 // largest encoded frame
	FrameMin     = 5  // sync + length + type + CRC
	FrameHeader  = 3  // sync, length, type
	FrameTrailer = 2  // CRC16, big-endian
)

// Message types carried in a frame.
const (
	MsgTimeReport   = 0x01 // fields: uptime ms, uptime us
	MsgOneshotFired = 0x02 // fields: handle, fire time us
	MsgDebug        = 0x03 // fields: length-prefixed text
)
