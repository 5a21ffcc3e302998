package protocol

import "errors"

var (
	// ErrNeedMore means the buffer does not yet hold a complete frame.
	ErrNeedMore = errors.New("incomplete frame")

	// ErrBadCRC means a frame-shaped region failed its checksum.
	ErrBadCRC = errors.New("frame CRC mismatch")

	// ErrBadLength means the length byte is outside frame bounds.
	ErrBadLength = errors.New("frame length out of bounds")

	// ErrWrongType means a frame was decoded as the wrong message type.
	ErrWrongType = errors.New("unexpected message type")
)

// Frame is a decoded wire frame: the message type and its raw payload.
type Frame struct {
	Type    byte
	Payload []byte
}

// beginFrame starts a frame in out and returns its start position. The
// length byte is back-patched by endFrame.
func beginFrame(out *ScratchOutput, msgType byte) int {
	start := out.CurPosition()
	out.Output([]byte{FrameSync, 0, msgType})
	return start
}

// endFrame patches the length, appends the CRC and returns the encoded
// frame. The CRC covers the length byte through the last payload byte.
func endFrame(out *ScratchOutput, start int) []byte {
	total := out.CurPosition() - start + FrameTrailer
	out.Update(start+1, byte(total))
	crc := CRC16(out.DataSince(start)[1:])
	out.Output([]byte{byte(crc >> 8), byte(crc)})
	return out.DataSince(start)
}

// EncodeTimeReport writes a MsgTimeReport frame into out and returns the
// encoded bytes, valid until the next use of out.
func EncodeTimeReport(out *ScratchOutput, uptimeMS, uptimeUS uint32) []byte {
	start := beginFrame(out, MsgTimeReport)
	EncodeVLQUint(out, uptimeMS)
	EncodeVLQUint(out, uptimeUS)
	return endFrame(out, start)
}

// EncodeOneshotFired writes a MsgOneshotFired frame into out.
func EncodeOneshotFired(out *ScratchOutput, handle uint16, atUS uint32) []byte {
	start := beginFrame(out, MsgOneshotFired)
	EncodeVLQUint(out, uint32(handle))
	EncodeVLQUint(out, atUS)
	return endFrame(out, start)
}

// EncodeDebug writes a MsgDebug frame carrying msg, truncated to fit.
func EncodeDebug(out *ScratchOutput, msg string) []byte {
	max := FrameMax - FrameHeader - FrameTrailer - 2
	if len(msg) > max {
		msg = msg[:max]
	}
	start := beginFrame(out, MsgDebug)
	EncodeVLQBytes(out, []byte(msg))
	return endFrame(out, start)
}

// ScanFrame locates and verifies the first complete frame in buf.
//
// It returns the frame and the number of bytes consumed, including any
// garbage skipped before the sync byte. On ErrNeedMore the caller should
// keep the unconsumed tail and read more input; on ErrBadLength or
// ErrBadCRC one byte is consumed so the scan can resynchronize.
func ScanFrame(buf []byte) (Frame, int, error) {
	i := 0
	for i < len(buf) && buf[i] != FrameSync {
		i++
	}
	if len(buf)-i < FrameMin {
		return Frame{}, i, ErrNeedMore
	}

	length := int(buf[i+1])
	if length < FrameMin || length > FrameMax {
		return Frame{}, i + 1, ErrBadLength
	}
	if len(buf)-i < length {
		return Frame{}, i, ErrNeedMore
	}

	body := buf[i : i+length]
	crc := uint16(body[length-2])<<8 | uint16(body[length-1])
	if CRC16(body[1:length-2]) != crc {
		return Frame{}, i + 1, ErrBadCRC
	}
	return Frame{Type: body[2], Payload: body[3 : length-2]}, i + length, nil
}

// TimeReport is a decoded MsgTimeReport.
type TimeReport struct {
	UptimeMS uint32
	UptimeUS uint32
}

// DecodeTimeReport decodes f as a MsgTimeReport.
func DecodeTimeReport(f Frame) (TimeReport, error) {
	if f.Type != MsgTimeReport {
		return TimeReport{}, ErrWrongType
	}
	payload := f.Payload
	ms, err := DecodeVLQUint(&payload)
	if err != nil {
		return TimeReport{}, err
	}
	us, err := DecodeVLQUint(&payload)
	if err != nil {
		return TimeReport{}, err
	}
	return TimeReport{UptimeMS: ms, UptimeUS: us}, nil
}

// OneshotFired is a decoded MsgOneshotFired.
type OneshotFired struct {
	Handle uint16
	AtUS   uint32
}

// DecodeOneshotFired decodes f as a MsgOneshotFired.
func DecodeOneshotFired(f Frame) (OneshotFired, error) {
	if f.Type != MsgOneshotFired {
		return OneshotFired{}, ErrWrongType
	}
	payload := f.Payload
	handle, err := DecodeVLQUint(&payload)
	if err != nil {
		return OneshotFired{}, err
	}
	atUS, err := DecodeVLQUint(&payload)
	if err != nil {
		return OneshotFired{}, err
	}
	return OneshotFired{Handle: uint16(handle), AtUS: atUS}, nil
}

// DecodeDebug decodes f as a MsgDebug and returns the carried text.
func DecodeDebug(f Frame) (string, error) {
	if f.Type != MsgDebug {
		return "", ErrWrongType
	}
	payload := f.Payload
	text, err := DecodeVLQBytes(&payload)
	if err != nil {
		return "", err
	}
	return string(text), nil
}
