package protocol

import (
	"errors"
	"testing"
)

func TestTimeReportRoundTrip(t *testing.T) {
	out := NewScratchOutput()
	encoded := EncodeTimeReport(out, 123456, 123456789)

	frame, consumed, err := ScanFrame(encoded)
	if err != nil {
		t.Fatalf("ScanFrame failed: %v", err)
	}
	if consumed != len(encoded) {
		t.Errorf("consumed %d of %d bytes", consumed, len(encoded))
	}

	report, err := DecodeTimeReport(frame)
	if err != nil {
		t.Fatalf("DecodeTimeReport failed: %v", err)
	}
	if report.UptimeMS != 123456 || report.UptimeUS != 123456789 {
		t.Errorf("decoded report = %+v, want ms=123456 us=123456789", report)
	}
}

func TestOneshotFiredRoundTrip(t *testing.T) {
	out := NewScratchOutput()
	encoded := EncodeOneshotFired(out, 7, 500004)

	frame, _, err := ScanFrame(encoded)
	if err != nil {
		t.Fatalf("ScanFrame failed: %v", err)
	}
	fired, err := DecodeOneshotFired(frame)
	if err != nil {
		t.Fatalf("DecodeOneshotFired failed: %v", err)
	}
	if fired.Handle != 7 || fired.AtUS != 500004 {
		t.Errorf("decoded = %+v, want handle=7 at=500004", fired)
	}
}

func TestDebugRoundTrip(t *testing.T) {
	out := NewScratchOutput()
	encoded := EncodeDebug(out, "clock started")

	frame, _, err := ScanFrame(encoded)
	if err != nil {
		t.Fatalf("ScanFrame failed: %v", err)
	}
	text, err := DecodeDebug(frame)
	if err != nil {
		t.Fatalf("DecodeDebug failed: %v", err)
	}
	if text != "clock started" {
		t.Errorf("decoded %q, want %q", text, "clock started")
	}
}

func TestScanFrameSkipsGarbage(t *testing.T) {
	out := NewScratchOutput()
	encoded := EncodeTimeReport(out, 1, 1000)

	buf := append([]byte{0x00, 0x42, 0x13}, encoded...)
	frame, consumed, err := ScanFrame(buf)
	if err != nil {
		t.Fatalf("ScanFrame failed: %v", err)
	}
	if consumed != len(buf) {
		t.Errorf("consumed %d of %d bytes", consumed, len(buf))
	}
	if frame.Type != MsgTimeReport {
		t.Errorf("frame type = %d, want MsgTimeReport", frame.Type)
	}
}

func TestScanFrameIncomplete(t *testing.T) {
	out := NewScratchOutput()
	encoded := EncodeTimeReport(out, 99, 99000)

	_, consumed, err := ScanFrame(encoded[:len(encoded)-2])
	if !errors.Is(err, ErrNeedMore) {
		t.Fatalf("truncated scan = %v, want ErrNeedMore", err)
	}
	if consumed != 0 {
		t.Errorf("truncated scan consumed %d bytes, want 0", consumed)
	}
}

func TestScanFrameBadCRC(t *testing.T) {
	out := NewScratchOutput()
	encoded := EncodeTimeReport(out, 5, 5000)

	corrupted := make([]byte, len(encoded))
	copy(corrupted, encoded)
	corrupted[3] ^= 0xFF

	_, consumed, err := ScanFrame(corrupted)
	if !errors.Is(err, ErrBadCRC) {
		t.Fatalf("corrupted scan = %v, want ErrBadCRC", err)
	}
	if consumed != 1 {
		t.Errorf("corrupted scan consumed %d bytes, want 1 to resync", consumed)
	}
}

func TestScanFrameBadLength(t *testing.T) {
	buf := []byte{FrameSync, 0xFF, 0x01, 0x00, 0x00, 0x00, 0x00}
	_, consumed, err := ScanFrame(buf)
	if !errors.Is(err, ErrBadLength) {
		t.Fatalf("bad length scan = %v, want ErrBadLength", err)
	}
	if consumed != 1 {
		t.Errorf("bad length scan consumed %d bytes, want 1", consumed)
	}
}

func TestScanFrameBackToBack(t *testing.T) {
	out := NewScratchOutput()
	first := EncodeTimeReport(out, 1, 1000)
	buf := append([]byte{}, first...)
	out2 := NewScratchOutput()
	buf = append(buf, EncodeOneshotFired(out2, 1, 2000)...)

	frame, consumed, err := ScanFrame(buf)
	if err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	if frame.Type != MsgTimeReport {
		t.Errorf("first frame type = %d, want MsgTimeReport", frame.Type)
	}

	frame, _, err = ScanFrame(buf[consumed:])
	if err != nil {
		t.Fatalf("second scan failed: %v", err)
	}
	if frame.Type != MsgOneshotFired {
		t.Errorf("second frame type = %d, want MsgOneshotFired", frame.Type)
	}
}

func TestDecodeWrongType(t *testing.T) {
	out := NewScratchOutput()
	encoded := EncodeTimeReport(out, 1, 1000)

	frame, _, err := ScanFrame(encoded)
	if err != nil {
		t.Fatalf("ScanFrame failed: %v", err)
	}
	if _, err := DecodeOneshotFired(frame); !errors.Is(err, ErrWrongType) {
		t.Errorf("DecodeOneshotFired on time report = %v, want ErrWrongType", err)
	}
}
