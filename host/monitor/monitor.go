// Package monitor consumes the firmware's report stream and derives clock
// quality statistics from it.
package monitor

import (
	"errors"
	"fmt"
	"io"
	"time"

	"tickos/protocol"
)

// Reader extracts frames from a serial byte stream, resynchronizing on
// corruption.
type Reader struct {
	src     io.Reader
	fifo    *protocol.FifoBuffer
	scratch [2 * protocol.FrameMax]byte
	readBuf [256]byte
}

// NewReader wraps src, typically an open serial port.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:  src,
		fifo: protocol.NewFifoBuffer(4096),
	}
}

// Next returns the next valid frame. Bytes in frames that fail their CRC
// are skipped silently; read errors from the underlying stream are
// returned as-is (io.EOF when it ends).
func (r *Reader) Next() (protocol.Frame, error) {
	for {
		n := r.fifo.Peek(r.scratch[:])
		if n > 0 {
			frame, consumed, err := protocol.ScanFrame(r.scratch[:n])
			r.fifo.Discard(consumed)
			if err == nil {
				// The payload aliases the scratch buffer; detach it.
				payload := make([]byte, len(frame.Payload))
				copy(payload, frame.Payload)
				frame.Payload = payload
				return frame, nil
			}
			if !errors.Is(err, protocol.ErrNeedMore) {
				// Resynced past a corrupt byte; scan again.
				continue
			}
		}

		rn, err := r.src.Read(r.readBuf[:])
		if rn > 0 {
			r.fifo.Write(r.readBuf[:rn])
			continue
		}
		if err != nil {
			return protocol.Frame{}, err
		}
	}
}

// Sample pairs a firmware time report with the host wall-clock time it
// arrived at.
type Sample struct {
	Host   time.Time
	Report protocol.TimeReport
}

// DriftStats accumulates samples over a measurement window.
type DriftStats struct {
	samples []Sample
}

// Add records one sample.
func (s *DriftStats) Add(host time.Time, report protocol.TimeReport) {
	s.samples = append(s.samples, Sample{Host: host, Report: report})
}

// Count returns the number of recorded samples.
func (s *DriftStats) Count() int { return len(s.samples) }

// DriftResult summarizes a measurement window.
type DriftResult struct {
	Samples  int
	HostSpan time.Duration
	MCUSpan  time.Duration

	// DriftPPM is how fast the MCU clock runs relative to the host clock,
	// in parts per million. Positive means the MCU runs fast.
	DriftPPM float64

	// Jitter is per-sample deviation from a linear fit between the window
	// endpoints, in microseconds.
	MaxJitterUS  float64
	MeanJitterUS float64
}

// Result computes statistics over the recorded window. Needs at least two
// samples; the MCU span is taken with modular subtraction so a single
// 32-bit wrap inside the window is handled.
func (s *DriftStats) Result() (DriftResult, error) {
	if len(s.samples) < 2 {
		return DriftResult{}, fmt.Errorf("need at least 2 samples, have %d", len(s.samples))
	}

	first := s.samples[0]
	last := s.samples[len(s.samples)-1]

	hostSpan := last.Host.Sub(first.Host)
	if hostSpan <= 0 {
		return DriftResult{}, fmt.Errorf("host clock did not advance over the window")
	}
	mcuSpanUS := last.Report.UptimeUS - first.Report.UptimeUS // modular
	mcuSpan := time.Duration(mcuSpanUS) * time.Microsecond

	driftPPM := (mcuSpan - hostSpan).Seconds() / hostSpan.Seconds() * 1e6

	var maxJitter, sumJitter float64
	for _, sample := range s.samples[1 : len(s.samples)-1] {
		hostElapsed := sample.Host.Sub(first.Host).Seconds()
		expectedUS := hostElapsed * mcuSpan.Seconds() / hostSpan.Seconds() * 1e6
		actualUS := float64(sample.Report.UptimeUS - first.Report.UptimeUS)
		dev := actualUS - expectedUS
		if dev < 0 {
			dev = -dev
		}
		if dev > maxJitter {
			maxJitter = dev
		}
		sumJitter += dev
	}
	meanJitter := 0.0
	if inner := len(s.samples) - 2; inner > 0 {
		meanJitter = sumJitter / float64(inner)
	}

	return DriftResult{
		Samples:      len(s.samples),
		HostSpan:     hostSpan,
		MCUSpan:      mcuSpan,
		DriftPPM:     driftPPM,
		MaxJitterUS:  maxJitter,
		MeanJitterUS: meanJitter,
	}, nil
}
