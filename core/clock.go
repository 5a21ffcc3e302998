package core

// Monotonic system clock.
//
// The clock is driven by a periodic compare-match interrupt on the shared
// system counter: every TicksPerMS ticks the handler bumps a 32-bit
// millisecond accumulator and re-arms the next threshold. Microsecond reads
// combine the accumulator with the sub-millisecond part of the live count.
//
// All arithmetic is unsigned and modular. The accumulator wraps after
// roughly 49.7 days; callers compare timestamps with modular subtraction
// (ElapsedMS/ElapsedUS), never with direct ordering across a wrap.

var (
	// accumulatedMS is advanced only by the compare-match handler.
	accumulatedMS uint32

	// clockMatch is the threshold of the most recent clock compare match.
	// The next threshold is always clockMatch + TicksPerMS: re-arming from
	// the previous threshold rather than the live count keeps interrupt
	// latency from accumulating as drift.
	clockMatch uint16

	clockRunning bool
)

// InitClockSource validates the timebase, starts the shared counter and
// arms the periodic millisecond interrupt. Must be called exactly once
// before any time read.
func InitClockSource() error {
	if err := ValidateTimebase(); err != nil {
		return err
	}
	d := MustCounter()
	d.Start()

	ch := d.ClockChannel()
	state := disableInterrupts()
	accumulatedMS = 0
	clockMatch = d.ReadCount()
	ch.WriteCompare(clockMatch + TicksPerMS)
	ch.EnableInterrupt()
	clockRunning = true
	restoreInterrupts(state)
	return nil
}

// ClockTick services the clock channel's compare match. Target code calls
// this from the interrupt vector; it must not be called from foreground
// code.
func ClockTick() {
	ch := MustCounter().ClockChannel()
	ch.Acknowledge()
	if !clockRunning {
		// Match latched before the clock was armed; drop it.
		ch.DisableInterrupt()
		return
	}
	accumulatedMS++
	clockMatch += TicksPerMS
	ch.WriteCompare(clockMatch + TicksPerMS)
}

// NowMS returns milliseconds since InitClockSource, modulo 2^32.
func NowMS() uint32 {
	state := disableInterrupts()
	ms := accumulatedMS
	restoreInterrupts(state)
	return ms
}

// NowUS returns microseconds since InitClockSource, modulo 2^32.
//
// The accumulator and the hardware count are sampled in the same critical
// section; sampling them separately would race the count across a
// millisecond boundary and mis-report by up to a tick. If the count has
// already passed the next threshold while its interrupt is held off, the
// pending millisecond is folded in here so consecutive reads stay
// non-decreasing.
func NowUS() uint32 {
	state := disableInterrupts()
	ms := accumulatedMS
	sub := MustCounter().ReadCount() - clockMatch
	restoreInterrupts(state)

	for sub >= TicksPerMS {
		ms++
		sub -= TicksPerMS
	}
	return ms*1000 + uint32(sub)*TickPeriodUS
}

// ElapsedMS returns the milliseconds elapsed since an earlier NowMS value,
// correct across a single accumulator wrap.
func ElapsedMS(since uint32) uint32 {
	return NowMS() - since
}

// ElapsedUS returns the microseconds elapsed since an earlier NowUS value,
// correct across a single accumulator wrap.
func ElapsedUS(since uint32) uint32 {
	return NowUS() - since
}
