package core

import "errors"

// Timebase configuration for the system counter. These are build-time
// constants: the counter hardware is clocked from the CPU clock through a
// fixed prescaler, and every time conversion in the firmware derives from
// this pair.
const (
	// CPUFreq is the core clock in Hz.
	CPUFreq = 16000000

	// CPUFreqMHz is the core clock in MHz, kept separate so microsecond
	// conversions stay in 32-bit range.
	CPUFreqMHz = CPUFreq / 1000000

	// Prescaler divides the CPU clock before it reaches the counter.
	Prescaler = 64
)

// Derived timebase constants.
const (
	// TickPeriodUS is the duration of one counter tick in microseconds.
	// With a prescaler at or above CPUFreqMHz each tick spans whole
	// microseconds; finer delays are not resolvable.
	TickPeriodUS = Prescaler / CPUFreqMHz

	// TicksPerMS is the number of counter ticks in one millisecond. This is
	// the re-arm step of the periodic clock interrupt.
	TicksPerMS = CPUFreq / (1000 * Prescaler)

	// MaxIntervalTicks is the longest compare interval the 16-bit counter
	// can represent in a single cycle.
	MaxIntervalTicks = 0xFFFF

	// MaxIntervalUS is MaxIntervalTicks expressed in microseconds.
	MaxIntervalUS = MaxIntervalTicks * Prescaler / CPUFreqMHz

	// MaxScheduleUS is the longest one-shot delay that can be accepted.
	// USecToTicks multiplies before dividing, so delays above this would
	// overflow the 32-bit intermediate product.
	MaxScheduleUS = 0xFFFFFFFF / CPUFreqMHz
)

// ErrRange reports a time value outside the representable span of the
// timebase, or a frequency/prescaler pair that does not divide cleanly.
var ErrRange = errors.New("time value outside representable range")

// MSecToTicks converts milliseconds to counter ticks.
// Multiplies by the full clock frequency first; only safe for the small
// interval arguments the clock source uses.
func MSecToTicks(msec uint32) uint32 {
	return (msec * CPUFreq) / (1000 * Prescaler)
}

// USecToTicks converts microseconds to counter ticks. Division truncates:
// arguments not divisible by TickPeriodUS lose the remainder.
func USecToTicks(usec uint32) uint32 {
	return (usec * CPUFreqMHz) / Prescaler
}

// TicksToUSec converts counter ticks to microseconds.
func TicksToUSec(ticks uint32) uint32 {
	return ticks * Prescaler / CPUFreqMHz
}

// ValidateTimebase checks that the configured frequency/prescaler pair
// yields an integer tick period and an integer tick count per millisecond.
// Called once during clock bring-up; a failure here means the build
// constants are wrong, not that the hardware misbehaved.
func ValidateTimebase() error {
	if CPUFreqMHz == 0 || TickPeriodUS == 0 {
		return ErrRange
	}
	if Prescaler%CPUFreqMHz != 0 {
		return ErrRange
	}
	if CPUFreq%(1000*Prescaler) != 0 {
		return ErrRange
	}
	return nil
}
