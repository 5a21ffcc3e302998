package core

// CompareChannel is one compare unit of the system counter. The counter
// hardware raises an interrupt when the running count reaches the
// programmed threshold; software acknowledges the event and re-arms.
// Platform code implements this over the real compare registers.
type CompareChannel interface {
	// WriteCompare sets the threshold for the next compare match.
	WriteCompare(v uint16)

	// EnableInterrupt unmasks the compare-match interrupt for this channel.
	// Idempotent.
	EnableInterrupt()

	// DisableInterrupt masks the compare-match interrupt and clears any
	// pending flag, so a stale match cannot re-fire on the next enable.
	// Idempotent.
	DisableInterrupt()

	// Acknowledge clears the pending compare-match flag. Must be called
	// exactly once per interrupt occurrence, inside the handler.
	Acknowledge()

	// InterruptEnabled reports whether the compare interrupt is unmasked.
	InterruptEnabled() bool
}

// CounterDriver is the abstract interface to the free-running system
// counter. The counter is shared between the periodic clock source and the
// one-shot alarm, each on its own compare channel.
type CounterDriver interface {
	// Start configures the counter's prescaler and lets it run. The
	// counter is shared between both time services, so Start must be
	// idempotent: whichever init path runs second finds the timebase
	// already configured and leaves it alone.
	Start()

	// ReadCount returns a snapshot of the running count. Implementations
	// must read atomically with respect to interrupts when the count is
	// wider than the platform's atomic access width.
	ReadCount() uint16

	// ClockChannel returns the compare channel driving the periodic
	// millisecond interrupt.
	ClockChannel() CompareChannel

	// AlarmChannel returns the compare channel used for one-shot alarms.
	AlarmChannel() CompareChannel
}

// Global singleton used by core code.
var counterDriver CounterDriver

// SetCounterDriver is called by target-specific code to register its driver.
func SetCounterDriver(d CounterDriver) {
	counterDriver = d
}

// MustCounter returns the configured driver or panics if missing.
func MustCounter() CounterDriver {
	if counterDriver == nil {
		panic("counter driver not configured")
	}
	return counterDriver
}
