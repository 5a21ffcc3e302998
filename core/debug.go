package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures a timing-critical event for post-mortem analysis
type TimingEvent struct {
	Code  uint8  // Event type code
	Clock uint32 // Millisecond clock at event
	Arg1  uint32 // Context-dependent value
	Arg2  uint32 // Context-dependent value
}

// Event type codes
const (
	EvtOneshotArm    = 1 // one-shot armed (arg1=handle, arg2=total ticks)
	EvtOneshotRearm  = 2 // full interval elapsed, re-armed (arg2=intervals left)
	EvtOneshotFire   = 3 // callback fired
	EvtOneshotCancel = 4 // one-shot canceled
)

const (
	// TimingRingSize is the number of events kept for post-mortem.
	TimingRingSize = 32
)

var (
	// debugPrintln is the global debug print function. Target code can
	// point it at a UART; no-op by default.
	debugPrintln DebugWriter = func(s string) {}

	debugEnabled bool

	// Timing capture ring. Written from interrupt context, so it must
	// never block or allocate.
	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output. Disabled by default so
// it cannot perturb timing.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// recordTimingEvent appends an event to the capture ring. Safe to call from
// interrupt context.
func recordTimingEvent(code uint8, arg1, arg2 uint32) {
	timingRing[timingRingHead%TimingRingSize] = TimingEvent{
		Code:  code,
		Clock: accumulatedMS,
		Arg1:  arg1,
		Arg2:  arg2,
	}
	timingRingHead++
}

// TimingEvents returns a snapshot of the capture ring, oldest first. Zero
// entries (never written) are skipped.
func TimingEvents() []TimingEvent {
	state := disableInterrupts()
	ring := timingRing
	head := timingRingHead
	restoreInterrupts(state)

	out := make([]TimingEvent, 0, TimingRingSize)
	for i := uint8(0); i < TimingRingSize; i++ {
		ev := ring[(head+i)%TimingRingSize]
		if ev.Code != 0 {
			out = append(out, ev)
		}
	}
	return out
}

// debugPrint emits s through the registered writer when debugging is on.
func debugPrint(s string) {
	if debugEnabled {
		debugPrintln(s)
	}
}

// DumpTimingEvents writes the capture ring through the debug writer, one
// event per line. Formatting avoids fmt so the firmware image stays small.
func DumpTimingEvents() {
	for _, ev := range TimingEvents() {
		debugPrintln("evt=" + utoa(uint32(ev.Code)) +
			" ms=" + utoa(ev.Clock) +
			" a1=" + utoa(ev.Arg1) +
			" a2=" + utoa(ev.Arg2))
	}
}
