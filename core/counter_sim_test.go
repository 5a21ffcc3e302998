package core

import "testing"

// simChannel models one compare unit: threshold, mask bit and pending flag
// behave like the real registers, including DisableInterrupt clearing the
// pending flag.
type simChannel struct {
	compare uint16
	enabled bool
	pending bool

	// handler stands in for the interrupt vector. nil suppresses dispatch
	// so tests can deliver interrupts by hand.
	handler func()

	fires int // delivered interrupts
}

func (c *simChannel) WriteCompare(v uint16) { c.compare = v }

func (c *simChannel) EnableInterrupt() { c.enabled = true }

func (c *simChannel) DisableInterrupt() {
	c.enabled = false
	c.pending = false
}

func (c *simChannel) Acknowledge() { c.pending = false }

func (c *simChannel) InterruptEnabled() bool { return c.enabled }

// simCounter is a software model of the free-running 16-bit counter with
// two compare channels.
type simCounter struct {
	count      uint16
	elapsed    uint32 // total ticks stepped since construction
	startCalls int
	clock      simChannel
	alarm      simChannel
}

func (s *simCounter) Start() { s.startCalls++ }

func (s *simCounter) ReadCount() uint16 { return s.count }

func (s *simCounter) ClockChannel() CompareChannel { return &s.clock }

func (s *simCounter) AlarmChannel() CompareChannel { return &s.alarm }

// step advances the counter one tick and dispatches any compare match.
func (s *simCounter) step() {
	s.count++
	s.elapsed++
	for _, ch := range []*simChannel{&s.clock, &s.alarm} {
		if s.count == ch.compare {
			ch.pending = true
		}
		if ch.pending && ch.enabled && ch.handler != nil {
			ch.fires++
			ch.handler()
		}
	}
}

func (s *simCounter) run(ticks uint32) {
	for i := uint32(0); i < ticks; i++ {
		s.step()
	}
}

func (s *simCounter) runUS(us uint32) {
	s.run(us / TickPeriodUS)
}

// newSim installs a fresh simulated counter and resets the package time
// state so tests are independent.
func newSim(t *testing.T) *simCounter {
	t.Helper()

	s := &simCounter{}
	s.clock.handler = ClockTick
	s.alarm.handler = AlarmTick
	SetCounterDriver(s)

	accumulatedMS = 0
	clockMatch = 0
	clockRunning = false
	oneshotArmed = false
	oneshotCallback = nil
	remainingIntervals = 0
	finalTicks = 0
	maskDepth = 0

	t.Cleanup(func() {
		if maskDepth != 0 {
			t.Errorf("unbalanced critical sections: depth %d at test end", maskDepth)
		}
	})
	return s
}
