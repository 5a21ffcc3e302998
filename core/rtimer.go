package core

import "errors"

// One-shot alarm scheduler.
//
// At most one alarm is live at a time. A requested delay longer than the
// counter's single-cycle span is decomposed into full 65535-tick hardware
// intervals plus one final partial interval; the compare-match handler
// re-arms after each full interval and fires the callback once after the
// last. Each re-arm advances from the previous threshold, not the live
// count, so interrupt latency does not stretch the total delay.
//
// State machine: idle -> armed -> (re-arm cycles) -> callback -> idle.

// Handle identifies a scheduled one-shot. A stale handle (from a request
// that already fired or was canceled) is ignored by Cancel.
type Handle uint16

var (
	// ErrBusy reports that a one-shot is already armed. The caller must
	// cancel it or wait for it to fire.
	ErrBusy = errors.New("one-shot already armed")

	// ErrNilCallback reports a schedule request without a callback.
	ErrNilCallback = errors.New("one-shot callback is nil")
)

var (
	oneshotArmed bool
	oneshotGen   Handle

	// remainingIntervals counts the full 65535-tick cycles still to run
	// before the final partial interval is programmed.
	remainingIntervals uint32

	// finalTicks is the length of the last, partial interval.
	finalTicks uint16

	// alarmMatch is the threshold of the most recent alarm compare match
	// (or the arm point, before the first match).
	alarmMatch uint16

	oneshotCallback func()
)

// InitOneshotSource prepares the alarm compare channel. The counter and
// its prescaler are shared with the clock source; Start is idempotent, so
// whichever init runs second does not reconfigure the timebase.
func InitOneshotSource() error {
	if err := ValidateTimebase(); err != nil {
		return err
	}
	d := MustCounter()
	d.Start()

	ch := d.AlarmChannel()
	state := disableInterrupts()
	ch.DisableInterrupt()
	oneshotArmed = false
	oneshotCallback = nil
	restoreInterrupts(state)
	return nil
}

// Schedule arms a one-shot that invokes cb once after delayUS microseconds.
//
// Delays shorter than one tick (including zero) fire at the next possible
// compare match rather than being dropped. Delays above MaxScheduleUS are
// rejected with ErrRange; requests while another one-shot is armed are
// rejected with ErrBusy and leave the armed request untouched.
//
// cb runs in interrupt context: it must not block, and it must not call
// Schedule reentrantly.
func Schedule(delayUS uint32, cb func()) (Handle, error) {
	if cb == nil {
		return 0, ErrNilCallback
	}
	if delayUS > MaxScheduleUS {
		return 0, ErrRange
	}

	total := USecToTicks(delayUS)
	full := total / MaxIntervalTicks
	part := total % MaxIntervalTicks
	if part == 0 {
		if full > 0 {
			// Exact multiple: the last full cycle is the final interval.
			full--
			part = MaxIntervalTicks
		} else {
			// Sub-tick delay: fire as soon as the counter can match.
			part = 1
		}
	}

	d := MustCounter()
	ch := d.AlarmChannel()

	state := disableInterrupts()
	if oneshotArmed {
		restoreInterrupts(state)
		return 0, ErrBusy
	}

	oneshotGen++
	remainingIntervals = full
	finalTicks = uint16(part)
	oneshotCallback = cb
	oneshotArmed = true

	alarmMatch = d.ReadCount()
	first := finalTicks
	if full > 0 {
		first = MaxIntervalTicks
	}
	ch.WriteCompare(alarmMatch + first)
	ch.EnableInterrupt()
	h := oneshotGen
	recordTimingEvent(EvtOneshotArm, uint32(h), total)
	restoreInterrupts(state)
	return h, nil
}

// ScheduleAt arms a one-shot for an absolute NowUS target. A target at or
// before the current time fires as soon as possible; a future target more
// than MaxScheduleUS ahead is rejected with ErrRange.
func ScheduleAt(targetUS uint32, cb func()) (Handle, error) {
	delay := targetUS - NowUS()
	switch {
	case delay >= 1<<31:
		// Modular subtraction of a target already behind us lands in the
		// upper half of the range; treat it as due now.
		delay = 0
	case delay > MaxScheduleUS:
		return 0, ErrRange
	}
	return Schedule(delay, cb)
}

// AlarmTick services the alarm channel's compare match. Target code calls
// this from the interrupt vector.
func AlarmTick() {
	ch := MustCounter().AlarmChannel()
	ch.Acknowledge()

	if !oneshotArmed {
		// Canceled after the interrupt latched; nothing to run.
		ch.DisableInterrupt()
		debugPrint("rtimer: spurious alarm match")
		return
	}

	if remainingIntervals > 0 {
		remainingIntervals--
		alarmMatch += MaxIntervalTicks
		next := finalTicks
		if remainingIntervals > 0 {
			next = MaxIntervalTicks
		}
		ch.WriteCompare(alarmMatch + next)
		recordTimingEvent(EvtOneshotRearm, uint32(oneshotGen), remainingIntervals)
		return
	}

	// Final interval elapsed.
	ch.DisableInterrupt()
	oneshotArmed = false
	cb := oneshotCallback
	oneshotCallback = nil
	recordTimingEvent(EvtOneshotFire, uint32(oneshotGen), 0)
	cb()
}

// Cancel disarms the one-shot identified by h. Canceling an idle scheduler
// or a stale handle is a no-op. A compare match already latched when Cancel
// runs may still have fired the callback; callers that care must make
// their callbacks idempotent.
func Cancel(h Handle) {
	ch := MustCounter().AlarmChannel()
	state := disableInterrupts()
	if oneshotArmed && h == oneshotGen {
		ch.DisableInterrupt()
		oneshotArmed = false
		oneshotCallback = nil
		recordTimingEvent(EvtOneshotCancel, uint32(h), 0)
	}
	restoreInterrupts(state)
}

// OneshotArmed reports whether a one-shot is currently armed.
func OneshotArmed() bool {
	state := disableInterrupts()
	armed := oneshotArmed
	restoreInterrupts(state)
	return armed
}
