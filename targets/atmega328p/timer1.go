//go:build avr

package main

import (
	"device/avr"
	"runtime/interrupt"

	"tickos/core"
)

// Timer1 is the only 16-bit counter/compare unit on the ATmega328P that the
// Arduino runtime leaves free. It runs free at clk/64 (4us per tick at
// 16MHz); compare channel A drives the millisecond clock and channel B the
// one-shot alarm, so both time services share one prescaler configuration.

var timer1 timer1Driver

type timer1Driver struct {
	started bool
	chanA   compareA
	chanB   compareB
}

// Start configures the shared prescaler. Idempotent: the clock and one-shot
// init paths both call it, only the first touches the hardware.
func (d *timer1Driver) Start() {
	if d.started {
		return
	}
	// Normal mode, free-running count, no output compare pins.
	avr.TCCR1A.Set(0)
	avr.TCCR1C.Set(0)
	// clk/64 prescaler.
	avr.TCCR1B.Set(avr.TCCR1B_CS11 | avr.TCCR1B_CS10)
	d.started = true
}

// ReadCount snapshots TCNT1. Reading the low byte latches the high byte
// into the shared temp register, so the pair must be read low-then-high
// with interrupts masked.
func (d *timer1Driver) ReadCount() uint16 {
	state := interrupt.Disable()
	lo := avr.TCNT1L.Get()
	hi := avr.TCNT1H.Get()
	interrupt.Restore(state)
	return uint16(hi)<<8 | uint16(lo)
}

func (d *timer1Driver) ClockChannel() core.CompareChannel { return &d.chanA }

func (d *timer1Driver) AlarmChannel() core.CompareChannel { return &d.chanB }

// compareA is output compare channel A (OCR1A/OCIE1A/OCF1A).
type compareA struct{}

func (compareA) WriteCompare(v uint16) {
	// 16-bit compare writes go high byte first through the temp register.
	state := interrupt.Disable()
	avr.OCR1AH.Set(uint8(v >> 8))
	avr.OCR1AL.Set(uint8(v))
	interrupt.Restore(state)
}

func (compareA) EnableInterrupt() {
	// Clear a stale match first so enabling cannot re-fire immediately.
	avr.TIFR1.Set(avr.TIFR1_OCF1A)
	avr.TIMSK1.SetBits(avr.TIMSK1_OCIE1A)
}

func (compareA) DisableInterrupt() {
	avr.TIMSK1.ClearBits(avr.TIMSK1_OCIE1A)
	avr.TIFR1.Set(avr.TIFR1_OCF1A)
}

func (compareA) Acknowledge() {
	// Flag bits clear on writing one.
	avr.TIFR1.Set(avr.TIFR1_OCF1A)
}

func (compareA) InterruptEnabled() bool {
	return avr.TIMSK1.HasBits(avr.TIMSK1_OCIE1A)
}

// compareB is output compare channel B (OCR1B/OCIE1B/OCF1B).
type compareB struct{}

func (compareB) WriteCompare(v uint16) {
	state := interrupt.Disable()
	avr.OCR1BH.Set(uint8(v >> 8))
	avr.OCR1BL.Set(uint8(v))
	interrupt.Restore(state)
}

func (compareB) EnableInterrupt() {
	avr.TIFR1.Set(avr.TIFR1_OCF1B)
	avr.TIMSK1.SetBits(avr.TIMSK1_OCIE1B)
}

func (compareB) DisableInterrupt() {
	avr.TIMSK1.ClearBits(avr.TIMSK1_OCIE1B)
	avr.TIFR1.Set(avr.TIFR1_OCF1B)
}

func (compareB) Acknowledge() {
	avr.TIFR1.Set(avr.TIFR1_OCF1B)
}

func (compareB) InterruptEnabled() bool {
	return avr.TIMSK1.HasBits(avr.TIMSK1_OCIE1B)
}

// initTimer1 registers the driver and binds the compare vectors.
func initTimer1() {
	core.SetCounterDriver(&timer1)
	interrupt.New(avr.IRQ_TIMER1_COMPA, func(interrupt.Interrupt) {
		core.ClockTick()
	})
	interrupt.New(avr.IRQ_TIMER1_COMPB, func(interrupt.Interrupt) {
		core.AlarmTick()
	})
}
