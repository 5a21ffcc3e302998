//go:build avr

package main

import (
	"machine"
	"time"

	"tickos/core"
	"tickos/protocol"
)

const (
	baudRate = 115200

	// reportPeriodMS is how often a time report frame goes out on the UART.
	reportPeriodMS = 100

	// heartbeatUS is the one-shot heartbeat period. Longer than a single
	// hardware interval, so every beat exercises the re-arm path.
	heartbeatUS = 500000
)

var (
	// Set from the one-shot callback in interrupt context, consumed by the
	// main loop. The callback must stay minimal and must not re-schedule.
	heartbeatFired bool
	heartbeatAtUS  uint32
	heartbeat      core.Handle
)

func onHeartbeat() {
	heartbeatAtUS = core.NowUS()
	heartbeatFired = true
}

// debugOut has its own scratch buffer: debug prints can come from interrupt
// context while the main loop holds the report buffer.
var debugOut = protocol.NewScratchOutput()

func writeDebugFrame(s string) {
	debugOut.Reset()
	machine.Serial.Write(protocol.EncodeDebug(debugOut, s))
}

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: baudRate})

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	core.SetDebugWriter(writeDebugFrame)
	core.SetDebugEnabled(true)

	initTimer1()
	if err := core.InitClockSource(); err != nil {
		haltBlinking(led)
	}
	if err := core.InitOneshotSource(); err != nil {
		haltBlinking(led)
	}

	out := protocol.NewScratchOutput()

	var err error
	heartbeat, err = core.Schedule(heartbeatUS, onHeartbeat)
	if err != nil {
		haltBlinking(led)
	}

	lastReport := core.NowMS()
	for {
		if heartbeatFired {
			heartbeatFired = false
			led.Set(!led.Get())

			out.Reset()
			machine.Serial.Write(protocol.EncodeOneshotFired(out, uint16(heartbeat), heartbeatAtUS))

			// Re-arm from foreground: the scheduler is not reentrant, so
			// the callback itself never calls Schedule.
			heartbeat, err = core.Schedule(heartbeatUS, onHeartbeat)
			if err != nil {
				haltBlinking(led)
			}
		}

		if core.ElapsedMS(lastReport) >= reportPeriodMS {
			lastReport += reportPeriodMS
			out.Reset()
			machine.Serial.Write(protocol.EncodeTimeReport(out, core.NowMS(), core.NowUS()))
		}
	}
}

// haltBlinking signals an unrecoverable bring-up failure. Timebase errors
// are build mistakes, so there is nothing useful to do but flag them.
func haltBlinking(led machine.Pin) {
	core.DumpTimingEvents()
	for {
		led.Set(!led.Get())
		time.Sleep(100 * time.Millisecond)
	}
}
