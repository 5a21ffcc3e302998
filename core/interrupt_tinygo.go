//go:build tinygo

package core

import "runtime/interrupt"

// State mirrors the machine interrupt state word.
type State = interrupt.State

// disableInterrupts disables interrupts and returns the previous state.
// Always pair with restoreInterrupts so nested critical sections compose:
// the restore puts back the prior state instead of force-enabling.
func disableInterrupts() State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state State) {
	interrupt.Restore(state)
}
