//go:build !tinygo

package core

// State is a placeholder for interrupt state on regular Go
type State uintptr

// maskDepth tracks critical-section nesting on the host so tests can
// verify every disable is paired with a restore.
var maskDepth int

// disableInterrupts marks the start of a critical section (host build)
func disableInterrupts() State {
	maskDepth++
	return State(maskDepth)
}

// restoreInterrupts marks the end of a critical section (host build)
func restoreInterrupts(state State) {
	maskDepth--
}
