package cpu

// State is the run state of the CPU.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_IDLE    = State(0) // idle
	STATE_RUNNING = State(1) // running
	STATE_HALTED  = State(2) // halted
)
