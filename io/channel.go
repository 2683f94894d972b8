// Package io provides output channel implementations for the LS-8 emulator.
// It includes a Tape, which prints values as decimal lines to a byte stream,
// and a Record, which keeps them in memory.
package io

// Channel defines the interface for the PRN output channel.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single register value to the channel.
	Send(value uint64) error
}
