package io

import (
	"io"
	"strconv"
)

// Tape provides sequential output of register values to a byte stream,
// one decimal value per line.
type Tape struct {
	Output io.Writer

	line []byte
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Send writes the decimal value, newline terminated, to the output stream.
func (tc *Tape) Send(value uint64) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	tc.line = strconv.AppendUint(tc.line[:0], value, 10)
	tc.line = append(tc.line, '\n')

	_, err = tc.Output.Write(tc.line)

	return
}
