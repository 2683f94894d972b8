package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Line is a line of source with the code bytes it produced.
type Line struct {
	LineNo int      // Source line number, starting at 1.
	Ip     int      // Address of the first code byte.
	Words  []string // Source words, if any.
	Codes  []byte   // Generated code bytes.
}

// Program is a listing of source lines and their code.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug locates the listing line holding the code byte at ip.
func (prog *Program) Debug(ip uint64) (dbg Debug) {
	for n, line := range prog.Lines {
		if ip >= uint64(line.Ip) && ip < uint64(line.Ip)+uint64(len(line.Codes)) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(ip - uint64(line.Ip)),
			}
			break
		}
	}

	return
}

// Binary returns the program image.
func (prog *Program) Binary() (code []byte) {
	for _, b := range prog.Codes() {
		code = append(code, b)
	}

	return
}

// Codes iterates over the address and value of every code byte.
func (prog *Program) Codes() iter.Seq2[uint64, byte] {
	return func(yield func(ip uint64, code byte) bool) {
		for _, line := range prog.Lines {
			ip := uint64(line.Ip)
			for n, code := range line.Codes {
				if !yield(ip+uint64(n), code) {
					return
				}
			}
		}
	}
}

// Text renders the program in the `.ls8` text form, with the source words
// of each line as a trailing comment on its first byte.
func (prog *Program) Text() string {
	var text strings.Builder

	for _, line := range prog.Lines {
		for n, code := range line.Codes {
			if n == 0 && len(line.Words) > 0 {
				fmt.Fprintf(&text, "%08b # %v\n", code, strings.Join(line.Words, " "))
			} else {
				fmt.Fprintf(&text, "%08b\n", code)
			}
		}
	}

	return text.String()
}
