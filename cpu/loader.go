package cpu

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// LINE_WIDTH is the width of a binary literal in the `.ls8` text form.
const LINE_WIDTH = 8

// Loader reads the `.ls8` text form of a program image.
//
// By default lines starting with '#', and lines shorter than LINE_WIDTH,
// are skipped. Of the remaining lines only the first LINE_WIDTH characters
// are read, so trailing text is a comment.
//
// In Strict mode each line, stripped of surrounding white space, must be a
// binary literal of at most 8 bits.
type Loader struct {
	Strict bool
}

// Parse parses an input stream into a Program. Either every line loads,
// or no program is returned.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(nil, math.MaxInt)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}
	ip := 0

	for scanner.Scan() {
		line = strings.TrimSuffix(scanner.Text(), "\r")
		lineno++

		var word string
		if ld.Strict {
			word = strings.TrimSpace(line)
		} else {
			if strings.HasPrefix(line, "#") || len(line) < LINE_WIDTH {
				continue
			}
			word = line[:LINE_WIDTH]
		}

		var value uint64
		value, err = strconv.ParseUint(word, 2, 8)
		if err != nil {
			err = errors.Join(ErrArgumentValue, err)
			return
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo: lineno,
			Ip:     ip,
			Codes:  []byte{byte(value)},
		})
		ip++
	}

	err = scanner.Err()

	return
}

// Load parses the `.ls8` text of a program and returns an idle CPU for it.
func Load(text string) (cpu *Cpu, err error) {
	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader(text))
	if err != nil {
		return
	}

	cpu = NewCpu(prog.Binary())

	return
}
