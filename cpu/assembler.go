// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Maximum depth of equate and expression substitution.
const equateDepth = 16

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reWord  = regexp.MustCompile(`\$\([^\$]*\)|[^\s,]+`)
	reIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reName  = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// Assembler is a two pass assembler for the LS-8 instruction set.
//
// Source lines hold an optional `label:`, then a mnemonic and its operands
// separated by spaces or commas. Text after ';' is a comment. Directives are
// `.equ NAME VALUE` and `.byte VALUE...`. Values are numbers, labels, equates
// or `$(expr)` expressions evaluated at assembly time.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to code addresses.
	Equate    map[string]string // Map of equates.
}

// pending is a source line waiting for its operands to be resolved.
type pending struct {
	lineno int
	line   string
	words  []string
	ip     int
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// intOf returns the integer value of a word.
func (asm *Assembler) intOf(word string, depth int) (value int64, err error) {
	if depth > equateDepth {
		err = ErrParseExpression(word)
		return
	}

	equate, ok := asm.Equate[word]
	if ok {
		return asm.intOf(equate, depth+1)
	}

	addr, ok := asm.Label[word]
	if ok {
		value = int64(addr)
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2:len(word)-1], depth+1)
	}

	if reIdent.MatchString(word) {
		err = ErrLabelMissing(word)
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// byteOf returns the value of a word as a code byte.
func (asm *Assembler) byteOf(word string) (value byte, err error) {
	v64, err := asm.intOf(word, 0)
	if err != nil {
		return
	}

	if v64 < -128 || v64 > 255 {
		err = ErrValueRange
		return
	}

	value = byte(v64)
	return
}

// registerOf returns the register named by a word, or by its equate.
func (asm *Assembler) registerOf(word string) (reg Register, err error) {
	for range equateDepth {
		equate, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = equate
	}

	return ParseRegister(word)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, depth int) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for _, key := range reName.FindAllString(expr, -1) {
		_, seen := pred[key]
		if seen {
			continue
		}
		v64, _err := asm.intOf(key, depth)
		if _err != nil {
			// Ignore names that are not integer equates or labels.
			// They may be registers or starlark builtins.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// splitLine splits a line into words, dropping any comment.
func splitLine(text string) (words []string) {
	line, _, _ := strings.Cut(text, ";")
	return reWord.FindAllString(line, -1)
}

// layout assigns an address to a line, and records its labels and equates.
// A nil pending is returned for lines that generate no code.
func (asm *Assembler) layout(words []string, lineno int, ip int) (pend *pending, size int, err error) {
	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !reIdent.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = ip
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 || !reIdent.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	// .byte VALUE...
	if words[0] == ".byte" {
		size = len(words) - 1
		if size == 0 {
			err = ErrOpcodeValueMissing
			return
		}
	} else {
		op, ok := ParseOpcode(words[0])
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		args := len(words) - 1
		need := len(op.Operands())
		switch {
		case args > need:
			err = ErrOpcodeExtraArgs
			return
		case args < need:
			err = ErrOpcodeValueMissing
			return
		}
		size = op.Size()
	}

	pend = &pending{lineno: lineno, words: words, ip: ip}
	return
}

// encode generates the code bytes of a line.
func (asm *Assembler) encode(words []string) (codes []byte, err error) {
	if words[0] == ".byte" {
		for _, word := range words[1:] {
			var value byte
			value, err = asm.byteOf(word)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	}

	op, _ := ParseOpcode(words[0])
	inst := Instruction{Opcode: op}
	regs := []*Register{&inst.A, &inst.B}
	for n, kind := range op.Operands() {
		word := words[1+n]
		switch kind {
		case OPERAND_REG:
			*regs[0], err = asm.registerOf(word)
			regs = regs[1:]
		case OPERAND_IMM:
			inst.Imm, err = asm.byteOf(word)
		}
		if err != nil {
			return
		}
	}

	codes = inst.Encode()
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
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

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range Defines() {
		asm.Equate[attr] = val
	}
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// Pass 1: addresses, labels and equates.
	var lines []*pending
	ip := 0
	for scanner.Scan() {
		line = strings.TrimSpace(scanner.Text())
		lineno++

		if asm.Verbose {
			log.Debug().Int("line", lineno).Str("text", line).Msg("asm: layout")
		}

		var pend *pending
		var size int
		pend, size, err = asm.layout(splitLine(line), lineno, ip)
		if err != nil {
			return
		}
		if pend != nil {
			pend.line = line
			lines = append(lines, pend)
			ip += size
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Pass 2: operands.
	prog = &Program{}
	for _, pend := range lines {
		line = pend.line
		lineno = pend.lineno
		asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

		var codes []byte
		codes, err = asm.encode(pend.words)
		if err != nil {
			return
		}

		if asm.Verbose {
			log.Debug().Int("line", lineno).Int("ip", pend.ip).Hex("codes", codes).Msg("asm: encode")
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo: lineno,
			Ip:     pend.ip,
			Words:  pend.words,
			Codes:  codes,
		})
	}

	return
}
