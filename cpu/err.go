package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrInvalidInstruction = errors.New(f("invalid instruction"))
	ErrRegisterOutOfRange = errors.New(f("register out of range"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrStackUnderflow     = errors.New(f("stack underflow"))
	ErrDivideByZero       = errors.New(f("divide by zero"))

	// Loader errors
	ErrArgumentValue = errors.New(f("invalid argument value"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
)

// ErrOpcode is a byte that does not decode to an instruction.
type ErrOpcode byte

func (eo ErrOpcode) Error() string {
	return f("invalid instruction 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrInvalidInstruction {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrRegister is a register operand outside of the register bank.
type ErrRegister byte

func (er ErrRegister) Error() string {
	return f("register %d out of range", uint8(er))
}

func (er ErrRegister) Is(err error) (ok bool) {
	return err == ErrRegisterOutOfRange
}

// ErrInstruction tags an execution failure with the instruction that caused it.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("bad instruction %v", Instruction(ei).String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

// ErrFault records the address of the instruction that stopped the CPU.
type ErrFault struct {
	Ip  uint64
	Err error
}

func (err *ErrFault) Error() string {
	return f("fault at 0x%02x: %v", err.Ip, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
