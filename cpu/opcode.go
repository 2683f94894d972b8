package cpu

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Opcode is the first byte of an instruction.
type Opcode byte

const (
	OP_NOP  = Opcode(0x00) // nop
	OP_HLT  = Opcode(0x01) // hlt
	OP_JMP  = Opcode(0x03) // jmp
	OP_RET  = Opcode(0x11) // ret
	OP_PUSH = Opcode(0x45) // push
	OP_POP  = Opcode(0x46) // pop
	OP_PRN  = Opcode(0x47) // prn
	OP_CALL = Opcode(0x50) // call
	OP_LDI  = Opcode(0x82) // ldi
	OP_MUL  = Opcode(0xa2) // mul
	OP_DIV  = Opcode(0xa3) // div
)

// Operand is the kind of an operand byte following an opcode.
type Operand int

const (
	OPERAND_REG = Operand(iota) // Register index.
	OPERAND_IMM                 // 8-bit immediate.
)

type opcodeInfo struct {
	name     string
	operands []Operand
}

var opcodeTable = map[Opcode]opcodeInfo{
	OP_NOP:  {"NOP", nil},
	OP_HLT:  {"HLT", nil},
	OP_JMP:  {"JMP", []Operand{OPERAND_REG}},
	OP_RET:  {"RET", nil},
	OP_PUSH: {"PUSH", []Operand{OPERAND_REG}},
	OP_POP:  {"POP", []Operand{OPERAND_REG}},
	OP_PRN:  {"PRN", []Operand{OPERAND_REG}},
	OP_CALL: {"CALL", []Operand{OPERAND_REG}},
	OP_LDI:  {"LDI", []Operand{OPERAND_REG, OPERAND_IMM}},
	OP_MUL:  {"MUL", []Operand{OPERAND_REG, OPERAND_REG}},
	OP_DIV:  {"DIV", []Operand{OPERAND_REG, OPERAND_REG}},
}

var mnemonicTable = func() map[string]Opcode {
	table := make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		table[info.name] = op
	}
	return table
}()

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() (ok bool) {
	_, ok = opcodeTable[op]
	return
}

// Operands returns the kinds of the operand bytes that follow the opcode.
func (op Opcode) Operands() []Operand {
	return opcodeTable[op].operands
}

// Size returns the encoded length of the instruction, in bytes.
func (op Opcode) Size() int {
	return 1 + len(op.Operands())
}

func (op Opcode) String() string {
	info, ok := opcodeTable[op]
	if !ok {
		return fmt.Sprintf("Opcode(0x%02x)", uint8(op))
	}
	return info.name
}

// ParseOpcode looks up an opcode by mnemonic, ignoring case.
func ParseOpcode(name string) (op Opcode, ok bool) {
	op, ok = mnemonicTable[strings.ToUpper(name)]
	return
}

// Defines returns the mnemonic values and machine constants, for use as
// assembler equates.
func Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"REGISTERS": fmt.Sprintf("%d", REGISTER_COUNT),
	}
	for op, info := range opcodeTable {
		defines["OP_"+info.name] = fmt.Sprintf("0x%02x", uint8(op))
	}
	return maps.All(defines)
}
