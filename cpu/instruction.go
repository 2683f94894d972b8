package cpu

import (
	"fmt"
	"strings"
)

// Instruction is a decoded opcode with its operands.
// A and B are the first and second register operands; Imm is the immediate.
type Instruction struct {
	Opcode Opcode
	A      Register
	B      Register
	Imm    uint8
}

// String returns the assembly language form of the instruction.
func (inst Instruction) String() string {
	var args []string
	regs := []Register{inst.A, inst.B}
	for _, kind := range inst.Opcode.Operands() {
		switch kind {
		case OPERAND_REG:
			args = append(args, regs[0].String())
			regs = regs[1:]
		case OPERAND_IMM:
			args = append(args, fmt.Sprintf("%d", inst.Imm))
		}
	}

	if len(args) == 0 {
		return inst.Opcode.String()
	}

	return inst.Opcode.String() + " " + strings.Join(args, ",")
}

// Encode returns the bytes of the instruction.
func (inst Instruction) Encode() (codes []byte) {
	codes = append(codes, byte(inst.Opcode))
	regs := []Register{inst.A, inst.B}
	for _, kind := range inst.Opcode.Operands() {
		switch kind {
		case OPERAND_REG:
			codes = append(codes, byte(regs[0]))
			regs = regs[1:]
		case OPERAND_IMM:
			codes = append(codes, inst.Imm)
		}
	}

	return
}

// Decode decodes the instruction at the instruction pointer.
// The instruction pointer is left on the last operand byte consumed; the
// run loop performs the final advance after the instruction executes.
func (cpu *Cpu) Decode() (inst Instruction, err error) {
	op := Opcode(cpu.Code[cpu.Ip])
	if !op.Valid() {
		err = ErrOpcode(op)
		return
	}

	inst.Opcode = op

	regs := []*Register{&inst.A, &inst.B}
	for _, kind := range op.Operands() {
		cpu.Ip++
		if cpu.Ip >= uint64(len(cpu.Code)) {
			err = ErrOperandMissing
			return
		}
		arg := cpu.Code[cpu.Ip]

		switch kind {
		case OPERAND_REG:
			reg := Register(arg)
			if !reg.Valid() {
				err = ErrRegister(arg)
				return
			}
			*regs[0] = reg
			regs = regs[1:]
		case OPERAND_IMM:
			inst.Imm = arg
		}
	}

	return
}
