package cpu

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ezrec/ls8/io"
)

// Channel is the output channel interface used by PRN.
type Channel io.Channel

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Logger zerolog.Logger // Per-instruction trace, at debug level.

	Ip       uint64                 // Current instruction pointer.
	State    State                  // Run state.
	Code     []byte                 // Program image.
	Register [REGISTER_COUNT]uint64 // Register bank.
	Stack    Stack                  // Stack simulation.
	Output   Channel                // PRN output channel.

	Ticks int // Executed instruction counter.
}

// NewCpu creates an idle CPU for a program image, printing to stdout.
func NewCpu(code []byte) (cpu *Cpu) {
	cpu = &Cpu{
		Logger: zerolog.Nop(),
		Code:   code,
		Output: &io.Tape{Output: os.Stdout},
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "state", cpu.State)
	text += fmt.Sprintf("% 6s: %02X\n", "ip", cpu.Ip)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 6s: %016X\n", Register(n).String(), val)
	}
	val, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("% 6s: %02X (%d)\n", "stack", val, len(cpu.Stack.Data))
	} else {
		text += fmt.Sprintf("% 6s: --\n", "stack")
	}

	return
}

// Run executes the program until it halts, runs off the end of the code,
// or faults. Run does nothing unless the CPU is idle, so a halted CPU
// cannot be restarted.
func (cpu *Cpu) Run() (err error) {
	if cpu.State != STATE_IDLE {
		return
	}

	cpu.State = STATE_RUNNING

	var done bool
	for !done {
		done, err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single CPU instruction cycle.
// An idle CPU is started by its first Tick.
func (cpu *Cpu) Tick() (done bool, err error) {
	switch cpu.State {
	case STATE_HALTED:
		done = true
		return
	case STATE_IDLE:
		cpu.State = STATE_RUNNING
	}

	if cpu.Ip >= uint64(len(cpu.Code)) {
		cpu.State = STATE_HALTED
		done = true
		return
	}

	start := cpu.Ip
	defer func() {
		if err != nil {
			cpu.State = STATE_HALTED
			done = true
			err = &ErrFault{Ip: start, Err: err}
		}
	}()

	inst, err := cpu.Decode()
	if err != nil {
		return
	}

	cpu.Logger.Debug().Uint64("ip", start).Stringer("inst", inst).Msg("cpu: execute")

	err = cpu.Execute(inst)
	if err != nil {
		return
	}

	cpu.Ip++
	cpu.Ticks++

	done = cpu.State == STATE_HALTED

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(inst), err)
		}
	}()

	regs := []Register{inst.A, inst.B}
	for _, kind := range inst.Opcode.Operands() {
		if kind != OPERAND_REG {
			continue
		}
		if !regs[0].Valid() {
			err = ErrRegister(regs[0])
			return
		}
		regs = regs[1:]
	}

	reg := &cpu.Register

	switch inst.Opcode {
	case OP_NOP:
		// pass
	case OP_HLT:
		cpu.State = STATE_HALTED
	case OP_PRN:
		err = cpu.Output.Send(reg[inst.A])
	case OP_LDI:
		reg[inst.A] = uint64(inst.Imm)
	case OP_JMP:
		// The run loop still advances past the target.
		cpu.Ip = reg[inst.A]
	case OP_PUSH:
		cpu.Stack.Push(byte(reg[inst.A]))
	case OP_POP:
		value, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackUnderflow
			return
		}
		reg[inst.A] = uint64(value)
	case OP_CALL:
		cpu.Stack.Push(byte(cpu.Ip + 1))
		cpu.Ip = reg[inst.A]
	case OP_RET:
		addr, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackUnderflow
			return
		}
		// Resume at addr after the run loop advances.
		cpu.Ip = uint64(addr) - 1
	case OP_MUL:
		reg[inst.A] *= reg[inst.B]
	case OP_DIV:
		if reg[inst.B] == 0 {
			err = ErrDivideByZero
			return
		}
		reg[inst.A] /= reg[inst.B]
	default:
		err = ErrOpcode(inst.Opcode)
	}

	return
}
