// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	stdio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
)

// Emulator state. CPU + program listing + PRN channel.
type Emulator struct {
	Logger   zerolog.Logger // Trace logger handed to each new CPU.
	*cpu.Cpu                // Reference to the CPU simulation.
	Program  *cpu.Program   // Reference to the currently loaded program listing.

	Strict  bool       // If set, `.ls8` text is loaded in strict mode.
	Tape    io.Tape    // Tape PRN channel.
	Printer io.Channel // PRN channel for new CPUs; the Tape by default.
}

// NewEmulator creates a new emulator, printing to stdout.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Logger:  zerolog.Nop(),
		Program: &cpu.Program{},
	}

	emu.Tape.Output = os.Stdout
	emu.Printer = &emu.Tape

	emu.Reset()

	return
}

// Load a program. Names ending in `.asm` are assembled, anything else is
// read as `.ls8` text. On failure the current program is kept.
func (emu *Emulator) Load(input stdio.Reader, name string) (err error) {
	var prog *cpu.Program

	switch strings.ToLower(filepath.Ext(name)) {
	case ".asm":
		asm := &cpu.Assembler{}
		prog, err = asm.Parse(input)
	default:
		ld := &cpu.Loader{Strict: emu.Strict}
		prog, err = ld.Parse(input)
	}
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Logger.Debug().Str("name", name).Int("size", len(prog.Binary())).Msg("emulator: load")

	err = emu.Reset()

	return
}

// LoadFile loads a program from a file.
func (emu *Emulator) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = emu.Load(inf, path)

	return
}

// Reset replaces the CPU with an idle one for the current program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu = cpu.NewCpu(emu.Program.Binary())
	emu.Cpu.Logger = emu.Logger
	if emu.Printer != nil {
		emu.Printer.Rewind()
		emu.Cpu.Output = emu.Printer
	}

	return
}

// LineNo returns the source line number for the instruction pointer,
// or zero if it is outside of the program.
func (emu *Emulator) LineNo() int {
	return emu.lineOf(emu.Cpu.Ip)
}

func (emu *Emulator) lineOf(ip uint64) int {
	dbg := emu.Program.Debug(ip)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// runtimeError locates the source line of a CPU fault.
func (emu *Emulator) runtimeError(err error) error {
	lineno := 0
	var fault *cpu.ErrFault
	if errors.As(err, &fault) {
		dbg := emu.Program.Debug(fault.Ip)
		if dbg.Line != nil {
			lineno = dbg.LineNo
			emu.Logger.Debug().Int("line", lineno).Int("index", dbg.Index).Uint64("ip", fault.Ip).Msg("emulator: fault")
		}
	}

	return &ErrRuntime{LineNo: lineno, Err: err}
}

// Run runs the program to completion.
func (emu *Emulator) Run() (err error) {
	err = emu.Cpu.Run()
	if err != nil {
		err = emu.runtimeError(err)
		return
	}

	emu.Logger.Debug().Int("ticks", emu.Cpu.Ticks).Msg("emulator: done")

	return
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	done, err = emu.Cpu.Tick()
	if err != nil {
		err = emu.runtimeError(err)
	}

	return
}
