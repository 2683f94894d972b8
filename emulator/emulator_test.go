package emulator

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
	assert.Equal(os.Stdout, emu.Tape.Output)
	assert.Equal(&emu.Tape, emu.Printer)
	assert.Equal(cpu.STATE_IDLE, emu.State)
}

func doRunFile(t *testing.T, path string) (output string) {
	emu := NewEmulator()

	out := &bytes.Buffer{}
	emu.Tape.Output = out

	require.NoError(t, emu.LoadFile(path))
	require.NoError(t, emu.Run())
	assert.Equal(t, cpu.STATE_HALTED, emu.State)

	return out.String()
}

func TestEmulator_Files(t *testing.T) {
	table := [](struct {
		path   string
		output string
	}){
		{"testdata/print8.ls8", "8\n"},
		{"testdata/mult.ls8", "72\n"},
		{"testdata/stack.ls8", "2\n4\n1\n"},
		{"testdata/call.asm", "1\n4\n9\n"},
	}

	for _, entry := range table {
		t.Run(entry.path, func(t *testing.T) {
			assert.Equal(t, entry.output, doRunFile(t, entry.path))
		})
	}
}

func TestEmulator_RuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	require.NoError(t, emu.LoadFile("testdata/divzero.ls8"))

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrDivideByZero)

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(5, rt.LineNo)
	}
	assert.True(strings.HasPrefix(err.Error(), "line 5 "))
	assert.Equal(cpu.STATE_HALTED, emu.State)
}

func TestEmulator_FaultIndex(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	trace := &bytes.Buffer{}
	emu.Logger = zerolog.New(trace).Level(zerolog.DebugLevel)

	require.NoError(t, emu.Load(strings.NewReader("; data\n.byte 0, 2\n"), "fault.asm"))

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrInvalidInstruction)

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(2, rt.LineNo)
	}
	assert.Contains(trace.String(), `"message":"emulator: fault"`)
	assert.Contains(trace.String(), `"line":2`)
	assert.Contains(trace.String(), `"index":1`)
}

func TestErrRuntime(t *testing.T) {
	assert := assert.New(t)

	err := &ErrRuntime{LineNo: 12345, Err: cpu.ErrStackUnderflow}
	assert.Equal("line 12345 stack underflow", err.Error())
	assert.ErrorIs(err, cpu.ErrStackUnderflow)
}

func TestEmulator_Rerun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	rec := &io.Record{}
	emu.Printer = rec

	require.NoError(t, emu.LoadFile("testdata/print8.ls8"))
	assert.Equal(rec, emu.Cpu.Output)

	assert.NoError(emu.Run())
	assert.Equal([]uint64{8}, rec.Data)

	// A halted CPU does not run again.
	assert.NoError(emu.Run())
	assert.Equal([]uint64{8}, rec.Data)

	// Reset builds a fresh CPU and rewinds the channel.
	assert.NoError(emu.Reset())
	assert.Equal(cpu.STATE_IDLE, emu.State)
	assert.Empty(rec.Data)
	assert.NoError(emu.Run())
	assert.Equal([]uint64{8}, rec.Data)
}

func TestEmulator_Tick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	rec := &io.Record{}
	emu.Printer = rec
	require.NoError(t, emu.LoadFile("testdata/print8.ls8"))

	lines := []int{}
	var done bool
	for !done {
		lines = append(lines, emu.LineNo())
		var err error
		done, err = emu.Tick()
		assert.NoError(err)
	}

	assert.Equal([]int{6, 9, 11}, lines)
	assert.Equal(0, emu.LineNo())
	assert.Equal([]uint64{8}, rec.Data)
}

func TestEmulator_TickError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	require.NoError(t, emu.Load(strings.NewReader("NOP\nPOP R0\n"), "pop.asm"))

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)

	done, err = emu.Tick()
	assert.True(done)
	assert.ErrorIs(err, cpu.ErrStackUnderflow)

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(2, rt.LineNo)
	}
}

func TestEmulator_LoadError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	require.NoError(t, emu.LoadFile("testdata/print8.ls8"))
	prog := emu.Program

	err := emu.Load(strings.NewReader("00000001\n0000000x\n"), "bad.ls8")
	assert.ErrorIs(err, cpu.ErrArgumentValue)
	assert.Equal(prog, emu.Program)

	err = emu.Load(strings.NewReader("FOO R1\n"), "bad.ASM")
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)

	err = emu.LoadFile("testdata/missing.ls8")
	assert.ErrorIs(err, os.ErrNotExist)
	assert.Equal(prog, emu.Program)
}

func TestEmulator_Strict(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Strict = true

	err := emu.LoadFile("testdata/print8.ls8")
	assert.ErrorIs(err, cpu.ErrArgumentValue)

	rec := &io.Record{}
	emu.Printer = rec
	assert.NoError(emu.Load(strings.NewReader("10000010\n0\n101\n1000111\n0\n1\n"), "strict.ls8"))
	assert.NoError(emu.Run())
	assert.Equal([]uint64{5}, rec.Data)
}

func TestEmulator_Empty(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.Run())
	assert.Equal(cpu.STATE_HALTED, emu.State)
	assert.Equal(0, emu.LineNo())
}
