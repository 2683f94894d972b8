package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func FuzzCpu(f *testing.F) {
	f.Add([]byte{130, 0, 8, 71, 0, 1}, uint8(0))
	f.Add([]byte{130, 1, 7, 80, 1, 71, 0, 1, 130, 0, 42, 17}, uint8(3))
	f.Add([]byte{163, 0, 1}, uint8(0))
	f.Add([]byte{3, 0}, uint8(0xff))

	f.Fuzz(func(t *testing.T, code []byte, stack uint8) {
		assert := assert.New(t)

		cpu := NewCpu(code)
		cpu.Output = &io.Record{}
		for range stack {
			cpu.Stack.Push(stack)
		}

		var done bool
		var err error
		for range 1000 {
			done, err = cpu.Tick()
			if done {
				break
			}
		}

		if err != nil {
			assert.True(done)
			assert.Equal(STATE_HALTED, cpu.State)

			var fault *ErrFault
			assert.True(errors.As(err, &fault))
			assert.Less(fault.Ip, uint64(len(code)))

			known := errors.Is(err, ErrInvalidInstruction) ||
				errors.Is(err, ErrRegisterOutOfRange) ||
				errors.Is(err, ErrOperandMissing) ||
				errors.Is(err, ErrStackUnderflow) ||
				errors.Is(err, ErrDivideByZero)
			assert.True(known, err.Error())
		} else if done {
			assert.Equal(STATE_HALTED, cpu.State)
		} else {
			assert.Equal(STATE_RUNNING, cpu.State)
		}
	})
}
