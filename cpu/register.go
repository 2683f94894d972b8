package cpu

import (
	"fmt"
	"strconv"
)

// REGISTER_COUNT is the size of the register bank.
const REGISTER_COUNT = 8

// Register is an index into the register bank.
type Register byte

// Valid returns true if the register is inside the register bank.
func (r Register) Valid() bool {
	return r < REGISTER_COUNT
}

func (r Register) String() string {
	return fmt.Sprintf("R%d", uint8(r))
}

// ParseRegister parses a register name R0 through R7, ignoring case.
func ParseRegister(name string) (r Register, err error) {
	if len(name) < 2 || (name[0] != 'R' && name[0] != 'r') {
		err = ErrRegisterInvalid
		return
	}

	index, perr := strconv.ParseUint(name[1:], 10, 8)
	if perr != nil || !Register(index).Valid() {
		err = ErrRegisterInvalid
		return
	}

	r = Register(index)
	return
}
