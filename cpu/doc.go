// Package cpu implements the microprocessor, loader and assembler for the
// LS-8 system.
//
// The CPU consists of an instruction pointer (IP), eight 64-bit
// general-purpose registers (R0-R7), a byte stack used for call return
// addresses and PUSH/POP operands, and a PRN output channel.
//
// Programs are images of bytes. The Loader reads the `.ls8` text form, one
// 8-digit binary literal per line; the Assembler translates mnemonic source
// into the same image.
package cpu
