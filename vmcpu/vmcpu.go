// Package vmcpu implements the LC-3 fetch/decode/execute cycle: one Step
// per instruction, the cooperative suspension protocol for memory-mapped
// keyboard I/O and blocking TRAPs, and the Running/Suspended/Halted state
// machine.
package vmcpu

import (
	"errors"
	"fmt"

	"lc3vm/hostio"
	"lc3vm/memory"
	"lc3vm/register"
	"lc3vm/word"
)

// Opcodes, bits [15:12] of the instruction.
const (
	opBR = iota
	opADD
	opLD
	opST
	opJSR
	opAND
	opLDR
	opSTR
	opRTI
	opNOT
	opLDI
	opSTI
	opJMP
	opRES
	opLEA
	opTRAP
)

// State is the VM's coarse execution state.
type State int

const (
	Running State = iota
	Suspended
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// Status is what Step reports after executing (or attempting to execute)
// one instruction.
type Status int

const (
	// Continue means the instruction completed normally; keep stepping.
	Continue Status = iota
	// SoftInterrupt means the keyboard status register was polled during
	// this step; the host should yield before the next step.
	SoftInterrupt
	// HardInterrupt means a GETC/IN TRAP needed a character the host could
	// not supply; the VM is parked at the same TRAP instruction.
	HardInterrupt
	// Halted means the VM has stopped: HALT, an unknown TRAP, RTI, RES, or
	// an undecodable opcode.
	Halted
)

// The following sentinel errors classify why Step returned Halted with a
// non-nil error. They are never returned alongside Continue,
// SoftInterrupt, or HardInterrupt.
var (
	// ErrDecode indicates the fetched instruction's opcode bits do not
	// correspond to a defined mnemonic. (In practice unreachable: all 16
	// values of a 4-bit opcode field are defined, so this exists for the
	// decoder's symmetry with ErrReserved, and as a seam for a future,
	// smaller opcode space.)
	ErrDecode = errors.New("vmcpu: undecodable opcode")

	// ErrReserved indicates RTI or RES was executed.
	ErrReserved = errors.New("vmcpu: reserved opcode executed")

	// ErrUnknownTrap indicates a TRAP vector outside {0x20..0x25}.
	ErrUnknownTrap = errors.New("vmcpu: unknown trap vector")
)

// VM ties together the address space, the register file, and the host I/O
// capability, and drives one instruction at a time.
type VM struct {
	Mem   *memory.Memory
	Reg   *register.RegisterFile
	Host  hostio.Device
	State State
}

// New constructs a VM ready to load an image into.
func New(host hostio.Device) *VM {
	return &VM{
		Mem:   &memory.Memory{},
		Reg:   register.New(),
		Host:  host,
		State: Running,
	}
}

// Reset transitions a Halted VM back to Running, for use after loading a
// new image. It does not clear memory or registers; the loader and the
// caller are responsible for setting PC to the new origin.
func (vm *VM) Reset() {
	vm.State = Running
}

// Step decodes and executes exactly one instruction, servicing TRAPs and
// reporting the resulting Status. Step does nothing and returns (Halted,
// nil) if the VM is already Halted -- Halted is terminal for the current
// image.
func (vm *VM) Step() (Status, error) {
	if vm.State == Halted {
		return Halted, nil
	}
	if vm.State == Suspended {
		vm.State = Running
	}

	instr, opcode := vm.Reg.Fetch(vm.Mem, vm.Host)

	switch opcode {
	case opADD:
		vm.execAddAnd(instr, false)
	case opAND:
		vm.execAddAnd(instr, true)
	case opNOT:
		dr := word.Range(instr, word.I5, word.I7)
		sr := word.Range(instr, word.I8, word.I10)
		vm.Reg.Set(dr, ^vm.Reg.Get(sr))
	case opBR:
		nzp := word.Range(instr, word.I5, word.I7)
		if nzp&uint16(vm.Reg.Cond) != 0 {
			vm.Reg.PC += word.SignExtend(word.Last(instr, word.I9), 9)
		}
	case opJMP:
		baseR := word.Range(instr, word.I8, word.I10)
		vm.Reg.PC = vm.Reg.Get(baseR)
	case opJSR:
		// R7 := PC, not DR := ..., so this bypasses Set and leaves Cond alone.
		vm.Reg.R[7] = vm.Reg.PC
		if word.IsSet(instr, word.I5) {
			vm.Reg.PC += word.SignExtend(word.Last(instr, word.I11), 11)
		} else {
			baseR := word.Range(instr, word.I8, word.I10)
			vm.Reg.PC = vm.Reg.Get(baseR)
		}
	case opLD:
		dr := word.Range(instr, word.I5, word.I7)
		addr := vm.Reg.PC + word.SignExtend(word.Last(instr, word.I9), 9)
		vm.Reg.Set(dr, vm.Mem.Read(addr, vm.Host))
	case opLDI:
		dr := word.Range(instr, word.I5, word.I7)
		addr := vm.Reg.PC + word.SignExtend(word.Last(instr, word.I9), 9)
		indirect := vm.Mem.Read(addr, vm.Host)
		vm.Reg.Set(dr, vm.Mem.Read(indirect, vm.Host))
	case opLDR:
		dr := word.Range(instr, word.I5, word.I7)
		baseR := word.Range(instr, word.I8, word.I10)
		addr := vm.Reg.Get(baseR) + word.SignExtend(word.Last(instr, word.I6), 6)
		vm.Reg.Set(dr, vm.Mem.Read(addr, vm.Host))
	case opLEA:
		dr := word.Range(instr, word.I5, word.I7)
		vm.Reg.Set(dr, vm.Reg.PC+word.SignExtend(word.Last(instr, word.I9), 9))
	case opST:
		sr := word.Range(instr, word.I5, word.I7)
		addr := vm.Reg.PC + word.SignExtend(word.Last(instr, word.I9), 9)
		vm.Mem.Write(addr, vm.Reg.Get(sr))
	case opSTI:
		sr := word.Range(instr, word.I5, word.I7)
		addr := vm.Reg.PC + word.SignExtend(word.Last(instr, word.I9), 9)
		indirect := vm.Mem.Read(addr, vm.Host)
		vm.Mem.Write(indirect, vm.Reg.Get(sr))
	case opSTR:
		sr := word.Range(instr, word.I5, word.I7)
		baseR := word.Range(instr, word.I8, word.I10)
		addr := vm.Reg.Get(baseR) + word.SignExtend(word.Last(instr, word.I6), 6)
		vm.Mem.Write(addr, vm.Reg.Get(sr))
	case opTRAP:
		// R7 := PC, not DR := ..., so this bypasses Set and leaves Cond
		// alone; if the trap turns out to need a character the host can't
		// supply, R7 is restored below so the rollback leaves no trace.
		savedR7 := vm.Reg.R[7]
		vm.Reg.R[7] = vm.Reg.PC
		status, err := vm.execTrap(uint8(word.Last(instr, word.I8)))
		if status == HardInterrupt {
			vm.Reg.R[7] = savedR7
			vm.State = Suspended
		}
		if status != Continue {
			return status, err
		}
	case opRTI, opRES:
		vm.State = Halted
		return Halted, fmt.Errorf("%w: opcode %#x at pc %#04x", ErrReserved, opcode, vm.Reg.PC-1)
	default:
		vm.State = Halted
		return Halted, fmt.Errorf("%w: opcode %#x at pc %#04x", ErrDecode, opcode, vm.Reg.PC-1)
	}

	if vm.Mem.WasPolled() {
		return SoftInterrupt, nil
	}
	return Continue, nil
}

// execAddAnd implements ADD and AND, which share a format: DR, SR1, and
// either SR2 or a sign-extended 5-bit immediate.
func (vm *VM) execAddAnd(instr uint16, isAnd bool) {
	dr := word.Range(instr, word.I5, word.I7)
	sr1 := word.Range(instr, word.I8, word.I10)
	var value uint16
	if word.IsSet(instr, word.I11) {
		value = word.SignExtend(word.Last(instr, word.I5), 5)
	} else {
		value = vm.Reg.Get(word.Last(instr, word.I3))
	}
	if isAnd {
		vm.Reg.Set(dr, vm.Reg.Get(sr1)&value)
	} else {
		vm.Reg.Set(dr, vm.Reg.Get(sr1)+value)
	}
}

// RunUntilYield repeats Step until it returns anything other than
// Continue: a fault, a suspension, or Halted. cmd/lc3vm does not use it;
// its driver calls Step directly in its own loop.
func (vm *VM) RunUntilYield() (Status, error) {
	for {
		status, err := vm.Step()
		if status != Continue {
			return status, err
		}
	}
}
