package vmcpu

import "fmt"

// TRAP vectors, the low 8 bits of a TRAP instruction.
const (
	trapGETC  uint8 = 0x20
	trapOUT   uint8 = 0x21
	trapPUTS  uint8 = 0x22
	trapIN    uint8 = 0x23
	trapPUTSP uint8 = 0x24
	trapHALT  uint8 = 0x25
)

// execTrap dispatches a TRAP instruction's low 8 bits. R7 has already been
// set to the return address by the caller.
func (vm *VM) execTrap(vec uint8) (Status, error) {
	switch vec {
	case trapGETC:
		return vm.trapGetc(false)
	case trapIN:
		return vm.trapGetc(true)
	case trapOUT:
		vm.Host.PutChar(byte(vm.Reg.Get(0)))
		return Continue, nil
	case trapPUTS:
		vm.trapPuts()
		return Continue, nil
	case trapPUTSP:
		vm.trapPutsp()
		return Continue, nil
	case trapHALT:
		if vm.Host.IsInteractive() {
			for _, b := range []byte("HALT\n") {
				vm.Host.PutChar(b)
			}
		}
		vm.State = Halted
		return Halted, nil
	default:
		vm.State = Halted
		return Halted, fmt.Errorf("%w: %#02x", ErrUnknownTrap, vec)
	}
}

// trapGetc implements GETC and, when echo is true, IN. If the host has no
// character available, PC is rolled back by one so the same TRAP
// instruction re-executes on the next Step, and HardInterrupt is reported;
// R0 is left untouched.
func (vm *VM) trapGetc(echo bool) (Status, error) {
	if echo && vm.Host.IsInteractive() {
		for _, b := range []byte("Enter a character: ") {
			vm.Host.PutChar(b)
		}
	}

	c := vm.Host.GetChar()
	if c == 0 {
		vm.Reg.PC--
		return HardInterrupt, nil
	}

	vm.Reg.Set(0, uint16(c))
	if echo {
		vm.Host.PutChar(c)
	}
	return Continue, nil
}

// trapPuts writes the low byte of each word starting at R0, stopping at
// the first zero word.
func (vm *VM) trapPuts() {
	addr := vm.Reg.Get(0)
	for {
		w := vm.Mem.Read(addr, vm.Host)
		if w == 0 {
			break
		}
		vm.Host.PutChar(byte(w))
		addr++
	}
}

// trapPutsp writes the low byte, then (if nonzero) the high byte, of each
// word starting at R0, stopping at the first zero word.
func (vm *VM) trapPutsp() {
	addr := vm.Reg.Get(0)
	for {
		w := vm.Mem.Read(addr, vm.Host)
		if w == 0 {
			break
		}
		lo := byte(w & 0xFF)
		hi := byte(w >> 8)
		vm.Host.PutChar(lo)
		if hi != 0 {
			vm.Host.PutChar(hi)
		}
		addr++
	}
}
