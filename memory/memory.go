// Package memory implements the LC-3's flat 65536-word address space,
// including the memory-mapped keyboard registers at 0xFE00/0xFE02.
package memory

import "lc3vm/hostio"

const (
	// Size is the number of addressable 16-bit words.
	Size = 1 << 16

	// KeyboardStatus is the memory-mapped keyboard status register. Bit 15
	// is set when a character is available at KeyboardData.
	KeyboardStatus uint16 = 0xFE00

	// KeyboardData is the memory-mapped keyboard data register.
	KeyboardData uint16 = 0xFE02

	keyboardReady uint16 = 1 << 15
)

// Memory is the VM's address space. The zero value is ready to use: all
// cells start at zero.
type Memory struct {
	cells  [Size]uint16
	polled bool
}

// Read returns the word at addr. Reading KeyboardStatus polls host for a
// character: if one is available, KeyboardStatus is set to 0x8000 and
// KeyboardData holds the character; otherwise KeyboardStatus is cleared.
// Either way the keyboard-polled flag is set, for the run loop to observe
// via WasPolled.
func (m *Memory) Read(addr uint16, host hostio.Device) uint16 {
	if addr == KeyboardStatus {
		if c := host.GetChar(); c != 0 {
			m.cells[KeyboardStatus] = keyboardReady
			m.cells[KeyboardData] = uint16(c)
		} else {
			m.cells[KeyboardStatus] = 0
		}
		m.polled = true
	}
	return m.cells[addr]
}

// Write stores val at addr unconditionally. Writes never trigger MMIO side
// effects.
func (m *Memory) Write(addr uint16, val uint16) {
	m.cells[addr] = val
}

// WasPolled reports whether a read of KeyboardStatus has occurred since the
// flag was last cleared, and clears it.
func (m *Memory) WasPolled() bool {
	p := m.polled
	m.polled = false
	return p
}
