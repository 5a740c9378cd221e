package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lc3vm/hostio"
)

func TestReadWriteRoundTrip(t *testing.T) {
	var m Memory
	host := hostio.NewEmbedded(nil)

	for _, addr := range []uint16{0x0000, 0x3000, 0x4000, 0xFDFF, 0xFE01, 0xFFFF} {
		m.Write(addr, 0xBEEF)
		assert.Equal(t, uint16(0xBEEF), m.Read(addr, host), "addr %#04x", addr)
	}
}

func TestZeroedAtConstruction(t *testing.T) {
	var m Memory
	host := hostio.NewEmbedded(nil)
	assert.Equal(t, uint16(0), m.Read(0x3000, host))
	assert.Equal(t, uint16(0), m.Read(0xFFFF, host))
}

func TestKeyboardPollNoCharacter(t *testing.T) {
	var m Memory
	host := hostio.NewEmbedded(nil)

	assert.False(t, m.WasPolled())
	got := m.Read(KeyboardStatus, host)
	assert.Equal(t, uint16(0), got)
	assert.True(t, m.WasPolled())
	assert.False(t, m.WasPolled(), "WasPolled clears the flag")
}

func TestKeyboardPollWithCharacter(t *testing.T) {
	var m Memory
	host := hostio.NewEmbedded(nil)
	host.Feed('A')

	got := m.Read(KeyboardStatus, host)
	assert.Equal(t, uint16(0x8000), got)
	assert.True(t, m.WasPolled())
	assert.Equal(t, uint16('A'), m.Read(KeyboardData, host))
}

func TestNonKeyboardReadNeverPolls(t *testing.T) {
	var m Memory
	host := hostio.NewEmbedded(nil)
	host.Feed('A')

	m.Read(0x3000, host)
	assert.False(t, m.WasPolled())
	// the fed character is still there, untouched by the unrelated read
	assert.Equal(t, byte('A'), host.GetChar())
}
