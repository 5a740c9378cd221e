package hostio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedFeedAndGet(t *testing.T) {
	var out []byte
	h := NewEmbedded(func(b byte) { out = append(out, b) })

	assert.Equal(t, byte(0), h.GetChar(), "no character queued yet")

	h.Feed('A')
	h.Feed('B')
	assert.Equal(t, byte('A'), h.GetChar())
	assert.Equal(t, byte('B'), h.GetChar())
	assert.Equal(t, byte(0), h.GetChar(), "queue drained")

	h.Feed(0) // feeding 0 is a no-op
	assert.Equal(t, byte(0), h.GetChar())

	h.PutChar('x')
	h.PutChar('y')
	assert.Equal(t, []byte("xy"), out)

	assert.False(t, h.IsInteractive())
}

var _ Device = (*Embedded)(nil)
var _ Device = (*Terminal)(nil)
