package hostio

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Terminal is a Device backed by the process's stdin/stdout.
//
// os.Stdin is a blocking fd, but GetChar must never block (spec: "returns 0
// if no character is currently available"). A single background goroutine
// owns all reads from stdin and feeds a buffered channel; GetChar only ever
// performs a non-blocking receive on that channel.
type Terminal struct {
	in          io.Reader
	out         io.Writer
	chars       chan byte
	interactive bool
}

// NewTerminal constructs a Terminal wrapping os.Stdin/os.Stdout and starts
// the background reader goroutine. The caller is responsible for putting
// the controlling TTY into raw, no-echo mode (see cmd/lc3vm) before running
// the VM against it -- that terminal configuration is an external concern,
// not this package's.
func NewTerminal() *Terminal {
	t := &Terminal{
		in:          os.Stdin,
		out:         os.Stdout,
		chars:       make(chan byte, 256),
		interactive: isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()),
	}
	go t.readLoop()
	return t
}

func (t *Terminal) readLoop() {
	var buf [1]byte
	for {
		n, err := t.in.Read(buf[:])
		if n > 0 {
			t.chars <- buf[0]
		}
		if err != nil {
			// EOF or any other read failure: stop feeding characters.
			// GetChar keeps returning 0 from here on.
			close(t.chars)
			return
		}
	}
}

// GetChar implements Device. It never blocks: it returns the next buffered
// byte if one is available, or 0 otherwise.
func (t *Terminal) GetChar() byte {
	select {
	case b, ok := <-t.chars:
		if !ok {
			return 0
		}
		return b
	default:
		return 0
	}
}

// PutChar implements Device. Write failures are swallowed: best-effort I/O
// never crashes the VM.
func (t *Terminal) PutChar(b byte) {
	_, _ = t.out.Write([]byte{b})
}

// IsInteractive implements Device.
func (t *Terminal) IsInteractive() bool {
	return t.interactive
}
