// Package loader decodes an LC-3 object image (a big-endian origin word
// followed by consecutive big-endian data words) into Memory.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"lc3vm/memory"
)

// ErrOddImage indicates the image stream ended mid-word: a partial trailing
// byte was read where a full 16-bit word was expected.
var ErrOddImage = errors.New("loader: image ends on a partial word")

// Load reads an object image from r and writes it into mem starting at the
// origin encoded in the image's first two bytes. It returns that origin.
//
// Words are written at origin, origin+1, ... until the stream reaches a
// clean end-of-file at a word boundary, or until the address space is
// exhausted -- whichever comes first. Reaching the end of the address space
// is not an error: per the reference policy, loading stops cleanly there.
func Load(r io.Reader, mem *memory.Memory) (origin uint16, err error) {
	var originBuf [2]byte
	if _, err := io.ReadFull(r, originBuf[:]); err != nil {
		return 0, fmt.Errorf("loader: reading origin: %w", err)
	}
	origin = binary.BigEndian.Uint16(originBuf[:])

	addr := uint32(origin)
	var wordBuf [2]byte
	for addr < memory.Size {
		n, err := io.ReadFull(r, wordBuf[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF || (err == nil && n == 1) {
			return origin, fmt.Errorf("loader: %w", ErrOddImage)
		}
		if err != nil {
			return origin, fmt.Errorf("loader: reading word at offset %d: %w", addr-uint32(origin), err)
		}
		mem.Write(uint16(addr), binary.BigEndian.Uint16(wordBuf[:]))
		addr++
	}
	return origin, nil
}
