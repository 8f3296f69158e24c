// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package bitstream packs variable-length bit patterns into bytes and reads
// them back, most significant bit first.
package bitstream

// Writer accumulates bit patterns into a byte slice.
// The first bit written occupies the most significant unused bit of the current byte.
type Writer struct {
	buf     []byte
	cur     byte // partial byte, filled from the top
	n       uint // bits used in cur, 0-7
	flushed bool
}

// NewWriter returns an empty Writer. sizeHint is the expected number of output bytes.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, max(sizeHint, 0))}
}

// WriteBits appends the most significant n bits of pattern, 0 <= n <= 64.
func (w *Writer) WriteBits(pattern uint64, n int) {
	if n < 0 || n > 64 {
		panic("bitstream: bit count out of range")
	}
	if w.flushed {
		panic("bitstream: write after flush")
	}
	if n == 0 {
		return
	}
	pattern &= ^uint64(0) << (64 - n)

	free := 8 - w.n
	if uint(n) < free {
		w.cur |= byte(pattern >> (56 + w.n))
		w.n += uint(n)
		return
	}

	// top off the partial byte, then whole bytes, then keep the tail
	w.buf = append(w.buf, w.cur|byte(pattern>>(56+w.n)))
	pattern <<= free
	n -= int(free)
	for ; n >= 8; n -= 8 {
		w.buf = append(w.buf, byte(pattern>>56))
		pattern <<= 8
	}
	w.cur = byte(pattern >> 56)
	w.n = uint(n)
}

// Bits returns the number of bits written so far.
func (w *Writer) Bits() int {
	return 8*len(w.buf) + int(w.n)
}

// Flush commits the partial byte, zero padded, and returns the packed bytes
// along with how many bits of the final byte are meaningful:
// 1-8 for a non-empty stream and 0 for an empty one.
// A Writer can be flushed only once.
func (w *Writer) Flush() ([]byte, int) {
	if w.flushed {
		panic("bitstream: flushed twice")
	}
	w.flushed = true
	switch {
	case w.n > 0:
		w.buf = append(w.buf, w.cur)
		return w.buf, int(w.n)
	case len(w.buf) == 0:
		return w.buf, 0
	default:
		return w.buf, 8
	}
}
