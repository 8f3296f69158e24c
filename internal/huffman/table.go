// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"fmt"
	"strings"

	"github.com/elliotnunn/huffpack/internal/bitstream"
)

// Code is a bit pattern stored left-aligned:
// the most significant Len bits of Bits are the code.
// Len is 0 for byte values that have no code.
type Code struct {
	Bits uint64
	Len  uint8
}

func (c Code) String() string {
	var s strings.Builder
	for i := range int(c.Len) {
		if c.Bits&(1<<(63-i)) != 0 {
			s.WriteByte('1')
		} else {
			s.WriteByte('0')
		}
	}
	return s.String()
}

// Table maps each byte value directly to its code.
type Table [256]Code

func fillTable(t *Table, n *Node, bits uint64, depth int) error {
	if n.IsLeaf() {
		t[n.Byte] = Code{Bits: bits, Len: uint8(depth)}
		return nil
	}
	if depth == 64 {
		return ErrCodeTooLong
	}
	if err := fillTable(t, n.Left, bits, depth+1); err != nil {
		return err
	}
	return fillTable(t, n.Right, bits|1<<(63-depth), depth+1)
}

// Cost returns the number of bits Pack will produce for data with frequencies f.
func (t *Table) Cost(f *Frequencies) uint64 {
	var bits uint64
	for b, n := range f {
		bits += n * uint64(t[b].Len)
	}
	return bits
}

// Pack writes the code of every byte of data, in order, into a fresh bit stream
// and flushes it, returning the packed bytes and the number of meaningful bits
// in the final byte.
func (t *Table) Pack(data []byte) ([]byte, int, error) {
	var bits uint64
	for _, b := range data {
		bits += uint64(t[b].Len)
	}
	w := bitstream.NewWriter(int((bits + 7) / 8))
	for _, b := range data {
		c := t[b]
		if c.Len == 0 {
			return nil, 0, fmt.Errorf("%w: %#02x", ErrMissingCode, b)
		}
		w.WriteBits(c.Bits, int(c.Len))
	}
	packed, valid := w.Flush()
	return packed, valid, nil
}
