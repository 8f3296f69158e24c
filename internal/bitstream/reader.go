// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package bitstream

import (
	"errors"
	"io"
)

var ErrValidBits = errors.New("bitstream: final byte bit count out of range")

// Reader yields the bits of a packed byte slice in the order a Writer wrote them.
type Reader struct {
	p    []byte
	pos  int
	bits int
}

// NewReader reads p, of whose final byte only the top validBits bits are meaningful.
// validBits must be 1-8, or 0 when p is empty.
func NewReader(p []byte, validBits int) (*Reader, error) {
	if len(p) == 0 {
		if validBits != 0 {
			return nil, ErrValidBits
		}
		return &Reader{}, nil
	}
	if validBits < 1 || validBits > 8 {
		return nil, ErrValidBits
	}
	return &Reader{p: p, bits: 8*(len(p)-1) + validBits}, nil
}

// ReadBit returns the next bit, or io.EOF once every meaningful bit has been read.
func (r *Reader) ReadBit() (uint, error) {
	if r.pos >= r.bits {
		return 0, io.EOF
	}
	bit := uint(r.p[r.pos>>3]>>(7-uint(r.pos&7))) & 1
	r.pos++
	return bit, nil
}

// Pos returns the number of bits already read.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of meaningful bits not yet read.
func (r *Reader) Remaining() int { return r.bits - r.pos }
