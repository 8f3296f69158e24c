// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package container frames a Huffman-coded payload together with the
// frequency table needed to decode it.
//
// Layout, all integers big-endian:
//
//	0  "HUFF"
//	4  valid bits in the final payload byte (1-8)
//	5  format version (1)
//	6  uint16 pair count
//	8  pairs: byte value + uint32 frequency, ascending by byte value
//	.. packed payload to the end
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/elliotnunn/huffpack/internal/huffman"
)

const (
	Magic   = "HUFF"
	Version = 1

	fixedSize = 8
	pairSize  = 5
)

var (
	ErrHeader   = errors.New("bad container header")
	ErrVersion  = fmt.Errorf("%w: unsupported format version", ErrHeader)
	ErrTooLarge = errors.New("byte frequency too large for container")
	ErrCorrupt  = huffman.ErrCorrupt
)

// Header is everything in a container except the payload.
type Header struct {
	ValidBits int
	Version   int
	Freqs     huffman.Frequencies
}

// Size returns the encoded length of the header.
func (h *Header) Size() int {
	return fixedSize + pairSize*h.Freqs.Distinct()
}

// Marshal appends the header and payload into a new container.
func Marshal(h *Header, payload []byte) ([]byte, error) {
	version := h.Version
	if version == 0 {
		version = Version
	}
	if version < 0 || version > math.MaxUint8 {
		return nil, fmt.Errorf("%w: %d", ErrVersion, version)
	}
	if len(payload) == 0 || h.ValidBits < 1 || h.ValidBits > 8 {
		return nil, fmt.Errorf("%w: %d valid bits in a %d byte payload", ErrHeader, h.ValidBits, len(payload))
	}
	count := h.Freqs.Distinct()
	if count == 0 {
		return nil, fmt.Errorf("%w: empty frequency table", ErrHeader)
	}

	b := make([]byte, 0, h.Size()+len(payload))
	b = append(b, Magic...)
	b = append(b, byte(h.ValidBits), byte(version))
	b = binary.BigEndian.AppendUint16(b, uint16(count))
	for v, n := range h.Freqs {
		if n == 0 {
			continue
		}
		if n > math.MaxUint32 {
			return nil, fmt.Errorf("%w: byte %#02x occurs %d times", ErrTooLarge, v, n)
		}
		b = append(b, byte(v))
		b = binary.BigEndian.AppendUint32(b, uint32(n))
	}
	return append(b, payload...), nil
}

// Unmarshal validates the header of b and returns it along with the payload,
// which aliases b.
func Unmarshal(b []byte) (*Header, []byte, error) {
	if len(b) < fixedSize {
		return nil, nil, fmt.Errorf("%w: truncated at %d bytes", ErrHeader, len(b))
	}
	if string(b[:4]) != Magic {
		return nil, nil, fmt.Errorf("%w: magic %q", ErrHeader, b[:4])
	}
	h := &Header{
		ValidBits: int(b[4]),
		Version:   int(b[5]),
	}
	if h.Version != Version {
		return nil, nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	if h.ValidBits < 1 || h.ValidBits > 8 {
		return nil, nil, fmt.Errorf("%w: %d valid bits", ErrHeader, h.ValidBits)
	}

	count := int(binary.BigEndian.Uint16(b[6:]))
	if count == 0 || count > 256 {
		return nil, nil, fmt.Errorf("%w: %d pairs", ErrHeader, count)
	}
	end := fixedSize + pairSize*count
	if end > len(b) {
		return nil, nil, fmt.Errorf("%w: %d pairs need %d bytes, have %d", ErrHeader, count, end, len(b))
	}

	prev := -1
	for p := b[fixedSize:end]; len(p) > 0; p = p[pairSize:] {
		v := int(p[0])
		n := binary.BigEndian.Uint32(p[1:])
		if v <= prev {
			return nil, nil, fmt.Errorf("%w: byte %#02x out of order", ErrHeader, v)
		}
		if n == 0 {
			return nil, nil, fmt.Errorf("%w: byte %#02x has zero frequency", ErrHeader, v)
		}
		h.Freqs[v] = uint64(n)
		prev = v
	}

	payload := b[end:]
	if len(payload) == 0 {
		return nil, nil, fmt.Errorf("%w: no payload", ErrHeader)
	}
	return h, payload, nil
}
