// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"errors"
	"fmt"
	"io"

	"github.com/elliotnunn/huffpack/internal/bitstream"
)

// Decode walks the tree one bit at a time over packed, of which only
// validBits bits of the final byte are meaningful,
// emitting a byte every time it lands on a leaf.
//
// The stream must be an exact concatenation of codes and must decode to
// as many bytes as the frequencies the tree was built from add up to.
func (t *Tree) Decode(packed []byte, validBits int) ([]byte, error) {
	br, err := bitstream.NewReader(packed, validBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	// every code is at least one bit, so the stream bounds the output
	want := t.root.Freq
	out := make([]byte, 0, min(want, uint64(br.Remaining())))

	single := t.root.IsLeaf()
	node := t.root
	for {
		bit, err := br.ReadBit()
		if errors.Is(err, io.EOF) {
			break
		}

		if single {
			if bit != 0 {
				return nil, fmt.Errorf("%w: set bit at %d for a one-symbol code", ErrCorrupt, br.Pos()-1)
			}
			out = append(out, node.Byte)
			continue
		}

		if bit == 0 {
			node = node.Left
		} else {
			node = node.Right
		}
		if node == nil {
			return nil, fmt.Errorf("%w: no child at bit %d", ErrCorrupt, br.Pos()-1)
		}
		if node.IsLeaf() {
			out = append(out, node.Byte)
			node = t.root
		}
	}

	if node != t.root {
		return nil, fmt.Errorf("%w: stream ends inside a code", ErrCorrupt)
	}
	if uint64(len(out)) != want {
		return nil, fmt.Errorf("%w: decoded %d bytes, header promises %d", ErrCorrupt, len(out), want)
	}
	return out, nil
}
