// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package huffman builds Huffman code trees from byte frequencies,
// derives the per-byte code table used for packing,
// and walks the tree to unpack a bit stream.
package huffman

import (
	"errors"
)

var (
	ErrEmpty       = errors.New("huffman: no byte values to code")
	ErrCorrupt     = errors.New("huffman: corrupt payload")
	ErrMissingCode = errors.New("huffman: byte has no code in this table")
	ErrCodeTooLong = errors.New("huffman: code longer than 64 bits")
)

// Node is either a leaf (no children, Byte is meaningful)
// or an internal node (both children set, Freq is the sum of theirs).
// Children belong to exactly one parent and a tree is never modified after it is built.
type Node struct {
	Freq        uint64
	Byte        byte
	Left, Right *Node
}

func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Tree is a finished code tree together with the code table derived from it.
// A Tree is read-only and safe to share.
type Tree struct {
	root  *Node
	table Table
}

// NewTree builds the code tree for f by repeatedly merging the two
// least frequent nodes. Leaves are seeded in ascending byte order,
// so the same frequencies always give the same tree.
func NewTree(f *Frequencies) (*Tree, error) {
	var h Heap
	for b, n := range f {
		if n != 0 {
			h.Add(&Node{Freq: n, Byte: byte(b)})
		}
	}
	if h.Len() == 0 {
		return nil, ErrEmpty
	}

	for h.Len() > 1 {
		a := h.ExtractMin()
		b := h.ExtractMin()
		h.Add(&Node{Freq: a.Freq + b.Freq, Left: a, Right: b})
	}

	t := &Tree{root: h.ExtractMin()}
	if t.root.IsLeaf() {
		// A lone byte value still needs one bit per occurrence
		t.table[t.root.Byte] = Code{Bits: 0, Len: 1}
		return t, nil
	}
	if err := fillTable(&t.table, t.root, 0, 0); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) Root() *Node { return t.root }

// Table returns the per-byte codes. The caller must not modify it.
func (t *Tree) Table() *Table { return &t.table }

// Depth returns the code length assigned to b, or 0 if b has no code.
func (t *Tree) Depth(b byte) int { return int(t.table[b].Len) }
