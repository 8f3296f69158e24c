// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package container

import (
	"github.com/elliotnunn/huffpack/internal/huffman"
)

// A TreeBuilder turns a frequency table into a code tree.
// A cache of trees can stand in for [huffman.NewTree].
type TreeBuilder interface {
	Build(f *huffman.Frequencies) (*huffman.Tree, error)
}

type freshTrees struct{}

func (freshTrees) Build(f *huffman.Frequencies) (*huffman.Tree, error) { return huffman.NewTree(f) }

// Encode compresses data into a complete container.
// Empty input has no code and fails with [huffman.ErrEmpty].
func Encode(data []byte) ([]byte, error) {
	freqs := huffman.Count(data)
	tree, err := huffman.NewTree(&freqs)
	if err != nil {
		return nil, err
	}
	payload, valid, err := tree.Table().Pack(data)
	if err != nil {
		return nil, err
	}
	return Marshal(&Header{ValidBits: valid, Version: Version, Freqs: freqs}, payload)
}

// Decode reverses Encode.
func Decode(b []byte) ([]byte, error) {
	return DecodeWith(b, freshTrees{})
}

// DecodeWith is Decode with the tree supplied by trees.
func DecodeWith(b []byte, trees TreeBuilder) ([]byte, error) {
	h, payload, err := Unmarshal(b)
	if err != nil {
		return nil, err
	}
	tree, err := trees.Build(&h.Freqs)
	if err != nil {
		return nil, err
	}
	return tree.Decode(payload, h.ValidBits)
}
