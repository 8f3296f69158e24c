// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package treecache

import (
	"errors"
	"testing"

	"github.com/elliotnunn/huffpack/internal/huffman"
)

func TestBuild(t *testing.T) {
	c := New(4)
	a := huffman.Count([]byte("abracadabra"))
	b := huffman.Count([]byte("mississippi"))

	t1, err := c.Build(&a)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := c.Build(&a)
	if err != nil {
		t.Fatal(err)
	}
	if t1 != t2 {
		t.Error("second Build of the same table should return the cached tree")
	}
	t3, err := c.Build(&b)
	if err != nil {
		t.Fatal(err)
	}
	if t3 == t1 {
		t.Error("different tables share a tree")
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 2 {
		t.Errorf("hits=%d misses=%d, expected 1 and 2", hits, misses)
	}
}

func TestBuildEmpty(t *testing.T) {
	var f huffman.Frequencies
	if _, err := New(1).Build(&f); !errors.Is(err, huffman.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestDigest(t *testing.T) {
	a := huffman.Count([]byte("ab"))
	b := huffman.Count([]byte("abb"))
	c := huffman.Count([]byte("ba"))
	if Digest(&a) == Digest(&b) {
		t.Error("different tables, same digest")
	}
	if Digest(&a) != Digest(&c) {
		t.Error("equal tables, different digests")
	}
}
