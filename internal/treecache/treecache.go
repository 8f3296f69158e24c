// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package treecache keeps recently built code trees so that containers sharing
// a frequency table do not each pay for tree construction.
package treecache

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
	"github.com/elliotnunn/huffpack/internal/huffman"
)

// Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu           sync.Mutex
	lfu          *tinylfu.T[uint64, entry]
	hits, misses int
}

type entry struct {
	freqs huffman.Frequencies // guards against digest collisions
	tree  *huffman.Tree
}

// New returns a Cache holding up to n trees.
func New(n int) *Cache {
	n = max(n, 1)
	return &Cache{
		lfu: tinylfu.New[uint64, entry](n, n*10, func(k uint64) uint64 { return k }),
	}
}

// Build returns the tree for f, constructing it only if it is not cached.
func (c *Cache) Build(f *huffman.Frequencies) (*huffman.Tree, error) {
	key := Digest(f)

	c.mu.Lock()
	e, ok := c.lfu.Get(key)
	if ok && e.freqs == *f {
		c.hits++
		c.mu.Unlock()
		return e.tree, nil
	}
	c.misses++
	c.mu.Unlock()

	tree, err := huffman.NewTree(f)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lfu.Add(key, entry{freqs: *f, tree: tree})
	c.mu.Unlock()
	return tree, nil
}

// Stats reports how many Build calls were served from the cache.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Digest hashes a frequency table.
func Digest(f *huffman.Frequencies) uint64 {
	h := xxhash.New()
	binary.Write(h, binary.BigEndian, f[:])
	return h.Sum64()
}
