// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"log/slog"

	"github.com/elliotnunn/huffpack/internal/container"
	"github.com/elliotnunn/huffpack/internal/huffman"
	"github.com/elliotnunn/huffpack/internal/store"
	"github.com/elliotnunn/huffpack/internal/treecache"
)

type codec struct {
	trees *treecache.Cache
	store *store.Store // nil unless --cache is given
}

func (c *codec) compress(data []byte) ([]byte, error) {
	if c.store != nil {
		blob, ok, err := c.store.Get(data)
		if err != nil {
			slog.Warn("cacheReadError", "err", err)
		} else if ok {
			slog.Debug("cacheHit", "bytes", len(data))
			return blob, nil
		}
	}

	done := phase("frequencyScan")
	freqs := huffman.Count(data)
	done()

	done = phase("treeBuild")
	tree, err := c.trees.Build(&freqs)
	done()
	if err != nil {
		return nil, err
	}

	done = phase("bitPacking")
	payload, valid, err := tree.Table().Pack(data)
	done()
	if err != nil {
		return nil, err
	}

	done = phase("framing")
	blob, err := container.Marshal(&container.Header{
		ValidBits: valid,
		Version:   container.Version,
		Freqs:     freqs,
	}, payload)
	done()
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if err := c.store.Put(data, blob); err != nil {
			slog.Warn("cacheWriteError", "err", err)
		}
	}
	return blob, nil
}

func (c *codec) decompress(blob []byte) ([]byte, error) {
	if !isContainer(blob) {
		inner, kind, err := unwrap(blob)
		if err != nil {
			return nil, err
		}
		if kind != "" {
			slog.Debug("unwrapped", "format", kind, "in", len(blob), "out", len(inner))
			blob = inner
		}
	}

	done := phase("headerParse")
	h, payload, err := container.Unmarshal(blob)
	done()
	if err != nil {
		return nil, err
	}

	done = phase("treeBuild")
	tree, err := c.trees.Build(&h.Freqs)
	done()
	if err != nil {
		return nil, err
	}

	done = phase("treeWalk")
	out, err := tree.Decode(payload, h.ValidBits)
	done()
	return out, err
}
