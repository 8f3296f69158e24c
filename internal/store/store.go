// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package store is an on-disk cache of finished containers,
// keyed by the content of the input that produced them.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/pebble/v2"
)

type Store struct {
	db *pebble.DB
}

// Open opens or creates a store in dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{Logger: logger{}})
	if err != nil {
		return nil, fmt.Errorf("open container cache %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Key identifies an input by a digest of its content and its length.
func Key(input []byte) []byte {
	k := make([]byte, 0, 17)
	k = append(k, 'c')
	k = binary.BigEndian.AppendUint64(k, xxhash.Sum64(input))
	k = binary.BigEndian.AppendUint64(k, uint64(len(input)))
	return k
}

// Get returns the container previously stored for input, if any.
func (s *Store) Get(input []byte) ([]byte, bool, error) {
	v, closer, err := s.db.Get(Key(input))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	defer closer.Close()
	return append([]byte(nil), v...), true, nil
}

// Put records the container for input.
func (s *Store) Put(input, container []byte) error {
	return s.db.Set(Key(input), container, pebble.Sync)
}

// logger routes pebble's own messages through slog
type logger struct{}

func (logger) Infof(format string, args ...any) {
	slog.Debug("pebble", "msg", fmt.Sprintf(format, args...))
}

func (logger) Errorf(format string, args ...any) {
	slog.Error("pebble", "msg", fmt.Sprintf(format, args...))
}

func (logger) Fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
