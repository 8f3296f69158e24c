// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// batch runs each over every file under root matching pattern,
// one file at a time, stopping at the first failure.
// rename maps a match to its output name, or rejects it.
func batch(root, pattern string, rename func(string) (string, bool), each func(in, out string) error) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("bad glob pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		slog.Warn("globNoMatch", "root", root, "pattern", pattern)
	}

	for _, m := range matches {
		out, ok := rename(m)
		if !ok {
			slog.Debug("globSkip", "path", m)
			continue
		}
		in := filepath.Join(root, filepath.FromSlash(m))
		if err := each(in, filepath.Join(root, filepath.FromSlash(out))); err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
	}
	return nil
}
