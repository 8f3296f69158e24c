// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/elliotnunn/huffpack/internal/container"
	"github.com/therootcompany/xz"
)

func isContainer(data []byte) bool {
	return bytes.HasPrefix(data, []byte(container.Magic))
}

// unwrap strips one layer of gzip, bzip2 or xz from data.
// Data in none of those formats comes back unchanged with an empty kind.
func unwrap(data []byte) (out []byte, kind string, err error) {
	matchAt := func(s string, offset int) bool {
		return len(data) >= offset+len(s) && string(data[offset:][:len(s)]) == s
	}

	var r io.Reader
	switch {
	case matchAt("\x1f\x8b", 0):
		kind = "gzip"
		r, err = gzip.NewReader(bytes.NewReader(data))
	case matchAt("BZh", 0):
		kind = "bzip2"
		r = bzip2.NewReader(bytes.NewReader(data))
	case matchAt("\xfd7zXZ\x00", 0):
		kind = "xz"
		r, err = xz.NewReader(bytes.NewReader(data), xz.DefaultDictMax)
	default:
		return data, "", nil
	}
	if err != nil {
		return nil, kind, fmt.Errorf("%s: %w", kind, err)
	}

	out, err = readAllLimited(r)
	if err != nil {
		return nil, kind, fmt.Errorf("%s: %w", kind, err)
	}
	return out, kind, nil
}
