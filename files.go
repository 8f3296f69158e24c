// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

var (
	errInputTooLarge = errors.New("input larger than HUFFPACK_MAX")
	errTerminal      = errors.New("refusing to write a container to a terminal (use --force)")
)

func isStdio(name string) bool { return name == "" || name == "-" }

func label(name string) string {
	if isStdio(name) {
		return "<stdio>"
	}
	return name
}

func readInput(ctx *cli.Context, name string) ([]byte, error) {
	if isStdio(name) {
		return readAllLimited(ctx.App.Reader)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readAllLimited(f)
}

func readAllLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInput+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxInput {
		return nil, fmt.Errorf("%w (%d bytes)", errInputTooLarge, maxInput)
	}
	return data, nil
}

// writeOutput writes data to the named file, or to stdout.
// A binary result is kept off an interactive terminal unless forced.
func writeOutput(ctx *cli.Context, name string, data []byte, binary bool) (err error) {
	if isStdio(name) {
		if f, ok := ctx.App.Writer.(*os.File); ok && binary && !ctx.Bool("force") && isTerminal(f.Fd()) {
			return errTerminal
		}
		_, err = ctx.App.Writer.Write(data)
		return err
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return err
}

func addSuffix(name string) (string, bool) {
	if strings.HasSuffix(name, suffix) {
		return "", false
	}
	return name + suffix, true
}

func stripSuffix(name string) (string, bool) {
	out, ok := strings.CutSuffix(name, suffix)
	return out, ok && out != "" && !strings.HasSuffix(out, "/")
}

func defaultOutput(in string, rename func(string) (string, bool)) string {
	if isStdio(in) {
		return "-"
	}
	if out, ok := rename(filepath.ToSlash(in)); ok {
		return filepath.FromSlash(out)
	}
	return "-"
}
