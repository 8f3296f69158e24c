// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/elliotnunn/huffpack/internal/huffman"
	"github.com/elliotnunn/huffpack/internal/store"
	"github.com/elliotnunn/huffpack/internal/treecache"
	"github.com/urfave/cli/v2"
)

const suffix = ".huff"

var (
	inputFlag = &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "file to read, - for stdin",
		Value:   "-",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "file to write, - for stdout (default: input name with " + suffix + " added or removed)",
	}
	globFlag = &cli.StringFlag{
		Name:  "glob",
		Usage: "process every file under --root matching this doublestar pattern, e.g. '**/*.txt'",
	}
	rootFlag = &cli.StringFlag{
		Name:  "root",
		Usage: "directory that --glob is matched against",
		Value: ".",
	}
	cacheFlag = &cli.StringFlag{
		Name:  "cache",
		Usage: "directory of a container cache keyed by input content",
	}
	unwrapFlag = &cli.BoolFlag{
		Name:  "unwrap",
		Usage: "strip a gzip, bzip2 or xz layer from the input before compressing",
	}
	forceFlag = &cli.BoolFlag{
		Name:  "force",
		Usage: "write binary output even to a terminal",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "huffpack:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "huffpack",
		Usage: "Huffman-code files into self-describing containers",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log each phase with its elapsed time",
			},
		},
		Before: func(ctx *cli.Context) error {
			h := slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: logLevel(ctx.Bool("verbose"))})
			slog.SetDefault(slog.New(h))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "compress",
				Aliases: []string{"c"},
				Usage:   "compress a file into a container",
				Flags:   []cli.Flag{inputFlag, outputFlag, globFlag, rootFlag, cacheFlag, unwrapFlag, forceFlag},
				Action:  compressAction,
			},
			{
				Name:    "decompress",
				Aliases: []string{"d"},
				Usage:   "restore the original bytes from a container",
				Flags:   []cli.Flag{inputFlag, outputFlag, globFlag, rootFlag},
				Action:  decompressAction,
			},
			{
				Name:   "inspect",
				Usage:  "print a container's header and code table",
				Flags:  []cli.Flag{inputFlag},
				Action: inspectAction,
			},
		},
	}
}

func newCodec(ctx *cli.Context) (*codec, error) {
	c := &codec{trees: treecache.New(64)}
	if dir := ctx.String("cache"); dir != "" {
		s, err := store.Open(dir)
		if err != nil {
			return nil, err
		}
		c.store = s
	}
	return c, nil
}

func (c *codec) close() {
	hits, misses := c.trees.Stats()
	slog.Debug("treeCache", "hits", hits, "misses", misses)
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			slog.Warn("cacheCloseError", "err", err)
		}
	}
}

func compressAction(ctx *cli.Context) error {
	c, err := newCodec(ctx)
	if err != nil {
		return err
	}
	defer c.close()

	if pattern := ctx.String("glob"); pattern != "" {
		return batch(ctx.String("root"), pattern, addSuffix, func(in, out string) error {
			return compressFile(ctx, c, in, out)
		})
	}
	out := ctx.String("output")
	if out == "" {
		out = defaultOutput(ctx.String("input"), addSuffix)
	}
	return compressFile(ctx, c, ctx.String("input"), out)
}

func compressFile(ctx *cli.Context, c *codec, in, out string) error {
	data, err := readInput(ctx, in)
	if err != nil {
		return err
	}
	if ctx.Bool("unwrap") {
		inner, kind, err := unwrap(data)
		if err != nil {
			return err
		}
		if kind != "" {
			slog.Info("unwrapped", "input", label(in), "format", kind, "in", len(data), "out", len(inner))
			data = inner
		}
	}

	blob, err := c.compress(data)
	if errors.Is(err, huffman.ErrEmpty) {
		return fmt.Errorf("%s is empty, nothing to compress: %w", label(in), err)
	} else if err != nil {
		return err
	}
	if err := writeOutput(ctx, out, blob, true); err != nil {
		return err
	}
	slog.Info("compressed", "input", label(in), "output", label(out),
		"in", len(data), "out", len(blob), "ratio", ratio(len(blob), len(data)))
	return nil
}

func decompressAction(ctx *cli.Context) error {
	c, err := newCodec(ctx)
	if err != nil {
		return err
	}
	defer c.close()

	if pattern := ctx.String("glob"); pattern != "" {
		return batch(ctx.String("root"), pattern, stripSuffix, func(in, out string) error {
			return decompressFile(ctx, c, in, out)
		})
	}
	out := ctx.String("output")
	if out == "" {
		out = defaultOutput(ctx.String("input"), stripSuffix)
	}
	return decompressFile(ctx, c, ctx.String("input"), out)
}

func decompressFile(ctx *cli.Context, c *codec, in, out string) error {
	blob, err := readInput(ctx, in)
	if err != nil {
		return err
	}
	data, err := c.decompress(blob)
	if err != nil {
		return fmt.Errorf("%s: %w", label(in), err)
	}
	if err := writeOutput(ctx, out, data, false); err != nil {
		return err
	}
	slog.Info("decompressed", "input", label(in), "output", label(out), "in", len(blob), "out", len(data))
	return nil
}

func ratio(out, in int) string {
	if in == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(out)/float64(in))
}
