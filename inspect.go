// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"fmt"
	"strconv"

	"github.com/elliotnunn/huffpack/internal/container"
	"github.com/elliotnunn/huffpack/internal/huffman"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

func inspectAction(ctx *cli.Context) error {
	in := ctx.String("input")
	blob, err := readInput(ctx, in)
	if err != nil {
		return err
	}
	if !isContainer(blob) {
		if blob, _, err = unwrap(blob); err != nil {
			return err
		}
	}

	h, payload, err := container.Unmarshal(blob)
	if err != nil {
		return fmt.Errorf("%s: %w", label(in), err)
	}
	tree, err := huffman.NewTree(&h.Freqs)
	if err != nil {
		return fmt.Errorf("%s: %w", label(in), err)
	}
	table := tree.Table()

	w := ctx.App.Writer
	fmt.Fprintf(w, "version:    %d\n", h.Version)
	fmt.Fprintf(w, "pairs:      %d (%d header bytes)\n", h.Freqs.Distinct(), h.Size())
	fmt.Fprintf(w, "payload:    %d bytes, %d valid bits in the last\n", len(payload), h.ValidBits)
	fmt.Fprintf(w, "original:   %d bytes\n", h.Freqs.Total())
	fmt.Fprintf(w, "code bits:  %d (stream holds %d)\n", table.Cost(&h.Freqs), 8*(len(payload)-1)+h.ValidBits)

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"byte", "char", "freq", "len", "code"})
	for b, n := range h.Freqs {
		if n == 0 {
			continue
		}
		code := table[b]
		tw.Append([]string{
			fmt.Sprintf("%#02x", b),
			printable(byte(b)),
			strconv.FormatUint(n, 10),
			strconv.Itoa(int(code.Len)),
			code.String(),
		})
	}
	tw.Render()
	return nil
}

func printable(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return ""
}
