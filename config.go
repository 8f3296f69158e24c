// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

var maxInput int64 = calcMaxInput()

func calcMaxInput() int64 {
	if e := os.Getenv("HUFFPACK_MAX"); e != "" {
		f, err := strconv.ParseFloat(e, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			panic("malformed HUFFPACK_MAX environment variable, should be a number of gigabytes: " + e)
		}
		return int64(f * 1024 * 1024 * 1024)
	}
	return 1024 * 1024 * 1024 // fall back on 1GiB
}

// logLevel picks the slog level from --verbose, then HUFFPACK_LOG, then Info.
func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	var l slog.Level
	if e := os.Getenv("HUFFPACK_LOG"); e != "" {
		if err := l.UnmarshalText([]byte(strings.TrimSpace(e))); err == nil {
			return l
		}
		slog.Warn("badLogLevel", "HUFFPACK_LOG", e)
	}
	return slog.LevelInfo
}
