// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"fmt"
	"log/slog"
	"time"
)

// phase starts timing a named step of the pipeline; call the result when it ends.
func phase(name string) func() {
	t := time.Now()
	return func() {
		slog.Debug("phase", "name", name, "elapsed", formatElapsed(time.Since(t)))
	}
}

func formatElapsed(d time.Duration) string {
	n := d.Nanoseconds()
	switch {
	case n < 1_000:
		return fmt.Sprintf("%dns", n)
	case n < 1_000_000:
		return fmt.Sprintf("%.0fµs", float64(n)/1e3)
	case n < 1_000_000_000:
		return fmt.Sprintf("%.0fms", float64(n)/1e6)
	default:
		return fmt.Sprintf("%.2fs", float64(n)/1e9)
	}
}
