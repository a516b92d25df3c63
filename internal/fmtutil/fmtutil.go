// Package fmtutil renders game quantities for logs and status lines:
// short-scale suffixes for qi, comma grouping for stones, rounded
// durations for cooldowns.
package fmtutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

var scale = []struct {
	value  float64
	symbol string
}{
	{1e18, "E"},
	{1e15, "P"},
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// Number renders a quantity with short-scale suffixes (1.5K, 2.3M) and the
// given fractional digits. Values below one keep two decimals.
func Number(v float64, digits int) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs < 1 {
		return fmt.Sprintf("%.2f", v)
	}
	for _, s := range scale {
		if abs >= s.value {
			return trimZeros(fmt.Sprintf("%.*f", digits, v/s.value)) + s.symbol
		}
	}
	return fmt.Sprintf("%.0f", v)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Qi formats a qi amount.
func Qi(v float64) string {
	return Number(v, 2)
}

// Stones formats a spirit stone amount: comma-grouped below the short
// scale, suffixed above it.
func Stones(v float64) string {
	if math.Abs(v) < 1e6 {
		return humanize.Comma(int64(v))
	}
	return Number(v, 0)
}

// Cooldown renders a remaining duration rounded to the second.
func Cooldown(d time.Duration) string {
	if d <= 0 {
		return "ready"
	}
	return d.Round(time.Second).String()
}
