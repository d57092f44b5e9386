// Package timestamp formats playback positions for the spreadsheet.
package timestamp

import (
	"fmt"
	"math"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Format converts a playback position in milliseconds into a HH:MM:SS
// time-of-day string. Fractional seconds are truncated and hours wrap at 24.
// Negative and NaN positions format as 00:00:00.
func Format(ms float64) string {
	if math.IsNaN(ms) || ms <= 0 {
		return "00:00:00"
	}
	if math.IsInf(ms, 1) {
		return "00:00:00"
	}
	// Wrap in float space first; int64 cannot hold every finite position.
	return formatSeconds(int64(math.Mod(math.Floor(ms/1000), secondsPerDay)))
}

// FormatDuration applies the same rule as Format to a duration.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "00:00:00"
	}
	return formatSeconds(int64(d / time.Second))
}

func formatSeconds(total int64) string {
	total %= secondsPerDay
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
