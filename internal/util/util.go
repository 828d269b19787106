// Package util formats sync diagnostics for people.
package util

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes formats bytes into human readable binary units (e.g., "1.5 KiB").
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}

	return humanize.IBytes(uint64(bytes))
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}

// FormatLastSynced renders staleness the way users see it, e.g. "2 hours ago".
func FormatLastSynced(lastSyncedAt *time.Time, now time.Time) string {
	if lastSyncedAt == nil || lastSyncedAt.IsZero() {
		return "never"
	}

	return humanize.RelTime(*lastSyncedAt, now, "ago", "from now")
}

// FormatWatermark renders an epoch-millisecond cursor timestamp.
func FormatWatermark(millis int64) string {
	if millis <= 0 {
		return "-"
	}

	return time.UnixMilli(millis).UTC().Format(time.RFC3339)
}
