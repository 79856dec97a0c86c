package activity

import (
	"fmt"
	"strings"
	"time"
)

// FormatFull renders h:mm:ss above an hour and mm:ss below.
func FormatFull(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatCompact renders whole minutes with a unit, e.g. "5m".
func FormatCompact(seconds int) string {
	return fmt.Sprintf("%dm", max(seconds, 0)/60)
}

// FormatMinimal renders whole minutes only.
func FormatMinimal(seconds int) string {
	return fmt.Sprintf("%d", max(seconds, 0)/60)
}

// FormatEnd renders the end instant as a short local clock time.
func FormatEnd(end time.Time) string {
	return end.Local().Format(time.Kitchen)
}

// Formats lists the names accepted by Format.
var Formats = []string{"full", "compact", "minimal"}

// Format renders seconds in the named style.
func Format(name string, seconds int) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "full":
		return FormatFull(seconds), nil
	case "compact":
		return FormatCompact(seconds), nil
	case "minimal":
		return FormatMinimal(seconds), nil
	default:
		return "", fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}
