package ui

import (
	"fmt"
	"strings"
	"time"
)

// formatCountdown renders HH:MM:SS from one hour up and MM:SS below.
func formatCountdown(d time.Duration) string {
	seconds := max(0, int(d/time.Second))
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatOffset renders a minute count as "+25m" or "+2h05m".
func formatOffset(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("+%dm", minutes)
	}
	return fmt.Sprintf("+%dh%02dm", minutes/60, minutes%60)
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}

func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// spansMultiple reports whether [start, start+width) contains a multiple of n.
func spansMultiple(start, width, n int) bool {
	if n <= 0 || width <= 0 {
		return false
	}
	first := ((start + n - 1) / n) * n
	return first < start+width
}
