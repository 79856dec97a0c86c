package ui

import (
	"testing"
	"time"
)

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"negative", -5 * time.Second, "00:00"},
		{"zero", 0, "00:00"},
		{"truncates", 59*time.Second + 900*time.Millisecond, "00:59"},
		{"minutes", 25*time.Minute + 3*time.Second, "25:03"},
		{"hours", 2*time.Hour + 5*time.Minute + 9*time.Second, "02:05:09"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatCountdown(tc.in); got != tc.want {
				t.Fatalf("formatCountdown(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatOffset(t *testing.T) {
	if got := formatOffset(25); got != "+25m" {
		t.Fatalf("formatOffset(25) = %q, want +25m", got)
	}
	if got := formatOffset(125); got != "+2h05m" {
		t.Fatalf("formatOffset(125) = %q, want +2h05m", got)
	}
}

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"subsecond", 300 * time.Millisecond, "now"},
		{"seconds", 12 * time.Second, "12s"},
		{"minutes", 61 * time.Second, "1m"},
		{"hours", 2*time.Hour + 10*time.Minute, "2h"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := humanizeDuration(tc.in); got != tc.want {
				t.Fatalf("humanizeDuration(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("/home/user/.local/state/gtimer/gtimer.log", 12)
	if len([]rune(got)) != 12 {
		t.Fatalf("got %q (%d runes), want 12", got, len([]rune(got)))
	}
	if got[0] != '/' || got[len(got)-1] != 'g' {
		t.Fatalf("truncateMiddle kept %q, want both ends", got)
	}
}

func TestSpansMultiple(t *testing.T) {
	cases := []struct {
		start, width, n int
		want            bool
	}{
		{0, 1, 60, true},
		{55, 5, 60, false},
		{55, 6, 60, true},
		{58, 5, 10, true},
		{61, 5, 10, false},
		{0, 0, 10, false},
		{5, 5, 0, false},
	}
	for _, tc := range cases {
		if got := spansMultiple(tc.start, tc.width, tc.n); got != tc.want {
			t.Fatalf("spansMultiple(%d, %d, %d) = %v, want %v", tc.start, tc.width, tc.n, got, tc.want)
		}
	}
}
