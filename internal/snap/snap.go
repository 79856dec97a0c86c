package snap

import (
	"math"
	"time"
)

const (
	defaultPixelsPerMinute = 6
	defaultStepMinutes     = 1
	defaultMaxMinutes      = 600
)

// Config controls how drag displacement maps to minutes.
type Config struct {
	PixelsPerMinute float64
	StepMinutes     int
	MinMinutes      int
	MaxMinutes      int
}

// DefaultConfig returns the stock mapping: 6px per minute, 1 minute steps, up to 10 hours.
func DefaultConfig() Config {
	return Config{
		PixelsPerMinute: defaultPixelsPerMinute,
		StepMinutes:     defaultStepMinutes,
		MaxMinutes:      defaultMaxMinutes,
	}
}

// Validate returns a copy with unusable values replaced by defaults.
func (c Config) Validate() Config {
	if c.PixelsPerMinute <= 0 || math.IsNaN(c.PixelsPerMinute) || math.IsInf(c.PixelsPerMinute, 0) {
		c.PixelsPerMinute = defaultPixelsPerMinute
	}
	if c.StepMinutes <= 0 {
		c.StepMinutes = defaultStepMinutes
	}
	if c.MinMinutes < 0 {
		c.MinMinutes = 0
	}
	if c.MaxMinutes <= 0 {
		c.MaxMinutes = defaultMaxMinutes
	}
	if c.MaxMinutes < c.MinMinutes {
		c.MaxMinutes = c.MinMinutes
	}
	return c
}

// TotalMinutes is the span of the selectable range.
func (c Config) TotalMinutes() int {
	c = c.Validate()
	return c.MaxMinutes - c.MinMinutes
}

// Target is a snapped selection relative to the instant it was computed at.
type Target struct {
	Minutes int
	Instant time.Time
}

// Remaining returns how far the target lies after now, never negative.
func (t Target) Remaining(now time.Time) time.Duration {
	if d := t.Instant.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Snap converts a raw drag offset into a target. It is pure: identical
// inputs always produce identical output.
func Snap(offsetPixels float64, now time.Time, cfg Config) Target {
	minutes := Minutes(offsetPixels, cfg)
	return Target{
		Minutes: minutes,
		Instant: now.Add(time.Duration(minutes) * time.Minute),
	}
}

// Minutes is the minute component of Snap.
func Minutes(offsetPixels float64, cfg Config) int {
	cfg = cfg.Validate()

	raw := 0
	if offsetPixels > 0 && !math.IsNaN(offsetPixels) {
		ratio := math.Floor(offsetPixels / cfg.PixelsPerMinute)
		if ratio > float64(cfg.MaxMinutes) {
			ratio = float64(cfg.MaxMinutes)
		}
		raw = int(ratio)
	}

	step := float64(cfg.StepMinutes)
	snapped := int(math.Round(float64(raw)/step)) * cfg.StepMinutes
	return clamp(snapped, cfg.MinMinutes, cfg.MaxMinutes)
}

// OffsetFor returns an offset in the middle of the pixel band for minutes.
// The UI uses it to put the ring back on a committed value.
func OffsetFor(minutes int, cfg Config) float64 {
	cfg = cfg.Validate()
	minutes = clamp(minutes, cfg.MinMinutes, cfg.MaxMinutes)
	return (float64(minutes) + 0.5) * cfg.PixelsPerMinute
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
