package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/gtimer/internal/snap"
)

// Config holds the user-tunable settings for gtimer.
type Config struct {
	PixelsPerMinute float64
	StepMinutes     int
	MaxMinutes      int
	// RowPixels is the drag distance one terminal row stands for.
	RowPixels    float64
	TickInterval time.Duration

	LiveActivity bool
	ActivityPath string
	LogPath      string

	Sound bool
	// SoundFile replaces the built-in chime with a .wav or .ogg file.
	SoundFile string
	// Volume is in doublings relative to the recording; 0 is unchanged.
	Volume            float64
	NotificationTitle string
	NotificationBody  string

	// ClockFormat is "24h", "12h" or "auto" (from the system locale).
	ClockFormat string
}

const (
	defaultConfigPath        = "~/.config/gtimer/config.toml"
	defaultActivityPath      = "~/.local/state/gtimer/activity.yaml"
	defaultLogPath           = "~/.local/state/gtimer/gtimer.log"
	defaultPixelsPerMinute   = 6
	defaultStepMinutes       = 1
	defaultMaxMinutes        = 600
	defaultRowPixels         = 30
	defaultTickSeconds       = 1
	maxTickSeconds           = 5
	defaultNotificationTitle = "Time's up"
	defaultNotificationBody  = "Countdown finished"
	defaultClockFormat       = "auto"
	minVolume                = -10
	maxVolume                = 3
)

// ClockFormats lists the accepted clock_format values.
var ClockFormats = []string{"auto", "24h", "12h"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PixelsPerMinute:   defaultPixelsPerMinute,
		StepMinutes:       defaultStepMinutes,
		MaxMinutes:        defaultMaxMinutes,
		RowPixels:         defaultRowPixels,
		TickInterval:      defaultTickSeconds * time.Second,
		LiveActivity:      true,
		ActivityPath:      mustExpand(defaultActivityPath),
		LogPath:           mustExpand(defaultLogPath),
		Sound:             true,
		NotificationTitle: defaultNotificationTitle,
		NotificationBody:  defaultNotificationBody,
		ClockFormat:       defaultClockFormat,
	}
}

// Load locates and parses the gtimer config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		PixelsPerMinute   float64 `toml:"pixels_per_minute"`
		StepMinutes       int     `toml:"step_minutes"`
		MaxMinutes        int     `toml:"max_minutes"`
		RowPixels         float64 `toml:"row_pixels"`
		TickSeconds       int     `toml:"tick_seconds"`
		LiveActivity      *bool   `toml:"live_activity"`
		ActivityPath      string  `toml:"activity_path"`
		LogPath           string  `toml:"log_path"`
		Sound             *bool    `toml:"sound"`
		SoundFile         string   `toml:"sound_file"`
		Volume            *float64 `toml:"volume"`
		NotificationTitle string   `toml:"notification_title"`
		NotificationBody  string   `toml:"notification_body"`
		ClockFormat       string   `toml:"clock_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.PixelsPerMinute > 0 {
		cfg.PixelsPerMinute = raw.PixelsPerMinute
	}
	if raw.StepMinutes > 0 {
		cfg.StepMinutes = raw.StepMinutes
	}
	if raw.MaxMinutes > 0 {
		cfg.MaxMinutes = raw.MaxMinutes
	}
	if raw.RowPixels > 0 {
		cfg.RowPixels = raw.RowPixels
	}
	if raw.TickSeconds > 0 && raw.TickSeconds <= maxTickSeconds {
		cfg.TickInterval = time.Duration(raw.TickSeconds) * time.Second
	}
	if raw.LiveActivity != nil {
		cfg.LiveActivity = *raw.LiveActivity
	}
	if raw.Sound != nil {
		cfg.Sound = *raw.Sound
	}
	if p := strings.TrimSpace(raw.ActivityPath); p != "" {
		cfg.ActivityPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogPath); p != "" {
		cfg.LogPath = mustExpand(p)
	}
	if s := strings.TrimSpace(raw.NotificationTitle); s != "" {
		cfg.NotificationTitle = s
	}
	if s := strings.TrimSpace(raw.NotificationBody); s != "" {
		cfg.NotificationBody = s
	}
	if p := strings.TrimSpace(raw.SoundFile); p != "" {
		cfg.SoundFile = mustExpand(p)
	}
	if raw.Volume != nil && *raw.Volume >= minVolume && *raw.Volume <= maxVolume {
		cfg.Volume = *raw.Volume
	}
	if f := strings.ToLower(strings.TrimSpace(raw.ClockFormat)); slices.Contains(ClockFormats, f) {
		cfg.ClockFormat = f
	}

	return cfg, nil
}

// Snap returns the snapping parameters derived from the config.
func (c Config) Snap() snap.Config {
	return snap.Config{
		PixelsPerMinute: c.PixelsPerMinute,
		StepMinutes:     c.StepMinutes,
		MaxMinutes:      c.MaxMinutes,
	}.Validate()
}

// MinutesPerRow is how many minutes one terminal row covers, at least one.
func (c Config) MinutesPerRow() int {
	if c.PixelsPerMinute <= 0 || c.RowPixels <= 0 {
		return defaultRowPixels / defaultPixelsPerMinute
	}
	return max(1, int(c.RowPixels/c.PixelsPerMinute))
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes the path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
