package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gtimer/internal/activity"
	"github.com/five82/gtimer/internal/config"
	"github.com/five82/gtimer/internal/effects"
	"github.com/five82/gtimer/internal/engine"
	"github.com/five82/gtimer/internal/notify"
	"github.com/five82/gtimer/internal/prefs"
	"github.com/five82/gtimer/internal/state"
	"github.com/five82/gtimer/internal/tick"
	"github.com/five82/gtimer/internal/timefmt"
	"github.com/five82/gtimer/internal/ui"
)

// Options configure the gtimer application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/gtimer/prefs.toml
}

// Run boots the gtimer TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load gtimer config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	// The TUI owns the terminal, so the standard logger goes to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.LogPath, "")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	store := &state.Store{}
	alerts := make(chan notify.Alert, 4)

	notifyOpts := notify.Options{
		Title: cfg.NotificationTitle,
		Body:  cfg.NotificationBody,
		OnFire: func(a notify.Alert) {
			store.MarkFired(a.FiredAt)
			select {
			case alerts <- a:
			default:
			}
		},
	}
	if cfg.Sound {
		notifyOpts.Sound = loadSound(cfg)
	}
	notifier := notify.NewLocal(notifyOpts)
	defer notifier.Close()

	dispatcher := effects.New(effects.Options{
		Notifier:          notifier,
		Activities:        activity.NewFileService(cfg.ActivityPath),
		ActivitiesEnabled: cfg.LiveActivity,
		OnWarning:         store.Warn,
	})
	defer dispatcher.Close()

	eng := engine.New(engine.Options{
		Snap:         cfg.Snap(),
		Clock:        tick.SystemClock{},
		TickInterval: cfg.TickInterval,
		Sink:         dispatcher,
		Store:        store,
	})
	// Runs before the dispatcher drains, so teardown requests are delivered.
	defer eng.Close()

	log.Printf("app: started, %d min per row, activity file %s (enabled=%t)", cfg.MinutesPerRow(), cfg.ActivityPath, cfg.LiveActivity)

	program := ui.NewProgram(ui.Options{
		Engine:    eng,
		Store:     store,
		Snap:      cfg.Snap(),
		RowPixels: cfg.RowPixels,
		LogPath:   cfg.LogPath,
		ThemeName: userPrefs.Theme,
		ShowLog:   userPrefs.ShowLog,
		PrefsPath: opts.PrefsPath,

		ClockLayout: timefmt.Layout(cfg.ClockFormat),
	})

	done := make(chan struct{})
	defer close(done)
	go forward(ctx, done, program, alerts)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	log.Printf("app: exiting")
	return nil
}

// forward relays fired alerts to the program and quits it when ctx ends.
func forward(ctx context.Context, done <-chan struct{}, program *tea.Program, alerts <-chan notify.Alert) {
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			program.Quit()
			return
		case a := <-alerts:
			program.Send(ui.AlertMsg(a))
		}
	}
}

// loadSound prefers the configured sound file and falls back to the
// built-in chime.
func loadSound(cfg config.Config) *notify.Chime {
	if cfg.SoundFile == "" {
		return notify.NewChime(cfg.Volume)
	}
	chime, err := notify.LoadSound(cfg.SoundFile, cfg.Volume)
	if err != nil {
		log.Printf("app: warn: load sound: %v; using built-in chime", err)
		return notify.NewChime(cfg.Volume)
	}
	return chime
}
