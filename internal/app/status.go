package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/five82/gtimer/internal/activity"
)

const defaultWatchInterval = time.Second

// StatusOptions configure the status line printed for shell prompts and
// status bars.
type StatusOptions struct {
	Path   string
	Format string // full, compact, minimal or progress
	// ShowEnd appends the end clock time.
	ShowEnd bool

	Interval time.Duration // zero uses default for WatchStatus
	Now      func() time.Time
}

// PrintStatus writes one status line. Nothing is written when no countdown
// is live.
func PrintStatus(w io.Writer, opts StatusOptions) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}
	line, err := statusLine(opts)
	if err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	_, err = fmt.Fprintln(w, line)
	return err
}

// WatchStatus prints the status line each time it changes until ctx is
// cancelled. An empty line is printed when the countdown ends so bars clear.
// Read failures are logged and retried on the next interval.
func WatchStatus(ctx context.Context, w io.Writer, opts StatusOptions) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last, printed := "", false
	for {
		line, err := statusLine(opts)
		switch {
		case err != nil:
			log.Printf("status: warn: %v", err)
		case !printed || line != last:
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			last, printed = line, true
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func statusLine(opts StatusOptions) (string, error) {
	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}

	status, err := activity.Read(opts.Path)
	if errors.Is(err, activity.ErrNoActivity) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var line string
	if opts.Format == "progress" {
		line = fmt.Sprintf("%d%%", int(status.ProgressAt(now)*100))
	} else {
		line, err = activity.Format(opts.Format, status.RemainingAt(now))
		if err != nil {
			return "", err
		}
	}
	if opts.ShowEnd {
		line += " " + activity.FormatEnd(status.End)
	}
	return line, nil
}

func validateFormat(name string) error {
	if name == "progress" {
		return nil
	}
	_, err := activity.Format(name, 0)
	return err
}
