package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/five82/gtimer/internal/activity"
	"github.com/five82/gtimer/internal/app"
	"github.com/five82/gtimer/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("gtimer", flag.ContinueOnError)
	configPath := fs.String("config", "", "override gtimer config path (optional)")
	prefsPath := fs.String("prefs", "", "override prefs path (optional)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: gtimer [-config path] [-prefs path] [status [flags]]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rest := fs.Args()
	if len(rest) > 0 {
		switch rest[0] {
		case "status":
			return runStatus(ctx, *configPath, rest[1:])
		default:
			fmt.Fprintf(os.Stderr, "gtimer: unknown command %q\n", rest[0])
			fs.Usage()
			return 2
		}
	}

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "gtimer: %v\n", err)
		return 1
	}
	return 0
}

func runStatus(ctx context.Context, configPath string, args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	format := fs.String("format", "full", "one of "+strings.Join(append(activity.Formats, "progress"), ", "))
	showEnd := fs.Bool("end", false, "append the end time")
	watch := fs.Bool("watch", false, "keep printing as the countdown changes")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gtimer: %v\n", err)
		return 1
	}

	opts := app.StatusOptions{Path: cfg.ActivityPath, Format: *format, ShowEnd: *showEnd}
	if *watch {
		err = app.WatchStatus(ctx, os.Stdout, opts)
	} else {
		err = app.PrintStatus(os.Stdout, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "gtimer: %v\n", err)
		return 1
	}
	return 0
}
