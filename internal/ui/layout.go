package ui

import "time"

// Screen rows outside the timeline.
const (
	headerRows = 2
	footerRows = 1

	// logPaneRows includes the pane's border.
	logPaneRows = 10
)

// Timeline columns.
const (
	labelWidth      = 8
	tickWidth       = 10
	hourEveryMin    = 60
	tickEveryMin    = 10
	minTimelineRows = 3
)

// Log display limits.
const (
	// LogTailLines is how many log lines the pane keeps.
	LogTailLines = 400
)

// Timing constants.
const (
	// DefaultUIInterval is how often the model re-reads the snapshot.
	DefaultUIInterval = 250 * time.Millisecond

	// AlertBannerTTL is how long a fired alert stays in the header.
	AlertBannerTTL = 15 * time.Second

	// WarningTTL is how long a collaborator warning stays in the header.
	WarningTTL = time.Minute
)
