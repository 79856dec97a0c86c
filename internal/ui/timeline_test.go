package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gtimer/internal/snap"
)

func sizedModel(t *testing.T, ctl Controller) Model {
	t.Helper()
	m := New(Options{
		Engine:    ctl,
		Snap:      snap.DefaultConfig(),
		RowPixels: 30,
		PrefsPath: t.TempDir() + "/prefs.toml",
		Now:       func() time.Time { return testNow },
	})
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func TestTimelineGeometry(t *testing.T) {
	m := sizedModel(t, nil)

	if got := m.minutesPerRow(); got != 5 {
		t.Fatalf("minutesPerRow = %d, want 5", got)
	}
	if got := m.rowCount(); got != 121 {
		t.Fatalf("rowCount = %d, want 121", got)
	}
	if got := m.timelineHeight(); got != 37 {
		t.Fatalf("timelineHeight = %d, want 37", got)
	}
	if got := snap.Minutes(m.rowOffset(7), m.snapCfg); got != 35 {
		t.Fatalf("rowOffset(7) snaps to %d min, want 35", got)
	}
	if got := m.rowForOffset(m.rowOffset(7)); got != 7 {
		t.Fatalf("rowForOffset(rowOffset(7)) = %d, want 7", got)
	}
	if got := m.rowForOffset(m.maxOffset()); got != 120 {
		t.Fatalf("rowForOffset(max) = %d, want 120", got)
	}
}

func TestTimelineGeometryWithMinimum(t *testing.T) {
	cfg := snap.DefaultConfig()
	cfg.MinMinutes = 10
	cfg.MaxMinutes = 70
	m := New(Options{Snap: cfg, RowPixels: 30, PrefsPath: t.TempDir() + "/prefs.toml"})

	if got := m.rowCount(); got != 13 {
		t.Fatalf("rowCount = %d, want 13", got)
	}
	if got := m.rowMinutes(0); got != 10 {
		t.Fatalf("rowMinutes(0) = %d, want 10", got)
	}
	if got := snap.Minutes(m.rowOffset(2), m.snapCfg); got != 20 {
		t.Fatalf("rowOffset(2) snaps to %d min, want 20", got)
	}
	if got := m.rowForOffset(m.rowOffset(2)); got != 2 {
		t.Fatalf("rowForOffset(rowOffset(2)) = %d, want 2", got)
	}
	if got := m.rowForOffset(m.maxOffset()); got != 12 {
		t.Fatalf("rowForOffset(max) = %d, want 12", got)
	}
	if got := m.rowForOffset(0); got != 0 {
		t.Fatalf("rowForOffset(0) = %d, want 0", got)
	}
}

func TestRowAtY(t *testing.T) {
	m := sizedModel(t, nil)

	if _, ok := m.rowAtY(headerRows - 1); ok {
		t.Fatalf("header row should be outside the timeline")
	}
	if row, ok := m.rowAtY(headerRows); !ok || row != 0 {
		t.Fatalf("rowAtY(top) = %d, %v; want 0, true", row, ok)
	}
	if _, ok := m.rowAtY(headerRows + m.timelineHeight()); ok {
		t.Fatalf("footer row should be outside the timeline")
	}
	if got := m.clampedRowAtY(500); got != m.timelineHeight()-1 {
		t.Fatalf("clampedRowAtY below = %d, want %d", got, m.timelineHeight()-1)
	}

	m.scrollBy(10)
	if row, ok := m.rowAtY(headerRows); !ok || row != 10 {
		t.Fatalf("rowAtY after scroll = %d, %v; want 10, true", row, ok)
	}
}

func TestScrollClamps(t *testing.T) {
	m := sizedModel(t, nil)

	m.scrollBy(-5)
	if m.scroll != 0 {
		t.Fatalf("scroll = %d, want 0", m.scroll)
	}
	m.scrollBy(1000)
	if want := m.rowCount() - m.timelineHeight(); m.scroll != want {
		t.Fatalf("scroll = %d, want %d", m.scroll, want)
	}
	m.ensureVisible(3)
	if m.scroll != 3 {
		t.Fatalf("ensureVisible(3) scroll = %d, want 3", m.scroll)
	}
}

func TestHourBoundary(t *testing.T) {
	cases := []struct {
		minutes, mpr int
		want         time.Duration
	}{
		{0, 5, 0},
		{60, 5, time.Hour},
		{58, 5, time.Hour},
		{118, 10, 2 * time.Hour},
	}
	for _, tc := range cases {
		if got := hourBoundary(tc.minutes, tc.mpr); got != tc.want {
			t.Fatalf("hourBoundary(%d, %d) = %v, want %v", tc.minutes, tc.mpr, got, tc.want)
		}
	}
}

func TestRenderTimelineLabelsHours(t *testing.T) {
	m := sizedModel(t, nil)

	lines := strings.Split(m.renderTimeline(), "\n")
	if len(lines) != m.timelineHeight() {
		t.Fatalf("rendered %d lines, want %d", len(lines), m.timelineHeight())
	}
	if !strings.Contains(lines[0], "◉") {
		t.Fatalf("ring missing from top row: %q", lines[0])
	}
	// 12 rows of 5 minutes is one hour after now.
	if want := testNow.Add(time.Hour).Format("15:04"); !strings.Contains(lines[12], want) {
		t.Fatalf("row 12 = %q, want hour label %s", lines[12], want)
	}
	if strings.Contains(lines[11], ":") {
		t.Fatalf("row 11 should have no label: %q", lines[11])
	}
}
