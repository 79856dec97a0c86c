package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gtimer/internal/snap"
)

func (m Model) minutesPerRow() int {
	if m.rowPixels <= 0 {
		return 1
	}
	return max(1, int(m.rowPixels/m.snapCfg.PixelsPerMinute))
}

// rowCount covers MinMinutes through MaxMinutes inclusive.
func (m Model) rowCount() int {
	return m.snapCfg.TotalMinutes()/m.minutesPerRow() + 1
}

// rowMinutes is the first minute row stands for.
func (m Model) rowMinutes(row int) int {
	return m.snapCfg.MinMinutes + row*m.minutesPerRow()
}

// rowOffset is the drag offset that selects the first minute of row.
func (m Model) rowOffset(row int) float64 {
	return snap.OffsetFor(m.rowMinutes(row), m.snapCfg)
}

func (m Model) rowForOffset(offset float64) int {
	row := (snap.Minutes(offset, m.snapCfg) - m.snapCfg.MinMinutes) / m.minutesPerRow()
	return min(max(row, 0), m.rowCount()-1)
}

func (m Model) maxOffset() float64 {
	return snap.OffsetFor(m.snapCfg.MinMinutes+m.snapCfg.TotalMinutes(), m.snapCfg)
}

func (m Model) timelineHeight() int {
	h := m.height - headerRows - footerRows
	if m.showLog {
		h -= logPaneRows
	}
	return max(h, minTimelineRows)
}

// rowAtY maps a screen row to a timeline row. It reports false outside the
// timeline, which is where a released drag is cancelled.
func (m Model) rowAtY(y int) (int, bool) {
	rel := y - headerRows
	if rel < 0 || rel >= m.timelineHeight() {
		return 0, false
	}
	row := m.scroll + rel
	if row >= m.rowCount() {
		return 0, false
	}
	return row, true
}

// clampedRowAtY is rowAtY pinned to the visible rows, for drag previews that
// wander off the timeline.
func (m Model) clampedRowAtY(y int) int {
	rel := min(max(y-headerRows, 0), m.timelineHeight()-1)
	return min(m.scroll+rel, m.rowCount()-1)
}

// ringRow is where the ring hangs: the drag position while dragging, the
// committed position while a countdown is live, otherwise the top.
func (m Model) ringRow() int {
	switch {
	case m.drag != dragNone:
		return m.rowForOffset(m.dragOffset)
	case m.live():
		return m.rowForOffset(m.committedOffset)
	default:
		return 0
	}
}

func (m *Model) ensureVisible(row int) {
	h := m.timelineHeight()
	if row < m.scroll {
		m.scroll = row
	} else if row >= m.scroll+h {
		m.scroll = row - h + 1
	}
	m.clampScroll()
}

func (m *Model) scrollBy(delta int) {
	m.scroll += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxScroll := max(0, m.rowCount()-m.timelineHeight())
	m.scroll = min(max(m.scroll, 0), maxScroll)
}

// renderTimeline draws the visible slice of the scale with the ring.
func (m Model) renderTimeline() string {
	styles := m.theme.Styles()
	ring := m.ringRow()

	h := m.timelineHeight()
	lines := make([]string, 0, h)
	for i := 0; i < h; i++ {
		row := m.scroll + i
		if row >= m.rowCount() {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, m.renderRow(row, m.rowMinutes(row), ring, styles))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row, minutes, ring int, styles Styles) string {
	mpr := m.minutesPerRow()
	hour := spansMultiple(minutes, mpr, hourEveryMin)
	tick := hour || spansMultiple(minutes, mpr, tickEveryMin)

	paint := func(text string, st lipgloss.Style) string { return st.Render(text) }
	if row == ring {
		bg := NewBgStyle(m.theme.FocusBg)
		paint = bg.Render
	}

	var b strings.Builder

	label := ""
	if hour {
		label = m.clock.Add(hourBoundary(minutes, mpr)).Format(m.clockLayout)
	}
	b.WriteString(paint(fmt.Sprintf("%*s", labelWidth, label+" "), styles.MutedText))

	switch {
	case hour:
		b.WriteString(paint(strings.Repeat("─", tickWidth)+"┤", styles.HourTick))
	case tick:
		b.WriteString(paint(strings.Repeat(" ", tickWidth/2)+strings.Repeat("─", tickWidth-tickWidth/2)+"┤", styles.MinorTick))
	default:
		b.WriteString(paint(strings.Repeat(" ", tickWidth)+"│", styles.FaintText))
	}

	switch {
	case row == ring:
		b.WriteString(paint(" ◉ ", styles.Ring))
		b.WriteString(paint(m.ringLabel(), styles.Text))
	case row < ring:
		b.WriteString(paint(" ┆", styles.FaintText))
	}

	line := b.String()
	if row == ring {
		return NewBgStyle(m.theme.FocusBg).FillLine(line, m.width)
	}
	return line
}

// hourBoundary is the offset of the first whole hour inside the row.
func hourBoundary(minutes, mpr int) time.Duration {
	first := ((minutes + hourEveryMin - 1) / hourEveryMin) * hourEveryMin
	if first >= minutes+mpr {
		first = minutes
	}
	return time.Duration(first) * time.Minute
}

// ringLabel is the text beside the ring: the snapped clock time, plus the
// previewed remaining time during a drag.
func (m Model) ringLabel() string {
	switch {
	case m.drag != dragNone && m.hasPreview:
		return fmt.Sprintf("%s  %s  %s",
			m.preview.Instant.Format(m.clockLayout),
			formatOffset(m.preview.Minutes),
			formatCountdown(m.preview.Remaining(m.clock)))
	case m.drag != dragNone:
		return "release to start"
	case m.live():
		cd, _ := m.snapshot.Live()
		return fmt.Sprintf("%s  %s", cd.Target.Format(m.clockLayout), formatCountdown(cd.Remaining))
	default:
		return "drag the ring or press j to set a time"
	}
}
