package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gtimer/internal/countdown"
	"github.com/five82/gtimer/internal/timefmt"
)

// renderHeader renders the status bar and the progress line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	phase := m.snapshot.Countdown.Phase
	parts := []string{
		bg.Render("gtimer", styles.Logo),
		bg.Render(m.clock.Format(timefmt.WithSeconds(m.clockLayout)), styles.Text),
		styles.PhaseStyle(phase.String()).Render(strings.ToUpper(phase.String())),
	}

	if cd, ok := m.snapshot.Live(); ok {
		parts = append(parts,
			bg.Render(formatCountdown(cd.Remaining), styles.AccentText.Bold(true)),
			bg.Render("ends "+cd.Target.Format(m.clockLayout), styles.MutedText),
		)
		if phase == countdown.PhaseDragging {
			parts = append(parts, bg.Render("(running underneath)", styles.FaintText))
		}
	}

	if notice := m.renderNotice(styles, bg); notice != "" {
		parts = append(parts, notice)
	}

	line := styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
	return line + "\n" + m.renderProgressLine()
}

// renderNotice shows a fresh alert banner, else a fresh warning.
func (m Model) renderNotice(styles Styles, bg BgStyle) string {
	if !m.alert.FiredAt.IsZero() && m.clock.Sub(m.alert.FiredAt) < AlertBannerTTL {
		text := m.alert.Title
		if m.alert.Body != "" {
			text += " · " + m.alert.Body
		}
		if ago := m.clock.Sub(m.alert.FiredAt); ago >= time.Second {
			text += " · " + humanizeDuration(ago) + " ago"
		}
		return bg.Render(text, styles.SuccessText)
	}
	if err := m.snapshot.LastWarning; err != nil && m.clock.Sub(m.snapshot.WarnedAt) < WarningTTL {
		return bg.Render("⚠ "+truncateMiddle(err.Error(), 60), styles.WarningText)
	}
	return ""
}

func (m Model) renderProgressLine() string {
	styles := m.theme.Styles()
	cd, ok := m.snapshot.Live()
	if !ok || m.total <= 0 {
		hint := "drag the ring with the mouse, or j/k then enter"
		if m.drag != dragNone {
			hint = "release inside the scale to start, outside to cancel, esc to abandon"
		}
		return lipgloss.NewStyle().Padding(0, 1).Render(styles.FaintText.Render(hint))
	}
	elapsed := 1 - float64(cd.Remaining)/float64(m.total)
	elapsed = min(max(elapsed, 0), 1)
	return lipgloss.NewStyle().Padding(0, 1).Render(m.progress.ViewAs(elapsed))
}
