package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gtimer/internal/logtail"
)

type logEntriesMsg []logtail.Entry

type logErrorMsg struct{ err error }

func refreshLogsCmd(path string) tea.Cmd {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, LogTailLines)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logEntriesMsg(entries)
	}
}

// initLogViewport sizes the viewport inside the pane border.
func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-4, 10), logPaneRows-3)
	m.logViewport.SetContent(m.formatLogEntries())
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = max(m.width-4, 10)
	m.logViewport.Height = logPaneRows - 3
}

func (m *Model) handleLogEntries(entries []logtail.Entry) {
	atBottom := m.logViewport.AtBottom() || len(m.logEntries) == 0
	m.logEntries = entries
	m.logViewport.SetContent(m.formatLogEntries())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

func (m Model) formatLogEntries() string {
	if len(m.logEntries) == 0 {
		return m.theme.Styles().FaintText.Render("no log output yet")
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		lines = append(lines, formatLogEntry(e, styles))
	}
	return strings.Join(lines, "\n")
}

func formatLogEntry(e logtail.Entry, styles Styles) string {
	ts := ""
	if !e.Time.IsZero() {
		ts = styles.FaintText.Render(e.Time.Format("15:04:05")) + " "
	}
	component := ""
	if e.Component != "" {
		component = styles.InfoText.Render(fmt.Sprintf("[%s]", e.Component)) + " "
	}
	msg := e.Message
	switch e.Level {
	case logtail.LevelWarn:
		msg = styles.WarningText.Render("WARN " + msg)
	case logtail.LevelError:
		msg = styles.DangerText.Render("ERROR " + msg)
	default:
		msg = styles.Text.Render(msg)
	}
	return ts + component + msg
}

func (m Model) renderLogPane() string {
	title := m.theme.Styles().MutedText.Render("log · " + truncateMiddle(m.logPath, max(m.width-12, 10)))
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(max(m.width-2, 10))
	return pane.Render(title + "\n" + m.logViewport.View())
}
