// Package ui provides the Bubble Tea timeline for gtimer.
package ui

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gtimer/internal/countdown"
	"github.com/five82/gtimer/internal/logtail"
	"github.com/five82/gtimer/internal/notify"
	"github.com/five82/gtimer/internal/prefs"
	"github.com/five82/gtimer/internal/snap"
	"github.com/five82/gtimer/internal/state"
	"github.com/five82/gtimer/internal/timefmt"
)

// Controller is the countdown engine as the UI drives it.
type Controller interface {
	BeginDrag()
	UpdateDrag(offsetPixels float64) (snap.Target, bool)
	Commit() countdown.Countdown
	AbortDrag()
	Cancel()
}

// Options configures the UI.
type Options struct {
	Engine    Controller
	Store     *state.Store
	Snap      snap.Config
	RowPixels float64
	LogPath   string
	Refresh   time.Duration
	ThemeName string
	ShowLog   bool
	PrefsPath string
	Now       func() time.Time

	// ClockLayout formats clock labels; empty uses 24 hour time.
	ClockLayout string
}

type dragSource int

const (
	dragNone dragSource = iota
	dragMouse
	dragKeys
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctl       Controller
	store     *state.Store
	snapCfg   snap.Config
	rowPixels float64
	logPath   string
	prefsPath string
	refresh   time.Duration
	now       func() time.Time

	clockLayout string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	progress progress.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	showLog  bool
	scroll   int

	// Data state
	snapshot state.Snapshot
	clock    time.Time
	alert    notify.Alert

	// Drag state. dragOffset is the gesture position in pixels;
	// committedOffset is where the ring rests while a countdown is live.
	drag            dragSource
	dragOffset      float64
	committedOffset float64
	preview         snap.Target
	hasPreview      bool

	// total is the full length of the live countdown, for the progress bar.
	total       time.Duration
	totalTarget time.Time

	// Log pane
	logViewport viewport.Model
	logEntries  []logtail.Entry
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	rowPixels := opts.RowPixels
	snapCfg := opts.Snap.Validate()
	if rowPixels <= 0 {
		rowPixels = snapCfg.PixelsPerMinute
	}

	clockLayout := opts.ClockLayout
	if clockLayout == "" {
		clockLayout = timefmt.Layout24
	}

	theme := GetTheme(themeName)
	m := Model{
		ctl:       opts.Engine,
		store:     opts.Store,
		snapCfg:   snapCfg,
		rowPixels: rowPixels,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		refresh:   refresh,
		now:       now,

		clockLayout: clockLayout,

		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		progress:  newProgress(theme),
		showLog:   opts.ShowLog,
		clock:     now(),
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

func newProgress(theme Theme) progress.Model {
	return progress.New(
		progress.WithSolidFill(theme.Accent),
		progress.WithoutPercentage(),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refresh)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.showLog {
		if cmd := refreshLogsCmd(m.logPath); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.resizeLogViewport()
		m.help.Width = m.width
		m.progress.Width = max(m.width-2, 10)
		m.ensureVisible(m.ringRow())
		return m, nil

	case tickMsg:
		m.clock = time.Time(msg)
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		if m.showLog {
			if cmd := refreshLogsCmd(m.logPath); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		cmds = append(cmds, tickCmd(m.refresh))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case AlertMsg:
		m.alert = notify.Alert(msg)
		return m, nil

	case logEntriesMsg:
		m.handleLogEntries([]logtail.Entry(msg))
		return m, nil

	case logErrorMsg:
		log.Printf("ui: warn: read log: %v", msg.err)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	sections := []string{m.renderHeader(), m.renderTimeline()}
	if m.showLog {
		sections = append(sections, m.renderLogPane())
	}
	footer := m.theme.Styles().Footer.Width(m.width).Render(m.help.View(m.keys))
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.progress = newProgress(m.theme)
		m.progress.Width = max(m.width-2, 10)
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleLog):
		m.showLog = !m.showLog
		m.clampScroll()
		m.savePrefs()
		if m.showLog {
			return m, refreshLogsCmd(m.logPath)
		}
		return m, nil

	case key.Matches(msg, m.keys.Later):
		m.nudge(m.rowPixels)
	case key.Matches(msg, m.keys.Earlier):
		m.nudge(-m.rowPixels)
	case key.Matches(msg, m.keys.StepLater):
		m.nudge(m.stepPixels())
	case key.Matches(msg, m.keys.StepEarly):
		m.nudge(-m.stepPixels())
	case key.Matches(msg, m.keys.PageLater):
		m.nudge(m.pagePixels())
	case key.Matches(msg, m.keys.PageEarly):
		m.nudge(-m.pagePixels())

	case key.Matches(msg, m.keys.Commit):
		if m.drag != dragNone {
			m.commit()
		}
	case key.Matches(msg, m.keys.Abort):
		if m.drag != dragNone {
			m.abort()
		}
	case key.Matches(msg, m.keys.Cancel):
		m.cancel()
	}
	return m, nil
}

// handleMouse maps pointer events onto the drag gesture.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-3)

	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(3)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		row, ok := m.rowAtY(msg.Y)
		if !ok {
			return m, nil
		}
		m.beginDrag(dragMouse)
		m.moveDragTo(m.rowOffset(row))

	case msg.Action == tea.MouseActionMotion && m.drag == dragMouse:
		m.moveDragTo(m.rowOffset(m.clampedRowAtY(msg.Y)))

	case msg.Action == tea.MouseActionRelease && m.drag == dragMouse:
		if row, ok := m.rowAtY(msg.Y); ok {
			m.moveDragTo(m.rowOffset(row))
			m.commit()
		} else {
			m.cancel()
		}
	}
	return m, nil
}

func (m Model) live() bool {
	_, ok := m.snapshot.Live()
	return ok
}

func (m Model) stepPixels() float64 {
	return m.snapCfg.PixelsPerMinute * float64(m.snapCfg.StepMinutes)
}

func (m Model) pagePixels() float64 {
	return m.rowPixels * float64(max(1, m.timelineHeight()/2))
}

// nudge moves a keyboard drag, starting one if needed.
func (m *Model) nudge(delta float64) {
	if m.drag == dragNone {
		m.beginDrag(dragKeys)
	}
	m.moveDragTo(m.dragOffset + delta)
}

// beginDrag starts a gesture from the last committed position.
func (m *Model) beginDrag(src dragSource) {
	if m.drag != dragNone || m.ctl == nil {
		return
	}
	m.ctl.BeginDrag()
	m.drag = src
	m.hasPreview = false
	m.dragOffset = 0
	if m.live() {
		m.dragOffset = m.committedOffset
	}
}

func (m *Model) moveDragTo(offset float64) {
	if m.drag == dragNone {
		return
	}
	m.dragOffset = min(max(offset, 0), m.maxOffset())
	if target, ok := m.ctl.UpdateDrag(m.dragOffset); ok {
		m.preview = target
		m.hasPreview = true
	}
	m.ensureVisible(m.ringRow())
}

func (m *Model) commit() {
	cd := m.ctl.Commit()
	if cd.Phase == countdown.PhaseRunning {
		m.committedOffset = m.dragOffset
		m.total = cd.Remaining
		m.totalTarget = cd.Target
	} else {
		m.committedOffset = 0
		m.total = 0
	}
	m.endDrag()
}

func (m *Model) abort() {
	m.ctl.AbortDrag()
	m.endDrag()
	m.ensureVisible(m.ringRow())
}

func (m *Model) cancel() {
	if m.ctl == nil {
		return
	}
	m.ctl.Cancel()
	m.committedOffset = 0
	m.total = 0
	m.endDrag()
}

func (m *Model) endDrag() {
	m.drag = dragNone
	m.hasPreview = false
	if m.store != nil {
		m.applySnapshot(m.store.Snapshot())
	}
}

// applySnapshot takes the engine's view and reconciles local drag state
// with it.
func (m *Model) applySnapshot(s state.Snapshot) {
	m.snapshot = s

	if m.drag != dragNone && s.Countdown.Phase != countdown.PhaseDragging {
		m.drag = dragNone
		m.hasPreview = false
	}

	cd, ok := s.Live()
	switch {
	case !ok:
		if m.drag == dragNone {
			m.committedOffset = 0
		}
		m.total = 0
		m.totalTarget = time.Time{}
	case !cd.Target.Equal(m.totalTarget):
		m.total = cd.Remaining
		m.totalTarget = cd.Target
	}
}

func (m Model) savePrefs() {
	if strings.TrimSpace(m.prefsPath) == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, ShowLog: m.showLog}); err != nil {
		log.Printf("ui: warn: save prefs: %v", err)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// AlertMsg delivers a fired countdown alert to the running program.
type AlertMsg notify.Alert

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// NewProgram builds the Bubble Tea program with mouse motion reporting, so
// the caller can forward alerts with Program.Send before running it.
func NewProgram(opts Options) *tea.Program {
	return tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
}
