package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	ToggleLog  key.Binding

	// Drag
	Later     key.Binding
	Earlier   key.Binding
	StepLater key.Binding
	StepEarly key.Binding
	PageLater key.Binding
	PageEarly key.Binding
	Commit    key.Binding
	Abort     key.Binding
	Cancel    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Toggle log pane"),
		),

		Later: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Drag one row later"),
		),
		Earlier: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Drag one row earlier"),
		),
		StepLater: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "Drag one step later"),
		),
		StepEarly: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "Drag one step earlier"),
		),
		PageLater: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Drag half a page later"),
		),
		PageEarly: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Drag half a page earlier"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Start countdown"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Abandon drag"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Cancel countdown"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Later, k.Earlier, k.Commit, k.Cancel, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Later, k.Earlier, k.StepLater, k.StepEarly, k.PageLater, k.PageEarly},
		{k.Commit, k.Abort, k.Cancel},
		{k.ToggleLog, k.CycleTheme, k.Help, k.Quit},
	}
}
