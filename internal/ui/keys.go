package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Confirm    key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding

	// Folder
	Browse key.Binding
	Load   key.Binding

	// Navigation
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding

	// Form
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	AddField key.Binding
	Delete   key.Binding
	Save     key.Binding

	// Footer and identification
	Footer       key.Binding
	ManualFooter key.Binding
	Identify     key.Binding

	// Debug log
	DebugUp   key.Binding
	DebugDown key.Binding

	// Folder browser
	Select key.Binding
	Accept key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next input"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous input"),
		),

		// Folder
		Browse: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Browse folders"),
		),
		Load: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Load folder"),
		),

		// Navigation
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous image"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Next image"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "First image"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "Last image"),
		),

		// Form
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit field"),
		),
		AddField: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add field"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Delete field"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "Save metadata"),
		),

		// Footer and identification
		Footer: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Extract footer"),
		),
		ManualFooter: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Enter footer text"),
		),
		Identify: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Identify species"),
		),

		// Debug log
		DebugUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Scroll debug up"),
		),
		DebugDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Scroll debug down"),
		),

		// Folder browser
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Select folder"),
		),
		Accept: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Use selected folder"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Browse, k.Load},
		{k.Prev, k.Next, k.First, k.Last},
		{k.Up, k.Down, k.Edit, k.AddField, k.Delete, k.Save},
		{k.Footer, k.ManualFooter, k.Identify, k.Escape},
		{k.DebugUp, k.DebugDown},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
