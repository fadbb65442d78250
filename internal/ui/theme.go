package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme assigns a color to every role on the editor screen.
type Theme struct {
	Name string

	Background  string // behind overlays and the welcome view
	Bar         string // header and command bar
	Panel       string // preview, metadata and debug boxes
	PanelActive string // metadata box while a value is being edited

	Border       string
	BorderActive string // editing, or a selection gesture in the preview

	Cursor     string // highlighted form row and browser entry
	CursorText string

	Text   string
	Muted  string // optional field names, labels
	Faint  string // hints, read-only values, disabled commands
	Accent string // common field names, directories, spinner
	Key    string // key column of the help overlay

	Saved  string
	Busy   string // loading and saving
	Error  string // failed requests and rejected input
	Notice string // identification and footer results

	// SelectionBox is drawn over the preview while dragging.
	SelectionBox string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Bar      lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Saved).Bold(true),
		WarningText: fg(t.Busy),
		DangerText:  fg(t.Error).Bold(true),
		InfoText:    fg(t.Notice).Bold(true),

		Bar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Bar)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Logo: fg(t.Busy).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Cursor)).
			Foreground(lipgloss.Color(t.CursorText)),
	}
}

// WithBackground returns a copy of Styles with every style painted on
// bgColor, so text inside a box never shows the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	return Styles{
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),
		Bar:         s.Bar.Background(bg),
		Logo:        s.Logo.Background(bg),
		Selected:    s.Selected,
	}
}

// Palettes: Nightfox (EdenEast/nightfox.nvim), Kanagawa (rebelot/kanagawa.nvim)
// and Tailwind Slate/Sky.
var themeOrder = []Theme{
	{
		Name:       "Nightfox",
		Background: "#131a24", Bar: "#192330", Panel: "#212e3f", PanelActive: "#29394f",
		Border: "#39506d", BorderActive: "#719cd6",
		Cursor: "#2b3b51", CursorText: "#cdcecf",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6", Key: "#dbc074",
		Saved: "#81b29a", Busy: "#dbc074", Error: "#c94f6d", Notice: "#63cdcf",
		SelectionBox: "#f4a261",
	},
	{
		Name:       "Kanagawa",
		Background: "#16161D", Bar: "#1F1F28", Panel: "#2A2A37", PanelActive: "#363646",
		Border: "#54546D", BorderActive: "#7E9CD8",
		Cursor: "#2D4F67", CursorText: "#DCD7BA",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8", Key: "#E6C384",
		Saved: "#98BB6C", Busy: "#E6C384", Error: "#E46876", Notice: "#7FB4CA",
		SelectionBox: "#FF9E3B",
	},
	{
		Name:       "Slate",
		Background: "#020617", Bar: "#0f172a", Panel: "#1e293b", PanelActive: "#283548",
		Border: "#334155", BorderActive: "#38bdf8",
		Cursor: "#0284c7", CursorText: "#f8fafc",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8", Key: "#f59e0b",
		Saved: "#22c55e", Busy: "#f59e0b", Error: "#ef4444", Notice: "#06b6d4",
		SelectionBox: "#facc15",
	},
}

// GetTheme returns a theme by name, falling back to the first palette.
func GetTheme(name string) Theme {
	for _, t := range themeOrder {
		if t.Name == name {
			return t
		}
	}
	return themeOrder[0]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, t := range themeOrder {
		if t.Name == current {
			return themeOrder[(i+1)%len(themeOrder)].Name
		}
	}
	return themeOrder[0].Name
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	names := make([]string, len(themeOrder))
	for i, t := range themeOrder {
		names[i] = t.Name
	}
	return names
}
