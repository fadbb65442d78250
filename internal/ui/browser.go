package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trapmeta/internal/trapapi"
)

// renderBrowser renders the folder picker overlay.
func (m Model) renderBrowser() string {
	styles := m.theme.Styles()
	browser := m.snapshot.Browser

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Choose Folder"))
	if m.pending > 0 {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n")
	path := browser.CurrentPath
	if path == "" {
		path = "/"
	}
	b.WriteString(styles.MutedText.Render(truncateMiddle(path, browserModalWide-8)))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")

	listRows := max(m.height-16, 3)
	entries := browser.Entries
	start := 0
	if m.browserCursor >= listRows {
		start = m.browserCursor - listRows + 1
	}
	end := min(start+listRows, len(entries))

	if len(entries) == 0 {
		b.WriteString(styles.FaintText.Render("Empty folder"))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.browserRow(entries[i], i == m.browserCursor, entries[i].Path == browser.Pending))
		b.WriteString("\n")
	}
	for i := end - start; i < listRows; i++ {
		b.WriteString("\n")
	}

	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	if browser.Pending != "" {
		b.WriteString(styles.MutedText.Render("Selected  "))
		b.WriteString(styles.SuccessText.Render(truncateMiddle(browser.Pending, browserModalWide-18)))
	} else {
		b.WriteString(styles.FaintText.Render("No folder selected"))
	}
	b.WriteString("\n\n")

	hint := "enter open · space select · esc cancel"
	if browser.CanConfirm() {
		hint = "c use folder · " + hint
	}
	b.WriteString(styles.FaintText.Render(hint))

	return placeModal(m.theme, m.width, m.height, b.String(), browserModalWide, m.theme.Accent)
}

// browserRow renders one entry with its glyph and image count.
func (m Model) browserRow(entry trapapi.BrowseEntry, cursor, pending bool) string {
	styles := m.theme.Styles()

	var glyph string
	var nameStyle lipgloss.Style
	switch entry.Kind() {
	case trapapi.EntryParent:
		glyph = "↑ "
		nameStyle = styles.MutedText
	case trapapi.EntryDirectory:
		glyph = "▸ "
		nameStyle = styles.AccentText
	case trapapi.EntryFile:
		glyph = "▣ "
		nameStyle = styles.FaintText
	}

	name := entry.Name
	if entry.Kind() == trapapi.EntryParent && name == "" {
		name = ".."
	}
	marker := "  "
	if pending {
		marker = "● "
	}

	text := marker + glyph + truncate(name, browserModalWide-30)
	count := entry.CountLabel()

	if cursor {
		line := padRight(text, browserModalWide-22)
		if count != "" {
			line += " " + count
		}
		return styles.Selected.Render(line)
	}

	line := nameStyle.Render(padRight(text, browserModalWide-22))
	if count != "" {
		line += " " + styles.FaintText.Render(count)
	}
	return line
}
