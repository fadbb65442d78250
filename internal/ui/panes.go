package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trapmeta/internal/imageview"
	"github.com/five82/trapmeta/internal/state"
)

// formNameWidth caps the field name column of the form pane.
const formNameWidth = 18

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the panes below the header.
func (m Model) renderContent() string {
	l := computeLayout(m.width, m.height)
	if l.mainHeight < 3 {
		return ""
	}

	var main string
	if m.snapshot.ContentVisible() {
		main = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderPreview(l),
			m.renderForm(l),
		)
	} else {
		main = m.renderWelcome(l)
	}

	if l.debugRows == 0 {
		return main
	}
	debug := m.renderTitledBox("Debug", m.debugViewport.View(), m.width, l.debugRows, false)
	return main + "\n" + debug
}

// renderWelcome is shown until a folder with images is loaded.
func (m Model) renderWelcome(l paneLayout) string {
	styles := m.theme.Styles()
	snap := m.snapshot

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Camera trap metadata editor"))
	b.WriteString("\n\n")
	if m.server != "" {
		b.WriteString(styles.MutedText.Render("Server  "))
		b.WriteString(styles.Text.Render(m.server))
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("Folder  "))
	if folder := snap.Browser.Committed; folder != "" {
		b.WriteString(styles.Text.Render(truncateMiddle(folder, 60)))
	} else {
		b.WriteString(styles.FaintText.Render("none selected"))
	}
	b.WriteString("\n\n")

	switch {
	case snap.Loading:
		b.WriteString(m.spinner.View() + " " + styles.WarningText.Render("Loading folder..."))
	case snap.Browser.Committed != "":
		b.WriteString(styles.Text.Render("Press l to load the folder or o to pick another."))
	default:
		b.WriteString(styles.Text.Render("Press o to browse for a folder of images."))
	}

	return lipgloss.Place(m.width, l.mainHeight, lipgloss.Center, lipgloss.Center, b.String(),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}

// renderPreview renders the image pane with the selection box while a drag
// is in progress.
func (m Model) renderPreview(l paneLayout) string {
	selector := m.snapshot.Selector
	title := "Preview"
	switch selector.Phase {
	case state.Selecting:
		title = "Identify: drag a box around the animal"
	case state.Dragging:
		title = "Identify: release to submit"
	}

	var content string
	switch {
	case m.preview != nil:
		var box *state.Rect
		if selector.Phase == state.Dragging {
			r := selector.Box
			box = &r
		}
		content = m.preview.View(box, imageview.ParseHex(m.theme.SelectionBox))
	case m.snapshot.Loading || m.pending > 0:
		content = m.spinner.View() + " Loading image..."
	default:
		content = "No preview available"
	}

	return m.renderTitledBox(title, content, l.previewWidth, l.mainHeight, selector.Active())
}

// renderForm renders the metadata fields with the cursor row highlighted.
func (m Model) renderForm(l paneLayout) string {
	boxBg := m.boxBackground(m.editing)
	styles := m.theme.Styles().WithBackground(boxBg)
	bg := NewBgStyle(boxBg)
	selected := m.theme.Styles().Selected

	inner := max(l.formWidth-2, 1)
	rows := max(l.mainHeight-2, 0)
	listRows := max(rows-2, 1)
	nameWidth := min(formNameWidth, max(inner/3, 4))
	valueWidth := m.formValueWidth()

	fields := m.snapshot.Form.Fields
	start := 0
	if m.formCursor >= listRows {
		start = m.formCursor - listRows + 1
	}
	end := min(start+listRows, len(fields))

	lines := make([]string, 0, rows)
	if len(fields) == 0 {
		lines = append(lines, bg.Render("No metadata", styles.FaintText))
	}
	for i := start; i < end; i++ {
		f := fields[i]
		cursor := i == m.formCursor
		name := padRight(truncate(f.Name, nameWidth), nameWidth)

		if cursor && m.editing {
			lines = append(lines, bg.Render("▸ "+name+" ", styles.AccentText)+m.editInput.View())
			continue
		}

		value := truncate(singleLine(f.Value), valueWidth)
		tag := ""
		if f.ReadOnly {
			tag = " ro"
		}

		if cursor {
			text := padRight("▸ "+name+" "+value+tag, inner)
			lines = append(lines, selected.Render(text))
			continue
		}

		nameStyle := styles.MutedText
		if f.Common {
			nameStyle = styles.Text
		}
		valueStyle := styles.Text
		if f.ReadOnly {
			valueStyle = styles.FaintText
		}
		line := bg.Spaces(2) + bg.Render(name, nameStyle) + bg.Space()
		if value == "" {
			line += bg.Render("-", styles.FaintText)
		} else {
			line += bg.Render(value, valueStyle)
		}
		if tag != "" {
			line += bg.Render(tag, styles.FaintText)
		}
		lines = append(lines, line)
	}

	for len(lines) < listRows {
		lines = append(lines, "")
	}
	lines = append(lines, "", m.formFooter(styles, bg))

	title := "Metadata"
	if n := len(fields); n > 0 {
		title += " (" + pluralize(n, "field", "fields") + ")"
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), l.formWidth, l.mainHeight, m.editing)
}

// formFooter is the last line of the form pane.
func (m Model) formFooter(styles Styles, bg BgStyle) string {
	switch {
	case m.editing:
		return bg.Render("enter apply · esc cancel", styles.FaintText)
	case m.savedFlash:
		return bg.Render("✓ Metadata saved", styles.SuccessText)
	case m.snapshot.Saving:
		return bg.Render("Saving...", styles.WarningText)
	default:
		return bg.Render("s save · a add · x delete", styles.FaintText)
	}
}

// formValueWidth is the room left for a value after the cursor, the name
// column and the read-only tag.
func (m Model) formValueWidth() int {
	l := computeLayout(m.width, m.height)
	inner := max(l.formWidth-2, 1)
	nameWidth := min(formNameWidth, max(inner/3, 4))
	return max(inner-nameWidth-6, 4)
}

func (m Model) boxBackground(focused bool) string {
	if focused {
		return m.theme.PanelActive
	}
	return m.theme.Panel
}

// renderTitledBox renders a box with the title embedded in the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	if width < 4 || height < 2 {
		return ""
	}
	borderColorStr := m.theme.Border
	if focused {
		borderColorStr = m.theme.BorderActive
	}
	bgColorStr := m.boxBackground(focused)
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		MaxHeight(1).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
