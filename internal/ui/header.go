package ui

import (
	"strings"

	"github.com/five82/trapmeta/internal/state"
)

// renderHeader renders the status line: picture details or the folder
// state, plus whatever remote work is running.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Bar)
	bg := NewBgStyle(m.theme.Bar)
	compact := m.width < LayoutCompactWidth
	snap := m.snapshot
	session := snap.Session

	parts := []string{bg.Render("trapmeta", styles.Logo)}

	if snap.ContentVisible() {
		name := session.Picture.Filename
		if name == "" {
			name = "(no image)"
		}
		parts = append(parts,
			bg.Render(truncateMiddle(name, 40), styles.Text.Bold(true)),
			bg.Render(session.Position(), styles.AccentText),
		)
		if dims := strings.TrimSpace(session.Picture.Dimensions); dims != "" {
			parts = append(parts, bg.Render(dims, styles.MutedText))
		}
		if size := formatSize(session.Picture.SizeMB); size != "" {
			parts = append(parts, bg.Render(size, styles.MutedText))
		}
		if !compact && session.Folder != "" {
			parts = append(parts, bg.Render(truncateMiddle(session.Folder, 40), styles.FaintText))
		}
	} else {
		folder := snap.Browser.Committed
		if folder == "" {
			parts = append(parts, bg.Render("No folder selected", styles.MutedText))
		} else {
			parts = append(parts,
				bg.Render("Folder:", styles.MutedText)+bg.Space()+
					bg.Render(truncateMiddle(folder, 50), styles.Text))
		}
	}

	if status := m.statusText(); status != "" {
		spin := ""
		if m.pending > 0 {
			spin = bg.Render(m.spinner.View(), styles.AccentText) + bg.Space()
		}
		parts = append(parts, spin+bg.Render(status, styles.WarningText.Bold(true)))
	}
	if m.savedFlash {
		parts = append(parts, bg.Render("✓ Saved", styles.SuccessText))
	}

	return styles.Bar.Width(m.width).MaxHeight(1).Render(bg.Join(parts, "  "))
}

// statusText describes the remote work in progress.
func (m Model) statusText() string {
	snap := m.snapshot
	switch {
	case snap.Identifying:
		return "Identifying..."
	case snap.Saving:
		return "Saving..."
	case snap.Loading:
		return "Loading..."
	case m.pending > 0:
		return "Working..."
	}
	return ""
}

// renderCommandBar renders the key hints for the current state.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Bar)
	bg := NewBgStyle(m.theme.Bar)
	snap := m.snapshot

	type cmd struct {
		key, desc string
		enabled   bool
	}
	var commands []cmd

	switch {
	case snap.Selector.Phase == state.Selecting:
		commands = []cmd{
			{"drag", "Box the animal", true},
			{"esc", "Cancel", true},
		}
	case snap.Selector.Phase == state.Dragging:
		commands = []cmd{
			{"release", "Identify", true},
			{"esc", "Cancel", true},
		}
	case !snap.ContentVisible():
		commands = []cmd{
			{"o", "Browse", true},
			{"l", "Load", snap.CanLoad()},
			{"?", "More", true},
		}
	default:
		nav := snap.Nav()
		saveLabel := "Save"
		if m.savedFlash {
			saveLabel = "Saved"
		}
		commands = []cmd{
			{"←", "Prev", nav.Prev},
			{"→", "Next", nav.Next},
			{"home/end", "First/Last", nav.First || nav.Last},
			{"enter", "Edit", true},
			{"a", "Add", true},
			{"x", "Delete", m.cursorDeletable()},
			{"s", saveLabel, !snap.Saving},
			{"i", "Identify", snap.CanIdentify()},
			{"f/F", "Footer", snap.Session.HasPicture},
			{"o", "Browse", true},
			{"?", "More", true},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		keyStyle, descStyle := styles.AccentText, styles.MutedText
		if !c.enabled {
			keyStyle, descStyle = styles.FaintText, styles.FaintText
		}
		if c.desc == "Saved" {
			descStyle = styles.SuccessText
		}
		segments = append(segments, bg.Render(c.key, keyStyle)+colon+bg.Render(c.desc, descStyle))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Bar.Width(m.width).MaxHeight(1).Render(strings.Join(segments, bg.Spaces(2)))
}

func (m Model) cursorDeletable() bool {
	fields := m.snapshot.Form.Fields
	return m.formCursor < len(fields) && fields[m.formCursor].Deletable()
}
