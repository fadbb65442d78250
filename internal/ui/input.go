package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trapmeta/internal/editor"
	"github.com/five82/trapmeta/internal/state"
	"github.com/five82/trapmeta/internal/trapapi"
)

// handleKey processes keyboard input. Overlays take keys first, in the
// order they are drawn.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Alerts block everything until dismissed
	if len(m.alerts) > 0 {
		if key.Matches(msg, m.keys.Confirm, m.keys.Escape, m.keys.Select) {
			m.alerts = m.alerts[1:]
		}
		return m, nil
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	// Escape is the only key a selection gesture responds to
	if m.snapshot.Selector.Active() {
		if key.Matches(msg, m.keys.Escape) {
			return m.dispatch(editor.CancelSelection{})
		}
		return m, nil
	}

	if m.snapshot.Browser.Open {
		return m.handleBrowserKey(msg)
	}

	snap := m.snapshot
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Browse):
		return m.dispatch(editor.OpenBrowser{})

	case key.Matches(msg, m.keys.Load):
		if snap.Loading {
			return m, nil
		}
		return m.dispatch(editor.LoadFolder{})

	case key.Matches(msg, m.keys.Prev, m.keys.Next, m.keys.First, m.keys.Last):
		return m.handleNavKey(msg)

	case key.Matches(msg, m.keys.DebugUp):
		m.debugViewport.HalfPageUp()
		return m, nil

	case key.Matches(msg, m.keys.DebugDown):
		m.debugViewport.HalfPageDown()
		return m, nil
	}

	if !snap.ContentVisible() {
		return m, nil
	}

	fields := snap.Form.Fields
	switch {
	case key.Matches(msg, m.keys.Up):
		m.formCursor = max(m.formCursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.formCursor = min(m.formCursor+1, max(len(fields)-1, 0))

	case key.Matches(msg, m.keys.Edit):
		if m.formCursor < len(fields) && !fields[m.formCursor].ReadOnly {
			cmd := m.startEditing(fields[m.formCursor], m.formValueWidth())
			return m, cmd
		}

	case key.Matches(msg, m.keys.AddField):
		m.modal = newAddFieldModal()

	case key.Matches(msg, m.keys.Delete):
		if m.formCursor < len(fields) && fields[m.formCursor].Deletable() {
			return m.dispatch(editor.DeleteField{Name: fields[m.formCursor].Name})
		}

	case key.Matches(msg, m.keys.Save):
		if !snap.Saving {
			return m.dispatch(editor.Save{})
		}

	case key.Matches(msg, m.keys.Footer):
		if snap.Session.HasPicture {
			return m.dispatch(editor.ExtractFooter{
				Index:      snap.Session.Index,
				Generation: snap.Session.Generation,
			})
		}

	case key.Matches(msg, m.keys.ManualFooter):
		m.modal = newFooterModal()

	case key.Matches(msg, m.keys.Identify):
		return m.dispatch(editor.ToggleIdentify{})
	}
	return m, nil
}

// handleNavKey moves through the folder when navigation is enabled.
func (m Model) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.snapshot.NavEnabled() {
		return m, nil
	}
	session := m.snapshot.Session
	nav := m.snapshot.Nav()
	target := -1
	switch {
	case key.Matches(msg, m.keys.Prev) && nav.Prev:
		target = session.Index - 1
	case key.Matches(msg, m.keys.Next) && nav.Next:
		target = session.Index + 1
	case key.Matches(msg, m.keys.First) && nav.First:
		target = 0
	case key.Matches(msg, m.keys.Last) && nav.Last:
		target = session.Total - 1
	}
	if target < 0 {
		return m, nil
	}
	return m.dispatch(editor.Navigate{Index: target})
}

// handleEditKey drives the inline value editor of the form pane.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.stopEditing()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		intent := editor.SetFieldValue{Name: m.editName, Value: m.editInput.Value()}
		m.stopEditing()
		return m.dispatch(intent)
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// handleBrowserKey processes keys while the folder browser is open.
func (m Model) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	browser := m.snapshot.Browser
	entries := browser.Entries

	var current *trapapi.BrowseEntry
	if m.browserCursor < len(entries) {
		current = &entries[m.browserCursor]
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		return m.dispatch(editor.CancelBrowser{})

	case key.Matches(msg, m.keys.Up):
		m.browserCursor = max(m.browserCursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.browserCursor = min(m.browserCursor+1, max(len(entries)-1, 0))

	case key.Matches(msg, m.keys.Confirm):
		if current != nil && current.Kind() != trapapi.EntryFile {
			return m.dispatch(editor.BrowseTo{Path: current.Path})
		}

	case key.Matches(msg, m.keys.Select):
		if current != nil && current.Kind() == trapapi.EntryDirectory {
			return m.dispatch(editor.SelectFolder{Path: current.Path})
		}

	case key.Matches(msg, m.keys.Accept):
		if browser.CanConfirm() {
			return m.dispatch(editor.ConfirmFolder{})
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

// handleMouse turns left button press, drag and release over the preview
// pane into selector intents.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if len(m.alerts) > 0 || m.showHelp || m.modal != nil || m.snapshot.Browser.Open || m.preview == nil {
		return m, nil
	}

	selector := m.snapshot.Selector
	geom := m.preview.Geometry()
	point, inside := m.panePoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || selector.Phase != state.Selecting || !inside {
			return m, nil
		}
		return m.dispatch(editor.PointerDown{Point: point, Geometry: geom})

	case tea.MouseActionMotion:
		if selector.Phase != state.Dragging {
			return m, nil
		}
		return m.dispatch(editor.PointerMove{Point: extendDown(point, selector.Anchor)})

	case tea.MouseActionRelease:
		if selector.Phase != state.Dragging {
			return m, nil
		}
		return m.dispatch(editor.PointerUp{Point: extendDown(point, selector.Anchor), Geometry: geom})
	}
	return m, nil
}

// panePoint maps a screen cell to display pixels relative to the preview
// pane, clamped to the pane. A cell covers two display pixels vertically;
// the point names the upper one.
func (m Model) panePoint(x, y int) (state.Point, bool) {
	l := computeLayout(m.width, m.height)
	col := x - l.previewX
	row := y - l.previewY
	inside := col >= 0 && col < l.previewCols && row >= 0 && row < l.previewRows
	col = min(max(col, 0), max(l.previewCols-1, 0))
	row = min(max(row, 0), max(l.previewRows-1, 0))
	return state.Point{X: col, Y: row * 2}, inside
}

// extendDown moves p to the lower pixel of its cell when the drag runs
// downward so the box covers the whole cell under the pointer.
func extendDown(p, anchor state.Point) state.Point {
	if p.Y >= anchor.Y {
		p.Y++
	}
	return p
}
