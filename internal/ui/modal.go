package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trapmeta/internal/editor"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// addFieldModal collects the name and value of a new metadata field. It
// stays open when the controller rejects the name so the user can fix it.
type addFieldModal struct {
	inputs   [2]textinput.Model // name, value
	focusIdx int
}

func newAddFieldModal() addFieldModal {
	name := textinput.New()
	name.Placeholder = "e.g. Behavior"
	name.CharLimit = 64
	name.Width = 40

	value := textinput.New()
	value.Placeholder = "optional"
	value.CharLimit = 512
	value.Width = 40

	m := addFieldModal{inputs: [2]textinput.Model{name, value}}
	m.inputs[0].Focus()
	return m
}

func (m addFieldModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
		return m, cmd, false
	}

	switch {
	case key.Matches(keyMsg, keys.Escape):
		return m, nil, true

	case key.Matches(keyMsg, keys.Confirm):
		intent := editor.AddField{
			Name:  strings.TrimSpace(m.inputs[0].Value()),
			Value: m.inputs[1].Value(),
		}
		return m, dispatchIntent(intent, true), false

	case key.Matches(keyMsg, keys.Tab), keyMsg.Type == tea.KeyDown:
		m.inputs[m.focusIdx].Blur()
		m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
		m.inputs[m.focusIdx].Focus()
		return m, nil, false

	case key.Matches(keyMsg, keys.ShiftTab), keyMsg.Type == tea.KeyUp:
		m.inputs[m.focusIdx].Blur()
		m.focusIdx = (m.focusIdx - 1 + len(m.inputs)) % len(m.inputs)
		m.inputs[m.focusIdx].Focus()
		return m, nil, false
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd, false
}

func (m addFieldModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Add Field"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	labels := [2]string{"Name:  ", "Value: "}
	for i, label := range labels {
		if m.focusIdx == i {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("enter add · tab switch · esc cancel"))
	return placeModal(theme, width, height, b.String(), inputModalWidth, theme.Accent)
}

// footerModal takes the footer text printed on the image for manual parsing.
type footerModal struct {
	input textinput.Model
}

func newFooterModal() footerModal {
	in := textinput.New()
	in.Placeholder = "e.g. 12°C 54°F CAM03 2024-05-01 06:12:44"
	in.CharLimit = 256
	in.Width = 48
	in.Focus()
	return footerModal{input: in}
}

func (m footerModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Escape):
			return m, nil, true
		case key.Matches(keyMsg, keys.Confirm):
			return m, dispatchIntent(editor.ParseManualFooter{Text: m.input.Value()}, false), true
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

func (m footerModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Footer Text"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Type the info band printed at the bottom of the image."))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter parse · esc cancel"))
	return placeModal(theme, width, height, b.String(), inputModalWidth, theme.Accent)
}

// renderAlert renders the oldest pending alert. Alerts block all other input
// until dismissed.
func (m Model) renderAlert() string {
	styles := m.theme.Styles()
	var b strings.Builder

	current := m.alerts[0]
	border := m.theme.Notice
	if current.failed {
		border = m.theme.Error
		b.WriteString(styles.DangerText.Render("✗ Error"))
	} else {
		b.WriteString(styles.InfoText.Render("● Notice"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(current.text))
	b.WriteString("\n\n")
	hint := "enter to dismiss"
	if n := len(m.alerts); n > 1 {
		hint += " · " + pluralize(n-1, "more message", "more messages")
	}
	b.WriteString(styles.FaintText.Render(hint))
	return placeModal(m.theme, m.width, m.height, b.String(), alertModalWidth, border)
}
