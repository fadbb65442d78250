package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trapmeta/internal/editor"
)

// Messages

// intentMsg asks the model to dispatch an intent. With closeModal set the
// open modal closes once the intent completes without an alert.
type intentMsg struct {
	intent     editor.Intent
	closeModal bool
}

// outcomeMsg carries the result of a remote intent back to the event loop.
type outcomeMsg struct {
	intent  editor.Intent
	outcome editor.Outcome
}

// savedFlashMsg ends the save confirmation started with the same seq.
type savedFlashMsg struct{ seq int }

// Commands

func dispatchIntent(in editor.Intent, closeModal bool) tea.Cmd {
	return func() tea.Msg {
		return intentMsg{intent: in, closeModal: closeModal}
	}
}

func savedFlashCmd(seq int) tea.Cmd {
	return tea.Tick(SavedFlashDuration, func(time.Time) tea.Msg {
		return savedFlashMsg{seq: seq}
	})
}

// dispatch runs a local intent inline and a remote intent as a command so
// the event loop keeps rendering while the server works.
func (m Model) dispatch(in editor.Intent) (Model, tea.Cmd) {
	if !in.Remote() {
		out := m.ctrl.Dispatch(m.ctx, in)
		return m.applyOutcome(out)
	}

	m.pending++
	m.logger.Debug("dispatch remote intent", "intent", fmt.Sprintf("%T", in), "pending", m.pending)
	ctx, ctrl := m.ctx, m.ctrl
	run := func() tea.Msg {
		return outcomeMsg{intent: in, outcome: ctrl.Dispatch(ctx, in)}
	}
	if m.pending == 1 {
		return m, tea.Batch(run, m.spinner.Tick)
	}
	return m, run
}

// applyOutcome queues alerts, starts the save flash and dispatches follow-up
// intents.
func (m Model) applyOutcome(out editor.Outcome) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	if out.Alert != "" {
		m.alerts = append(m.alerts, alert{text: out.Alert, failed: out.Failed})
	}
	if out.Saved {
		m.flashSeq++
		m.savedFlash = true
		cmds = append(cmds, savedFlashCmd(m.flashSeq))
	}
	for _, next := range out.Next {
		var cmd tea.Cmd
		m, cmd = m.dispatch(next)
		cmds = append(cmds, cmd)
	}
	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m Model) handleIntentMsg(msg intentMsg) (Model, tea.Cmd) {
	alerts := len(m.alerts)
	m, cmd := m.dispatch(msg.intent)
	if msg.closeModal && !msg.intent.Remote() && len(m.alerts) == alerts {
		m.modal = nil
	}
	return m, cmd
}
