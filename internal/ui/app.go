package ui

import (
	"context"
	"image"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trapmeta/internal/editor"
	"github.com/five82/trapmeta/internal/imageview"
	"github.com/five82/trapmeta/internal/prefs"
	"github.com/five82/trapmeta/internal/state"
)

// Dispatcher is the controller surface the UI drives.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent editor.Intent) editor.Outcome
	Snapshot() state.Snapshot
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller Dispatcher
	Logger     *slog.Logger
	Server     string
	ThemeName  string
	PrefsPath  string
}

// alert is a queued blocking message.
type alert struct {
	text   string
	failed bool
}

// previewKey identifies the picture, pane size and theme a Preview was
// scaled for.
type previewKey struct {
	img        image.Image
	cols, rows int
	theme      string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      Dispatcher
	logger    *slog.Logger
	server    string
	prefsPath string

	// UI state
	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot

	// Remote intents in flight
	pending int
	spinner spinner.Model

	// Save confirmation
	savedFlash bool
	flashSeq   int

	// Overlays
	alerts   []alert
	showHelp bool
	modal    Modal

	// Form pane
	formCursor int
	editing    bool
	editName   string
	editInput  textinput.Model

	// Folder browser
	browserCursor int
	browserPath   string

	// Preview pane
	preview    *imageview.Preview
	previewKey previewKey

	// Debug pane
	debugViewport viewport.Model
	debugText     string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	edit := textinput.New()
	edit.CharLimit = 512
	edit.Prompt = ""

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		logger:    logger,
		server:    opts.Server,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     theme,
		spinner:   sp,
		editInput: edit,
	}
	m.snapshot = m.ctrl.Snapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
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
			m.debugViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.resizeDebugViewport()
		m.debugText = ""
		m.refresh()
		return m, nil

	case intentMsg:
		return m.handleIntentMsg(msg)

	case outcomeMsg:
		m.pending = max(m.pending-1, 0)
		m.logger.Debug("remote intent finished", "pending", m.pending)
		return m.applyOutcome(msg.outcome)

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case savedFlashMsg:
		if msg.seq == m.flashSeq {
			m.savedFlash = false
		}
		return m, nil
	}

	// Cursor blink and other input messages.
	var cmd tea.Cmd
	switch {
	case m.modal != nil:
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
	case m.editing:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if len(m.alerts) > 0 {
		return m.renderAlert()
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	if m.snapshot.Browser.Open {
		return m.renderBrowser()
	}

	return m.renderMain()
}

// refresh re-reads the snapshot and brings cursors, the preview and the
// debug pane in line with it.
func (m *Model) refresh() {
	m.snapshot = m.ctrl.Snapshot()

	fields := m.snapshot.Form.Fields
	m.formCursor = min(m.formCursor, max(len(fields)-1, 0))
	if m.editing && !m.snapshot.Form.Has(m.editName) {
		m.stopEditing()
	}

	if path := m.snapshot.Browser.CurrentPath; path != m.browserPath {
		m.browserPath = path
		m.browserCursor = 0
	}
	m.browserCursor = min(m.browserCursor, max(len(m.snapshot.Browser.Entries)-1, 0))

	m.syncPreview()
	m.syncDebug()
}

// syncPreview rescales the picture when it, the pane size or the theme
// changed.
func (m *Model) syncPreview() {
	session := m.snapshot.Session
	if !m.ready || !session.HasPicture || session.Picture.Image == nil {
		m.preview = nil
		m.previewKey = previewKey{}
		return
	}
	l := computeLayout(m.width, m.height)
	key := previewKey{
		img:   session.Picture.Image,
		cols:  l.previewCols,
		rows:  l.previewRows,
		theme: m.theme.Name,
	}
	if m.preview != nil && key == m.previewKey {
		return
	}
	m.preview = imageview.NewPreview(session.Picture.Image, l.previewCols, l.previewRows,
		imageview.ParseHex(m.theme.Panel))
	m.previewKey = key
}

func (m *Model) resizeDebugViewport() {
	l := computeLayout(m.width, m.height)
	m.debugViewport.Width = max(m.width-2, 0)
	m.debugViewport.Height = max(l.debugRows-2, 0)
}

// syncDebug follows the debug buffer, wrapping it to the pane width.
func (m *Model) syncDebug() {
	if !m.ready || m.snapshot.Debug.Text == m.debugText {
		return
	}
	m.debugText = m.snapshot.Debug.Text
	wrapped := lipgloss.NewStyle().Width(max(m.debugViewport.Width, 1)).
		Render(strings.TrimRight(m.debugText, "\n"))
	m.debugViewport.SetContent(wrapped)
	m.debugViewport.GotoBottom()
}

func (m *Model) startEditing(field state.Field, width int) tea.Cmd {
	m.editing = true
	m.editName = field.Name
	m.editInput.SetValue(field.Value)
	m.editInput.CursorEnd()
	m.editInput.Width = max(width, 1)
	return m.editInput.Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.editName = ""
	m.editInput.Blur()
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	if m.prefsPath != "" {
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			m.logger.Warn("save theme preference", "error", err)
		}
	}
	m.syncPreview()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	return err
}
