package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/five82/trapmeta/internal/config"
	"github.com/five82/trapmeta/internal/editor"
	"github.com/five82/trapmeta/internal/logging"
	"github.com/five82/trapmeta/internal/prefs"
	"github.com/five82/trapmeta/internal/state"
	"github.com/five82/trapmeta/internal/trapapi"
	"github.com/five82/trapmeta/internal/ui"
)

// Options configure the trapmeta application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/trapmeta/prefs.toml
	Server     string // overrides config and TRAPMETA_SERVER when set
}

// Env holds the dependencies shared by the TUI and the headless commands.
type Env struct {
	Config config.Config
	Logger *slog.Logger
	Client *trapapi.Client

	closer io.Closer
}

// Close flushes and closes the log file.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Setup loads configuration, opens the log and builds the server client.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if server := strings.TrimSpace(opts.Server); server != "" {
		cfg.Server = server
	}

	logger, closer, err := logging.Open(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	client, err := trapapi.NewClient(cfg.Server, cfg.RequestTimeout, logger)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init trapmeta client: %w", err)
	}

	return &Env{Config: cfg, Logger: logger, Client: client, closer: closer}, nil
}

// Run boots the trapmeta TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		env.Logger.Warn("preferences unreadable, using defaults", "error", err)
	}

	env.Logger.Info("trapmeta starting", "server", env.Client.BaseURL(), "last_folder", userPrefs.LastFolder)

	ctrl := NewController(env, userPrefs, opts.PrefsPath)

	err = ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Logger:     env.Logger,
		Server:     env.Client.BaseURL(),
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	})
	if err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled)) {
		return nil
	}
	env.Logger.Info("trapmeta stopped")
	return err
}

// NewController builds the editor controller with the initial state seeded
// from the configuration and the remembered folder. Confirmed folders are
// written back to the preferences file.
func NewController(env *Env, p prefs.Prefs, prefsPath string) *editor.Controller {
	cfg := env.Config
	initial := state.New(state.FieldSets{
		Common:   cfg.CommonFields,
		ReadOnly: cfg.ReadOnlyFields,
	}, cfg.DebugMaxChars)
	initial.Browser.Committed = p.LastFolder

	logger := env.Logger
	return editor.New(env.Client, state.NewStore(initial), logger, editor.Options{
		MinSelection: cfg.SelectionMinSize,
		OnCommit: func(path string) {
			err := prefs.Update(prefsPath, func(p *prefs.Prefs) { p.LastFolder = path })
			if err != nil {
				logger.Warn("failed to remember folder", "folder", path, "error", err)
			}
		},
	})
}
