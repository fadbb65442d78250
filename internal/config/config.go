package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings trapmeta reads from its TOML file.
type Config struct {
	Server         string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration

	CommonFields   []string
	ReadOnlyFields []string

	SelectionMinSize int
	DebugMaxChars    int
}

// ServerEnv overrides the server URL when set.
const ServerEnv = "TRAPMETA_SERVER"

const (
	defaultConfigPath       = "~/.config/trapmeta/config.toml"
	defaultServer           = "http://127.0.0.1:5000"
	defaultLogFile          = "~/.local/state/trapmeta/trapmeta.log"
	defaultLogLevel         = "info"
	defaultRequestTimeout   = 2 * time.Minute
	defaultSelectionMinSize = 20
	defaultDebugMaxChars    = 500
)

// DefaultCommonFields are always offered in the metadata form.
var DefaultCommonFields = []string{
	"Species",
	"Count",
	"Behavior",
	"Weather",
	"Temperature_C",
	"Temperature_F",
	"Location",
	"Camera_ID",
	"Researcher",
	"Notes",
}

// DefaultReadOnlyFields are shown but never sent back to the server.
var DefaultReadOnlyFields = []string{"filename", "size_mb", "dimensions"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server:           defaultServer,
		LogFile:          mustExpand(defaultLogFile),
		LogLevel:         defaultLogLevel,
		RequestTimeout:   defaultRequestTimeout,
		CommonFields:     append([]string(nil), DefaultCommonFields...),
		ReadOnlyFields:   append([]string(nil), DefaultReadOnlyFields...),
		SelectionMinSize: defaultSelectionMinSize,
		DebugMaxChars:    defaultDebugMaxChars,
	}
}

type rawConfig struct {
	Server         string `toml:"server"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	RequestTimeout string `toml:"request_timeout"`
	Fields         struct {
		Common   []string `toml:"common"`
		ReadOnly []string `toml:"readonly"`
	} `toml:"fields"`
	Selection struct {
		MinSize int `toml:"min_size"`
	} `toml:"selection"`
	Debug struct {
		MaxChars int `toml:"max_chars"`
	} `toml:"debug"`
}

// Load locates and parses the trapmeta config, falling back to defaults when missing.
// A non-empty TRAPMETA_SERVER environment variable wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if server := strings.TrimSpace(raw.Server); server != "" {
		cfg.Server = server
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		switch level {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = level
		default:
			return Config{}, fmt.Errorf("parse config: unknown log_level %q", raw.LogLevel)
		}
	}
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("parse config: invalid request_timeout %q", raw.RequestTimeout)
		}
		cfg.RequestTimeout = d
	}
	if common := cleanNames(raw.Fields.Common); len(common) > 0 {
		cfg.CommonFields = common
	}
	if readonly := cleanNames(raw.Fields.ReadOnly); len(readonly) > 0 {
		cfg.ReadOnlyFields = readonly
	}
	if raw.Selection.MinSize > 0 {
		cfg.SelectionMinSize = raw.Selection.MinSize
	}
	if raw.Debug.MaxChars > 0 {
		cfg.DebugMaxChars = raw.Debug.MaxChars
	}

	applyEnv(&cfg)
	return cfg, nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func applyEnv(cfg *Config) {
	if server := strings.TrimSpace(os.Getenv(ServerEnv)); server != "" {
		cfg.Server = server
	}
}

// cleanNames trims entries and drops blanks and duplicates, keeping order.
func cleanNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
