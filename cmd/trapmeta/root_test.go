package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootFlags_Parse(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "prefs", "server"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Fatalf("missing --%s flag", name)
		}
	}
	for _, sub := range []string{"export", "logs"} {
		found, _, err := cmd.Find([]string{sub})
		if err != nil || found.Name() != sub {
			t.Fatalf("subcommand %q not registered: %v", sub, err)
		}
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	if _, err := executeCommand(t, "extra"); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestExport_RequiresFolder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TRAPMETA_SERVER", "")

	out, err := executeCommand(t, "export", "--prefs", filepath.Join(home, "prefs.toml"))
	if err == nil {
		t.Fatal("expected error without a folder")
	}
	if !strings.Contains(err.Error(), "--folder") {
		t.Fatalf("error = %v, output = %s", err, out)
	}
}

func TestLogs_PrintsTail(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "trapmeta.log")
	lines := strings.Join([]string{
		`{"time":"2026-01-02T10:00:00Z","level":"INFO","msg":"first"}`,
		`{"time":"2026-01-02T10:00:01Z","level":"INFO","msg":"second"}`,
		`{"time":"2026-01-02T10:00:02Z","level":"WARN","msg":"third","folder":"/data"}`,
	}, "\n") + "\n"
	if err := os.WriteFile(logPath, []byte(lines), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("log_file = \""+filepath.ToSlash(logPath)+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := executeCommand(t, "logs", "--config", configPath, "-n", "2")
	if err != nil {
		t.Fatalf("logs returned error: %v", err)
	}
	if strings.Contains(out, "first") {
		t.Fatalf("output should hold the last two lines only:\n%s", out)
	}
	if !strings.Contains(out, "second") || !strings.Contains(out, "third") || !strings.Contains(out, "folder=/data") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
