package state

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestDebugLog_KeepsTrailingChars(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	var d DebugLog
	var full strings.Builder
	for i := 0; i < 30; i++ {
		msg := fmt.Sprintf("entry %02d with a little text", i)
		d = d.Append(now, msg)
		full.WriteString("[12:30:00] " + msg + "\n")
	}
	all := full.String()
	if len(all) <= DefaultDebugChars {
		t.Fatalf("test input too short: %d", len(all))
	}
	want := all[len(all)-DefaultDebugChars:]
	if d.Text != want {
		t.Fatalf("debug text = %q, want trailing %d chars %q", d.Text, DefaultDebugChars, want)
	}
}

func TestDebugLog_RuneAware(t *testing.T) {
	d := DebugLog{Max: 12}
	d = d.Append(time.Time{}, "23°C 73°F")
	if n := len([]rune(d.Text)); n != 12 {
		t.Fatalf("rune length = %d, want 12", n)
	}
	if !strings.HasSuffix(d.Text, "23°C 73°F\n") {
		t.Fatalf("text = %q", d.Text)
	}
}

func TestDebugLog_ShortTextUntouched(t *testing.T) {
	d := DebugLog{}.Append(time.Time{}, "hello")
	if d.Text != "[00:00:00] hello\n" {
		t.Fatalf("text = %q", d.Text)
	}
}
