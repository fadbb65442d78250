package state

import (
	"time"
	"unicode/utf8"
)

// DefaultDebugChars is the debug buffer size when none is configured.
const DefaultDebugChars = 500

// DebugLog is the rolling diagnostic text shown to the user. It keeps only
// the most recent Max characters.
type DebugLog struct {
	Text string
	Max  int
}

// Append adds a timestamped entry and drops the oldest characters past Max.
func (d DebugLog) Append(now time.Time, msg string) DebugLog {
	d.Text += "[" + now.Format("15:04:05") + "] " + msg + "\n"
	return d.truncate()
}

func (d DebugLog) truncate() DebugLog {
	limit := d.Max
	if limit <= 0 {
		limit = DefaultDebugChars
	}
	excess := utf8.RuneCountInString(d.Text) - limit
	if excess <= 0 {
		return d
	}
	cut := 0
	for i := 0; i < excess; i++ {
		_, size := utf8.DecodeRuneInString(d.Text[cut:])
		cut += size
	}
	d.Text = d.Text[cut:]
	return d
}
