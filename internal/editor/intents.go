package editor

import (
	"github.com/five82/trapmeta/internal/state"
	"github.com/five82/trapmeta/internal/trapapi"
)

// Intent is a typed user or follow-up action handled by Dispatch.
type Intent interface {
	// Remote reports whether handling the intent talks to the server.
	// The UI runs remote intents off the event loop.
	Remote() bool
}

// Folder browser.
type (
	OpenBrowser   struct{}
	BrowseTo      struct{ Path string }
	SelectFolder  struct{ Path string }
	ConfirmFolder struct{}
	CancelBrowser struct{}
)

// Navigator.
type (
	LoadFolder struct{}
	Navigate   struct{ Index int }
	// ExtractFooter reads the footer band of image Index. Generation ties the
	// request to the image load that triggered it.
	ExtractFooter struct {
		Index      int
		Generation uint64
	}
	ParseManualFooter struct{ Text string }
)

// Metadata form.
type (
	SetFieldValue struct{ Name, Value string }
	AddField      struct{ Name, Value string }
	DeleteField   struct{ Name string }
	Save          struct{}
)

// Region selector.
type (
	ToggleIdentify struct{}
	PointerDown    struct {
		Point    state.Point
		Geometry state.Geometry
	}
	PointerMove struct{ Point state.Point }
	PointerUp   struct {
		Point    state.Point
		Geometry state.Geometry
	}
	CancelSelection struct{}
	// Identify submits a committed selection. PointerUp emits it.
	Identify struct {
		Index      int
		Generation uint64
		Selection  trapapi.Selection
	}
)

func (OpenBrowser) Remote() bool       { return true }
func (BrowseTo) Remote() bool          { return true }
func (SelectFolder) Remote() bool      { return false }
func (ConfirmFolder) Remote() bool     { return false }
func (CancelBrowser) Remote() bool     { return false }
func (LoadFolder) Remote() bool        { return true }
func (Navigate) Remote() bool          { return true }
func (ExtractFooter) Remote() bool     { return true }
func (ParseManualFooter) Remote() bool { return true }
func (SetFieldValue) Remote() bool     { return false }
func (AddField) Remote() bool          { return false }
func (DeleteField) Remote() bool       { return false }
func (Save) Remote() bool              { return true }
func (ToggleIdentify) Remote() bool    { return false }
func (PointerDown) Remote() bool       { return false }
func (PointerMove) Remote() bool       { return false }
func (PointerUp) Remote() bool         { return false }
func (CancelSelection) Remote() bool   { return false }
func (Identify) Remote() bool          { return true }

// Outcome reports what the UI should do after an intent.
type Outcome struct {
	// Alert is a blocking message for the user.
	Alert string
	// Failed marks Alert as an error or a rejected input rather than a result.
	Failed bool
	// Next lists follow-up intents to dispatch without blocking.
	Next []Intent
	// Saved starts the save confirmation flash.
	Saved bool
	// Identified marks a completed identification.
	Identified bool
}
