package state

import (
	"sync"
	"time"

	"github.com/five82/trapmeta/internal/trapapi"
)

// Snapshot is the complete editor state the UI renders from.
type Snapshot struct {
	Session  Session
	Form     Form
	Selector Selector
	Browser  Browser
	Debug    DebugLog

	Loading     bool
	Saving      bool
	Identifying bool
	SavedAt     time.Time
}

// New returns the initial snapshot for a session using the given field lists.
func New(sets FieldSets, debugChars int) Snapshot {
	return Snapshot{
		Form:  Form{Sets: sets},
		Debug: DebugLog{Max: debugChars},
	}
}

// ContentVisible reports whether the image and form replace the welcome view.
func (s Snapshot) ContentVisible() bool {
	return s.Session.HasImages()
}

// NavEnabled reports whether navigation keys and buttons respond. They are
// off with no images and while a selection gesture or identification runs.
func (s Snapshot) NavEnabled() bool {
	return s.Session.HasImages() && !s.Selector.Active() && !s.Identifying
}

// Nav is the per-button navigation state including the global gate.
func (s Snapshot) Nav() Nav {
	if !s.NavEnabled() {
		return Nav{}
	}
	return s.Session.Nav()
}

// CanLoad reports whether a folder is committed and ready to load.
func (s Snapshot) CanLoad() bool {
	return s.Browser.Committed != "" && !s.Loading
}

// CanIdentify reports whether the identify toggle responds.
func (s Snapshot) CanIdentify() bool {
	return s.Session.HasPicture && !s.Identifying
}

// Log appends a debug entry stamped with now.
func (s Snapshot) Log(now time.Time, msg string) Snapshot {
	s.Debug = s.Debug.Append(now, msg)
	return s
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore returns a store holding initial.
func NewStore(initial Snapshot) *Store {
	return &Store{snapshot: initial}
}

// Apply runs fn against the current snapshot and stores its result.
// Transitions are serialized; fn must not block.
func (s *Store) Apply(fn func(Snapshot) Snapshot) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = fn(s.snapshot)
	return s.snapshot.clone()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot.clone()
}

func (s Snapshot) clone() Snapshot {
	s.Session.Metadata = cloneMetadata(s.Session.Metadata)
	s.Form = s.Form.clone()
	if s.Browser.Entries != nil {
		entries := make([]trapapi.BrowseEntry, len(s.Browser.Entries))
		copy(entries, s.Browser.Entries)
		s.Browser.Entries = entries
	}
	return s
}

func cloneMetadata(m trapapi.Metadata) trapapi.Metadata {
	if m == nil {
		return nil
	}
	dup := make(trapapi.Metadata, len(m))
	copy(dup, m)
	return dup
}
