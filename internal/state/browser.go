package state

import "github.com/five82/trapmeta/internal/trapapi"

// Browser is the folder picker. Pending is the highlighted directory; it
// becomes Committed only through Confirm.
type Browser struct {
	Open        bool
	CurrentPath string
	Entries     []trapapi.BrowseEntry
	Pending     string
	Committed   string
}

// Show opens the picker with no pending selection.
func (b Browser) Show() Browser {
	b.Open = true
	b.Pending = ""
	return b
}

// Listed replaces the displayed tree with listing.
func (b Browser) Listed(listing trapapi.Listing) Browser {
	entries := make([]trapapi.BrowseEntry, len(listing.Items))
	copy(entries, listing.Items)
	b.CurrentPath = listing.CurrentPath
	b.Entries = entries
	return b
}

// Select marks path as pending when it names a directory in the tree.
func (b Browser) Select(path string) (Browser, bool) {
	for _, entry := range b.Entries {
		if entry.Path == path && entry.Kind() == trapapi.EntryDirectory {
			b.Pending = path
			return b, true
		}
	}
	return b, false
}

// CanConfirm reports whether a pending selection exists.
func (b Browser) CanConfirm() bool {
	return b.Open && b.Pending != ""
}

// Confirm commits the pending selection and closes the picker.
func (b Browser) Confirm() (Browser, bool) {
	if !b.CanConfirm() {
		return b, false
	}
	b.Committed = b.Pending
	b.Pending = ""
	b.Open = false
	return b, true
}

// Close dismisses the picker without committing.
func (b Browser) Close() Browser {
	b.Open = false
	b.Pending = ""
	return b
}
