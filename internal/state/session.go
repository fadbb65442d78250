package state

import (
	"fmt"
	"image"

	"github.com/five82/trapmeta/internal/trapapi"
)

// Picture is the image currently on display.
type Picture struct {
	Filename   string
	Dimensions string
	SizeMB     float64
	Image      image.Image
}

// Session tracks the loaded folder and the image the navigator points at.
//
// Generation increases on every folder load, reset and image request. Results
// of asynchronous work are tagged with the generation they were started under
// and dropped when it no longer matches.
type Session struct {
	Folder     string
	Index      int
	Total      int
	Metadata   trapapi.Metadata
	Picture    Picture
	HasPicture bool
	Generation uint64
	// Shown is the generation Metadata and Picture were fetched under, 0 when
	// nothing is shown.
	Shown uint64
}

// Reset clears navigation and image state ahead of a folder load.
func (s Session) Reset() Session {
	return Session{Generation: s.Generation + 1}
}

// Loaded records a successful folder load of total images.
func (s Session) Loaded(folder string, total int) Session {
	if total < 0 {
		total = 0
	}
	next := s.Reset()
	next.Folder = folder
	next.Total = total
	return next
}

// HasImages reports whether the loaded folder contains anything to show.
func (s Session) HasImages() bool {
	return s.Total > 0
}

// InRange reports whether i addresses an image of the loaded folder.
func (s Session) InRange(i int) bool {
	return i >= 0 && i < s.Total
}

// MoveTo points the navigator at i. It returns false and the unchanged
// session when i is out of range.
func (s Session) MoveTo(i int) (Session, bool) {
	if !s.InRange(i) {
		return s, false
	}
	s.Index = i
	return s, true
}

// BeginLoad starts a load of the current index and returns its generation.
func (s Session) BeginLoad() (Session, uint64) {
	s.Generation++
	return s, s.Generation
}

// Current reports whether a result for (index, gen) still matches the session.
func (s Session) Current(index int, gen uint64) bool {
	return s.Generation == gen && s.Index == index
}

// ShowImage installs the metadata and picture fetched for (index, gen). It
// returns false when the result is stale.
func (s Session) ShowImage(index int, gen uint64, info trapapi.ImageInfo, img image.Image) (Session, bool) {
	if !s.Current(index, gen) {
		return s, false
	}
	s.Metadata = info.Metadata
	if s.Metadata == nil {
		s.Metadata = trapapi.Metadata{}
	}
	s.Picture = Picture{
		Filename:   info.Filename,
		Dimensions: info.Dimensions,
		SizeMB:     info.SizeMB,
		Image:      img,
	}
	s.HasPicture = img != nil
	s.Shown = gen
	return s, true
}

// LoadFailed drops the previous image after the request for (index, gen)
// failed, so its metadata never stands in for the new index. It returns
// false when the failure is stale.
func (s Session) LoadFailed(index int, gen uint64) (Session, bool) {
	if !s.Current(index, gen) {
		return s, false
	}
	s.Metadata = nil
	s.Picture = Picture{}
	s.HasPicture = false
	s.Shown = 0
	return s, true
}

// Bound reports whether Metadata was fetched for the current index and
// generation.
func (s Session) Bound() bool {
	return s.HasImages() && s.Shown != 0 && s.Shown == s.Generation
}

// Position renders the 1-based position, e.g. "3 / 7".
func (s Session) Position() string {
	if s.Total == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", s.Index+1, s.Total)
}

// Nav describes which navigation moves are currently possible.
type Nav struct {
	First bool
	Prev  bool
	Next  bool
	Last  bool
}

// Nav computes navigation availability from the index alone.
func (s Session) Nav() Nav {
	if s.Total == 0 {
		return Nav{}
	}
	atStart := s.Index == 0
	atEnd := s.Index == s.Total-1
	return Nav{First: !atStart, Prev: !atStart, Next: !atEnd, Last: !atEnd}
}
