package state

import (
	"image"
	"testing"

	"github.com/five82/trapmeta/internal/trapapi"
)

func TestSession_LoadedResetsIndex(t *testing.T) {
	s := Session{Index: 4, Total: 9, Metadata: trapapi.Metadata{{Key: "a", Value: "b"}}, HasPicture: true, Generation: 3}
	next := s.Loaded("/data", 5)
	if next.Index != 0 || next.Total != 5 || next.Folder != "/data" {
		t.Fatalf("Loaded = %#v", next)
	}
	if next.Metadata != nil || next.HasPicture {
		t.Fatalf("Loaded should clear image state: %#v", next)
	}
	if next.Generation <= s.Generation {
		t.Fatalf("generation = %d, want > %d", next.Generation, s.Generation)
	}
}

func TestSession_MoveToOutOfRange(t *testing.T) {
	s := Session{Total: 3, Index: 1}
	for _, i := range []int{-1, 3, 10} {
		next, ok := s.MoveTo(i)
		if ok || next.Index != 1 {
			t.Fatalf("MoveTo(%d) = (%d, %v), want unchanged", i, next.Index, ok)
		}
	}
	next, ok := s.MoveTo(2)
	if !ok || next.Index != 2 {
		t.Fatalf("MoveTo(2) = (%d, %v)", next.Index, ok)
	}
}

func TestSession_ShowImageDropsStale(t *testing.T) {
	s := Session{Total: 3}
	s, first := s.BeginLoad()
	s, _ = s.MoveTo(1)
	s, second := s.BeginLoad()

	info := trapapi.ImageInfo{Filename: "a.jpg"}
	if _, ok := s.ShowImage(0, first, info, nil); ok {
		t.Fatalf("stale result should be rejected")
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	next, ok := s.ShowImage(1, second, info, img)
	if !ok || next.Picture.Filename != "a.jpg" || !next.HasPicture {
		t.Fatalf("ShowImage = (%#v, %v)", next, ok)
	}
	if next.Metadata == nil {
		t.Fatalf("missing metadata should default to empty")
	}
}

func TestSession_LoadFailedClearsPreviousImage(t *testing.T) {
	s := Session{Total: 3}
	s, first := s.BeginLoad()
	s, _ = s.ShowImage(0, first, trapapi.ImageInfo{Filename: "a.jpg", Metadata: trapapi.Metadata{{Key: "Species", Value: "Kudu"}}}, image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if !s.Bound() {
		t.Fatal("shown image should be bound")
	}

	s, _ = s.MoveTo(1)
	s, second := s.BeginLoad()
	if s.Bound() {
		t.Fatal("session should not be bound while the next image loads")
	}
	if _, ok := s.LoadFailed(0, first); ok {
		t.Fatal("stale failure should be ignored")
	}
	next, ok := s.LoadFailed(1, second)
	if !ok {
		t.Fatal("current failure rejected")
	}
	if next.Metadata != nil || next.HasPicture || next.Picture.Filename != "" || next.Bound() {
		t.Fatalf("LoadFailed = %#v", next)
	}
	if next.Index != 1 {
		t.Fatalf("Index = %d, want 1", next.Index)
	}
}

func TestSession_NavAndPosition(t *testing.T) {
	tests := []struct {
		index, total int
		want         Nav
		pos          string
	}{
		{0, 0, Nav{}, "0 / 0"},
		{0, 1, Nav{}, "1 / 1"},
		{0, 3, Nav{Next: true, Last: true}, "1 / 3"},
		{2, 3, Nav{First: true, Prev: true}, "3 / 3"},
	}
	for _, tt := range tests {
		s := Session{Index: tt.index, Total: tt.total}
		if got := s.Nav(); got != tt.want {
			t.Fatalf("Nav(%d/%d) = %#v, want %#v", tt.index, tt.total, got, tt.want)
		}
		if got := s.Position(); got != tt.pos {
			t.Fatalf("Position() = %q, want %q", got, tt.pos)
		}
	}
}
