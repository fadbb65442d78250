package editor

import (
	"context"
	"fmt"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/five82/trapmeta/internal/apperrors"
	"github.com/five82/trapmeta/internal/state"
	"github.com/five82/trapmeta/internal/trapapi"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	listings  map[string]trapapi.Listing
	browseErr error

	count   int
	loadErr error

	metadata map[int]trapapi.Metadata
	imageErr error
	fileErr  error
	stamps   []int64

	saved   []trapapi.Metadata
	saveErr error

	footer    trapapi.Metadata
	footerErr error

	identification trapapi.Identification
	identifyErr    error
	selections     []trapapi.Selection

	manual trapapi.Metadata
}

func (f *fakeAPI) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) BrowseFolders(_ context.Context, path string) (trapapi.Listing, error) {
	f.record("browse %s", path)
	if f.browseErr != nil {
		return trapapi.Listing{}, f.browseErr
	}
	return f.listings[path], nil
}

func (f *fakeAPI) LoadFolder(_ context.Context, path string) (int, error) {
	f.record("load %s", path)
	return f.count, f.loadErr
}

func (f *fakeAPI) FetchImage(_ context.Context, index int) (trapapi.ImageInfo, error) {
	f.record("image %d", index)
	if f.imageErr != nil {
		return trapapi.ImageInfo{}, f.imageErr
	}
	return trapapi.ImageInfo{
		Filename: fmt.Sprintf("img%d.jpg", index),
		Index:    index,
		Total:    f.count,
		Metadata: f.metadata[index],
	}, nil
}

func (f *fakeAPI) FetchImageFile(_ context.Context, index int, stamp int64) ([]byte, error) {
	f.record("file %d", index)
	f.mu.Lock()
	f.stamps = append(f.stamps, stamp)
	f.mu.Unlock()
	if f.fileErr != nil {
		return nil, f.fileErr
	}
	return []byte("img"), nil
}

func (f *fakeAPI) SaveMetadata(_ context.Context, index int, metadata trapapi.Metadata) (string, error) {
	f.record("save %d", index)
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, metadata)
	return "saved", nil
}

func (f *fakeAPI) ExtractFooter(_ context.Context, index int) (trapapi.Metadata, error) {
	f.record("footer %d", index)
	return f.footer, f.footerErr
}

func (f *fakeAPI) IdentifySpecies(_ context.Context, index int, sel trapapi.Selection) (trapapi.Identification, error) {
	f.record("identify %d", index)
	f.selections = append(f.selections, sel)
	return f.identification, f.identifyErr
}

func (f *fakeAPI) ParseManualFooter(_ context.Context, text string) (trapapi.Metadata, error) {
	f.record("manual %s", text)
	return f.manual, nil
}

var testSets = state.FieldSets{
	Common:   []string{"Species", "Count", "Behavior", "Weather", "Temperature_C", "Temperature_F", "Location", "Camera_ID", "Researcher", "Notes"},
	ReadOnly: []string{"filename", "size_mb", "dimensions"},
}

func newTestController(t *testing.T, api *fakeAPI) *Controller {
	t.Helper()
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store := state.NewStore(state.New(testSets, 0))
	return New(api, store, nil, Options{
		Decode: func([]byte) (image.Image, error) {
			return image.NewRGBA(image.Rect(0, 0, 400, 400)), nil
		},
		Now: func() time.Time { return clock },
	})
}

// commit puts folder into the committed slot as if the user confirmed it.
func commit(c *Controller, folder string) {
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		s.Browser.Committed = folder
		return s
	})
}

// loaded returns a controller with a folder of total images already loaded.
func loaded(t *testing.T, api *fakeAPI, total int) *Controller {
	t.Helper()
	api.count = total
	c := newTestController(t, api)
	commit(c, "/data")
	out := c.Dispatch(context.Background(), LoadFolder{})
	if out.Alert != "" {
		t.Fatalf("LoadFolder alert = %q", out.Alert)
	}
	return c
}

func serverError(msg string) error {
	return apperrors.Server(msg)
}
