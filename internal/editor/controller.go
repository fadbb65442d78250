package editor

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/five82/trapmeta/internal/apperrors"
	"github.com/five82/trapmeta/internal/imageview"
	"github.com/five82/trapmeta/internal/state"
	"github.com/five82/trapmeta/internal/trapapi"
)

// DefaultMinSelection is the smallest accepted drag in display pixels.
const DefaultMinSelection = 20

// Options tunes a Controller. Zero values select defaults.
type Options struct {
	MinSelection int
	Decode       func([]byte) (image.Image, error)
	Now          func() time.Time
	// OnCommit is called with each folder the user confirms.
	OnCommit func(path string)
}

// Controller owns the editor state and turns intents into server calls and
// state transitions.
type Controller struct {
	api    trapapi.API
	store  *state.Store
	logger *slog.Logger

	minSelection int
	decode       func([]byte) (image.Image, error)
	now          func() time.Time
	onCommit     func(path string)

	stampMu   sync.Mutex
	lastStamp int64
}

// New builds a Controller over api and store.
func New(api trapapi.API, store *state.Store, logger *slog.Logger, opts Options) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{
		api:          api,
		store:        store,
		logger:       logger,
		minSelection: opts.MinSelection,
		decode:       opts.Decode,
		now:          opts.Now,
		onCommit:     opts.OnCommit,
	}
	if c.minSelection <= 0 {
		c.minSelection = DefaultMinSelection
	}
	if c.decode == nil {
		c.decode = imageview.Decode
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// Dispatch handles one intent. Remote intents block on the server and should
// run off the UI goroutine.
func (c *Controller) Dispatch(ctx context.Context, intent Intent) Outcome {
	switch in := intent.(type) {
	case OpenBrowser:
		return c.openBrowser(ctx)
	case BrowseTo:
		return c.browseTo(ctx, in.Path)
	case SelectFolder:
		c.store.Apply(func(s state.Snapshot) state.Snapshot {
			s.Browser, _ = s.Browser.Select(in.Path)
			return s
		})
	case ConfirmFolder:
		return c.confirmFolder()
	case CancelBrowser:
		c.store.Apply(func(s state.Snapshot) state.Snapshot {
			s.Browser = s.Browser.Close()
			return s
		})
	case LoadFolder:
		return c.loadFolder(ctx)
	case Navigate:
		return c.navigate(ctx, in.Index)
	case ExtractFooter:
		return c.extractFooter(ctx, in)
	case ParseManualFooter:
		return c.parseManualFooter(ctx, in.Text)
	case SetFieldValue:
		c.store.Apply(func(s state.Snapshot) state.Snapshot {
			s.Form, _ = s.Form.SetValue(in.Name, in.Value)
			return s
		})
	case AddField:
		return c.addField(in.Name, in.Value)
	case DeleteField:
		return c.deleteField(in.Name)
	case Save:
		return c.save(ctx)
	case ToggleIdentify:
		return c.toggleIdentify()
	case PointerDown:
		c.store.Apply(func(s state.Snapshot) state.Snapshot {
			s.Selector, _ = s.Selector.Press(in.Point, in.Geometry)
			return s
		})
	case PointerMove:
		c.store.Apply(func(s state.Snapshot) state.Snapshot {
			s.Selector = s.Selector.Move(in.Point)
			return s
		})
	case PointerUp:
		return c.pointerUp(in)
	case CancelSelection:
		c.store.Apply(func(s state.Snapshot) state.Snapshot {
			if s.Selector.Active() {
				s.Selector = s.Selector.Cancel()
				s = s.Log(c.now(), "Selection cancelled")
			}
			return s
		})
	case Identify:
		return c.identify(ctx, in)
	default:
		c.logger.Warn("unhandled intent", "intent", fmt.Sprintf("%T", intent))
	}
	return Outcome{}
}

// note appends msg to the debug buffer and mirrors it to slog.
func (c *Controller) note(level slog.Level, msg string, attrs ...any) {
	c.logger.Log(context.Background(), level, msg, attrs...)
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		return s.Log(c.now(), msg)
	})
}

// fail records err in the debug buffer and returns it as an alert.
func (c *Controller) fail(prefix string, err error, attrs ...any) Outcome {
	msg := prefix + ": " + apperrors.UserMessage(err)
	kind, _ := apperrors.KindOf(err)
	c.note(slog.LevelError, msg, append(attrs, "kind", string(kind))...)
	return Outcome{Alert: msg, Failed: true}
}

func (c *Controller) reject(format string, args ...any) Outcome {
	err := apperrors.Validation(format, args...)
	c.logger.Info("input rejected", "reason", err.Error())
	return Outcome{Alert: apperrors.UserMessage(err), Failed: true}
}

// stamp returns a strictly increasing cache-busting value.
func (c *Controller) stamp() int64 {
	c.stampMu.Lock()
	defer c.stampMu.Unlock()
	v := c.now().UnixMilli()
	if v <= c.lastStamp {
		v = c.lastStamp + 1
	}
	c.lastStamp = v
	return v
}

func (c *Controller) openBrowser(ctx context.Context) Outcome {
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		s.Browser = s.Browser.Show()
		return s
	})
	return c.browseTo(ctx, "")
}

func (c *Controller) browseTo(ctx context.Context, path string) Outcome {
	listing, err := c.api.BrowseFolders(ctx, path)
	if err != nil {
		return c.fail("Error browsing folders", err, "path", path)
	}
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		s.Browser = s.Browser.Listed(listing)
		return s
	})
	c.logger.Debug("folder listed", "path", listing.CurrentPath, "entries", len(listing.Items))
	return Outcome{}
}

func (c *Controller) confirmFolder() Outcome {
	var committed string
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		var ok bool
		if s.Browser, ok = s.Browser.Confirm(); ok {
			committed = s.Browser.Committed
		}
		return s
	})
	if committed == "" {
		return Outcome{}
	}
	c.note(slog.LevelInfo, "Selected folder: "+committed, "path", committed)
	if c.onCommit != nil {
		c.onCommit(committed)
	}
	return Outcome{}
}

func (c *Controller) loadFolder(ctx context.Context) Outcome {
	var folder string
	var gen uint64
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		folder = s.Browser.Committed
		if folder == "" {
			return s
		}
		s.Session = s.Session.Reset()
		s.Form = state.Form{Sets: s.Form.Sets}
		s.Selector = s.Selector.Cancel()
		s.Loading = true
		gen = s.Session.Generation
		return s
	})
	if folder == "" {
		return c.reject("Please select a folder first")
	}

	c.note(slog.LevelInfo, "Loading folder: "+folder, "path", folder)
	count, err := c.api.LoadFolder(ctx, folder)

	var stale bool
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		if s.Session.Generation != gen {
			stale = true
			return s
		}
		s.Loading = false
		if err == nil {
			s.Session = s.Session.Loaded(folder, count)
		}
		return s
	})
	if stale {
		c.logger.Info("discarded superseded folder load", "path", folder)
		return Outcome{}
	}
	if err != nil {
		return c.fail("Error loading folder", err, "path", folder)
	}
	if count == 0 {
		c.note(slog.LevelWarn, "No supported images found in "+folder, "path", folder)
		return Outcome{Alert: "No supported images found in the selected folder."}
	}
	c.note(slog.LevelInfo, fmt.Sprintf("Loaded %d images", count), "path", folder, "count", count)
	return c.loadCurrent(ctx)
}

func (c *Controller) navigate(ctx context.Context, index int) Outcome {
	var moved bool
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		if !s.NavEnabled() {
			return s
		}
		s.Session, moved = s.Session.MoveTo(index)
		return s
	})
	if !moved {
		return Outcome{}
	}
	return c.loadCurrent(ctx)
}

func (c *Controller) loadCurrent(ctx context.Context) Outcome {
	var index int
	var gen uint64
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		s.Session, gen = s.Session.BeginLoad()
		index = s.Session.Index
		return s
	})

	info, err := c.api.FetchImage(ctx, index)
	if err != nil {
		c.store.Apply(func(s state.Snapshot) state.Snapshot {
			var cleared bool
			if s.Session, cleared = s.Session.LoadFailed(index, gen); cleared {
				s.Form = state.Form{Sets: s.Form.Sets}
				s.Selector = s.Selector.Cancel()
			}
			return s
		})
		return c.fail("Error loading image", err, "index", index)
	}

	var alert string
	var pic image.Image
	data, err := c.api.FetchImageFile(ctx, index, c.stamp())
	if err == nil {
		pic, err = c.decode(data)
		if err != nil {
			err = apperrors.New(apperrors.KindServer, "decode image: "+err.Error(), err)
		}
	}
	if err != nil {
		alert = c.fail("Error loading image file", err, "index", index).Alert
	}

	var shown bool
	var metadata trapapi.Metadata
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		s.Session, shown = s.Session.ShowImage(index, gen, info, pic)
		if shown {
			metadata = s.Session.Metadata
			s.Form = state.Render(metadata, s.Form.Sets)
		}
		return s
	})
	if !shown {
		c.logger.Info("discarded stale image", "index", index, "generation", gen)
		return Outcome{}
	}
	c.logger.Info("image loaded", "index", index, "filename", info.Filename, "fields", len(metadata))

	out := Outcome{Alert: alert, Failed: alert != ""}
	for _, name := range state.FooterFields {
		if !metadata.Has(name) {
			out.Next = append(out.Next, ExtractFooter{Index: index, Generation: gen})
			break
		}
	}
	return out
}

func (c *Controller) extractFooter(ctx context.Context, in ExtractFooter) Outcome {
	if !c.Snapshot().Session.Current(in.Index, in.Generation) {
		c.logger.Info("skipped footer extraction for stale image", "index", in.Index, "generation", in.Generation)
		return Outcome{}
	}
	c.note(slog.LevelDebug, fmt.Sprintf("Extracting footer for image %d", in.Index+1), "index", in.Index)

	footer, err := c.api.ExtractFooter(ctx, in.Index)
	if err != nil {
		c.note(slog.LevelWarn, "Footer extraction failed: "+apperrors.UserMessage(err), "index", in.Index)
		return Outcome{}
	}
	c.applyFooter(in.Index, in.Generation, footer)
	return Outcome{}
}

// applyFooter writes footer values into the form of (index, gen) and reports
// the fields it filled. It never raises an alert.
func (c *Controller) applyFooter(index int, gen uint64, footer trapapi.Metadata) []string {
	if len(footer) == 0 {
		c.note(slog.LevelInfo, "No footer data could be extracted", "index", index)
		return nil
	}

	var stale bool
	var applied []string
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		if !s.Session.Current(index, gen) {
			stale = true
			return s
		}
		s.Form, applied = s.Form.ApplyFooter(footer)
		return s
	})
	if stale {
		c.logger.Info("discarded stale footer", "index", index, "generation", gen)
		return nil
	}

	if dt, ok := footer.Get("DateTime"); ok && strings.TrimSpace(dt) != "" {
		c.note(slog.LevelInfo, "Footer DateTime: "+dt, "index", index)
	}
	if len(applied) == 0 {
		c.note(slog.LevelWarn, "Footer data found but no matching form fields", "index", index)
		return nil
	}
	parts := make([]string, len(applied))
	for i, name := range applied {
		v, _ := footer.Get(name)
		parts[i] = name + "=" + v
	}
	c.note(slog.LevelInfo, "Footer applied: "+strings.Join(parts, ", "), "index", index, "fields", applied)
	return applied
}

func (c *Controller) parseManualFooter(ctx context.Context, text string) Outcome {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.reject("Please enter the footer text")
	}
	snap := c.Snapshot()
	if !snap.Session.HasPicture {
		return c.reject("No image loaded")
	}
	index, gen := snap.Session.Index, snap.Session.Generation

	parsed, err := c.api.ParseManualFooter(ctx, text)
	if err != nil {
		return c.fail("Error parsing footer", err, "index", index)
	}
	footer := splitTemperature(parsed)
	applied := c.applyFooter(index, gen, footer)
	if len(applied) == 0 {
		return Outcome{Alert: "No footer fields could be recognized in the text."}
	}
	return Outcome{Alert: fmt.Sprintf("Applied footer fields: %s", strings.Join(applied, ", "))}
}

func (c *Controller) addField(name, value string) Outcome {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.reject("Field name cannot be empty")
	}
	var out Outcome
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		switch {
		case s.Session.Metadata.Has(name) || s.Form.Has(name):
			out = c.reject("Field %q already exists", name)
		case s.Form.Sets.IsReadOnly(name):
			out = c.reject("Field %q is read-only", name)
		default:
			s.Form = s.Form.Add(name, value)
			s.Session.Metadata = s.Session.Metadata.With(name, value)
			s = s.Log(c.now(), "Added field "+name)
		}
		return s
	})
	return out
}

func (c *Controller) deleteField(name string) Outcome {
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		var ok bool
		if s.Form, ok = s.Form.Delete(name); ok {
			s.Session.Metadata = s.Session.Metadata.Without(name)
			s = s.Log(c.now(), "Deleted field "+name)
		}
		return s
	})
	return Outcome{}
}

func (c *Controller) save(ctx context.Context) Outcome {
	var index int
	var payload trapapi.Metadata
	var ok, unbound bool
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		if !s.Session.HasImages() || s.Saving {
			return s
		}
		if !s.Session.Bound() {
			unbound = true
			return s
		}
		ok = true
		index = s.Session.Index
		payload = s.Form.Payload()
		s.Saving = true
		return s
	})
	if unbound {
		return c.reject("The current image has not loaded; nothing to save")
	}
	if !ok {
		return Outcome{}
	}

	msg, err := c.api.SaveMetadata(ctx, index, payload)
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		s.Saving = false
		if err == nil {
			s.SavedAt = c.now()
		}
		return s
	})
	if err != nil {
		return c.fail("Error saving metadata", err, "index", index)
	}
	if msg == "" {
		msg = "Metadata saved"
	}
	c.note(slog.LevelInfo, msg, "index", index, "fields", len(payload))
	return Outcome{Saved: true}
}

func (c *Controller) toggleIdentify() Outcome {
	var phase state.Phase
	var changed bool
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		if !s.Selector.Active() && !s.CanIdentify() {
			return s
		}
		s.Selector = s.Selector.Toggle()
		phase = s.Selector.Phase
		changed = true
		return s
	})
	if !changed {
		return Outcome{}
	}
	if phase == state.Selecting {
		c.note(slog.LevelDebug, "Identify mode: drag a box around the animal")
	} else {
		c.note(slog.LevelDebug, "Identify mode off")
	}
	return Outcome{}
}

func (c *Controller) pointerUp(in PointerUp) Outcome {
	var out Outcome
	var wasDragging bool
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		if s.Selector.Phase != state.Dragging {
			return s
		}
		wasDragging = true
		var sel trapapi.Selection
		var ok bool
		s.Selector, sel, ok = s.Selector.Release(in.Point, in.Geometry, c.minSelection)
		if !ok {
			return s.Log(c.now(), "Selection too small, ignored")
		}
		s.Identifying = true
		out.Next = []Intent{Identify{
			Index:      s.Session.Index,
			Generation: s.Session.Generation,
			Selection:  sel,
		}}
		return s
	})
	if wasDragging && len(out.Next) > 0 {
		sel := out.Next[0].(Identify).Selection
		c.logger.Info("selection committed",
			"x", sel.X, "y", sel.Y, "width", sel.Width, "height", sel.Height)
	}
	return out
}

func (c *Controller) identify(ctx context.Context, in Identify) Outcome {
	defer c.store.Apply(func(s state.Snapshot) state.Snapshot {
		s.Identifying = false
		s.Selector = s.Selector.Cancel()
		return s
	})

	c.note(slog.LevelInfo, fmt.Sprintf("Identifying species in %.0fx%.0f region", in.Selection.Width, in.Selection.Height), "index", in.Index)
	result, err := c.api.IdentifySpecies(ctx, in.Index, in.Selection)
	if err != nil {
		return c.fail("Identification failed", err, "index", in.Index)
	}

	var stale bool
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		if !s.Session.Current(in.Index, in.Generation) {
			stale = true
			return s
		}
		s.Form = s.Form.ApplyIdentification(result)
		return s
	})
	if stale {
		c.logger.Info("discarded stale identification", "index", in.Index)
		return Outcome{}
	}
	summary := identificationSummary(result)
	c.note(slog.LevelInfo, "Identified: "+strings.ReplaceAll(summary, "\n", "; "), "index", in.Index)
	return Outcome{Alert: summary, Identified: true}
}

func identificationSummary(id trapapi.Identification) string {
	species := strings.TrimSpace(id.Species)
	if species == "" {
		species = "Unknown"
	}
	lines := []string{"Species: " + species}
	if name := strings.TrimSpace(id.ScientificName); name != "" {
		lines[0] += " (" + name + ")"
	}
	if id.Count > 0 {
		lines = append(lines, fmt.Sprintf("Count: %d", id.Count))
	}
	if conf := strings.TrimSpace(string(id.Confidence)); conf != "" {
		lines = append(lines, "Confidence: "+conf)
	}
	if desc := strings.TrimSpace(id.Description); desc != "" {
		lines = append(lines, desc)
	}
	return strings.Join(lines, "\n")
}
