package state

import (
	"strconv"
	"strings"

	"github.com/five82/trapmeta/internal/trapapi"
)

// Field names the form fills from footer data and identification results.
const (
	FieldSpecies        = "Species"
	FieldCount          = "Count"
	FieldNotes          = "Notes"
	FieldTemperatureC   = "Temperature_C"
	FieldTemperatureF   = "Temperature_F"
	FieldCameraID       = "Camera_ID"
	FieldConfidence     = "Confidence"
	FieldScientificName = "Scientific_Name"
	FieldHabitat        = "Habitat"

	unknownSpecies = "Unknown"
)

// FooterFields are the keys footer extraction can fill.
var FooterFields = []string{FieldTemperatureC, FieldTemperatureF, FieldCameraID}

// FieldSets holds the configured common and read-only field names.
type FieldSets struct {
	Common   []string
	ReadOnly []string
}

// IsReadOnly matches name against the read-only list ignoring case.
func (f FieldSets) IsReadOnly(name string) bool {
	for _, ro := range f.ReadOnly {
		if strings.EqualFold(ro, name) {
			return true
		}
	}
	return false
}

// IsCommon matches name against the common list exactly.
func (f FieldSets) IsCommon(name string) bool {
	for _, c := range f.Common {
		if c == name {
			return true
		}
	}
	return false
}

// Field is one row of the metadata form.
type Field struct {
	Name     string
	Value    string
	ReadOnly bool
	Common   bool
}

// Deletable reports whether the row offers a delete control.
func (f Field) Deletable() bool {
	return !f.ReadOnly && !f.Common
}

// Form is the rendered, editable view of an image's metadata.
type Form struct {
	Fields []Field
	Sets   FieldSets
}

// Render builds the form for metadata: one row per key in order, then an
// empty row for every common field the metadata lacks.
func Render(metadata trapapi.Metadata, sets FieldSets) Form {
	form := Form{Sets: sets}
	for _, entry := range metadata {
		form.Fields = append(form.Fields, form.newField(entry.Key, entry.Value))
	}
	for _, name := range sets.Common {
		if !metadata.Has(name) {
			form.Fields = append(form.Fields, form.newField(name, ""))
		}
	}
	return form
}

func (f Form) newField(name, value string) Field {
	return Field{
		Name:     name,
		Value:    value,
		ReadOnly: f.Sets.IsReadOnly(name),
		Common:   f.Sets.IsCommon(name),
	}
}

func (f Form) clone() Form {
	fields := make([]Field, len(f.Fields))
	copy(fields, f.Fields)
	f.Fields = fields
	return f
}

// Index returns the row position of name or -1.
func (f Form) Index(name string) int {
	for i, field := range f.Fields {
		if field.Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether a row named name exists.
func (f Form) Has(name string) bool {
	return f.Index(name) >= 0
}

// Value returns the current value of name.
func (f Form) Value(name string) (string, bool) {
	i := f.Index(name)
	if i < 0 {
		return "", false
	}
	return f.Fields[i].Value, true
}

// SetValue edits an existing writable row.
func (f Form) SetValue(name, value string) (Form, bool) {
	i := f.Index(name)
	if i < 0 || f.Fields[i].ReadOnly {
		return f, false
	}
	next := f.clone()
	next.Fields[i].Value = value
	return next, true
}

// Put sets name to value, appending a writable row when it is missing.
func (f Form) Put(name, value string) Form {
	if next, ok := f.SetValue(name, value); ok {
		return next
	}
	if f.Has(name) {
		return f
	}
	next := f.clone()
	field := next.newField(name, value)
	field.ReadOnly = false
	next.Fields = append(next.Fields, field)
	return next
}

// Add appends a new writable row. Callers validate the name first.
func (f Form) Add(name, value string) Form {
	next := f.clone()
	field := next.newField(name, value)
	field.ReadOnly = false
	next.Fields = append(next.Fields, field)
	return next
}

// Delete removes a deletable row.
func (f Form) Delete(name string) (Form, bool) {
	i := f.Index(name)
	if i < 0 || !f.Fields[i].Deletable() {
		return f, false
	}
	next := f.clone()
	next.Fields = append(next.Fields[:i], next.Fields[i+1:]...)
	return next, true
}

// Payload collects the writable rows for saving. Values are trimmed and rows
// whose trimmed value is empty are left out entirely.
func (f Form) Payload() trapapi.Metadata {
	out := trapapi.Metadata{}
	for _, field := range f.Fields {
		if field.ReadOnly {
			continue
		}
		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}
		out = out.With(field.Name, value)
	}
	return out
}

// ApplyFooter overwrites the footer rows present in both footer and the form.
// It returns the names it wrote, in FooterFields order.
func (f Form) ApplyFooter(footer trapapi.Metadata) (Form, []string) {
	var applied []string
	next := f
	for _, name := range FooterFields {
		value, ok := footer.Get(name)
		if !ok {
			continue
		}
		var set bool
		if next, set = next.SetValue(name, value); set {
			applied = append(applied, name)
		}
	}
	return next, applied
}

// ApplyIdentification merges an identification result into the form.
func (f Form) ApplyIdentification(id trapapi.Identification) Form {
	next := f
	species := strings.TrimSpace(id.Species)
	if species != "" && species != unknownSpecies {
		next = next.Put(FieldSpecies, species)
	}
	if id.Count > 0 {
		next = next.Put(FieldCount, strconv.Itoa(int(id.Count)))
	}
	if v := strings.TrimSpace(string(id.Confidence)); v != "" {
		next = next.Put(FieldConfidence, v)
	}
	if v := strings.TrimSpace(id.ScientificName); v != "" {
		next = next.Put(FieldScientificName, v)
	}
	if v := strings.TrimSpace(id.Habitat); v != "" {
		next = next.Put(FieldHabitat, v)
	}
	if desc := strings.TrimSpace(id.Description); desc != "" {
		notes, _ := next.Value(FieldNotes)
		if strings.TrimSpace(notes) == "" {
			notes = desc
		} else {
			notes = notes + "\n" + desc
		}
		next = next.Put(FieldNotes, notes)
	}
	return next
}
