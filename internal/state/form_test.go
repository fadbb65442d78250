package state

import (
	"testing"

	"github.com/five82/trapmeta/internal/trapapi"
)

var testSets = FieldSets{
	Common:   []string{"Species", "Count", "Behavior", "Weather", "Temperature_C", "Temperature_F", "Location", "Camera_ID", "Researcher", "Notes"},
	ReadOnly: []string{"filename", "size_mb", "dimensions"},
}

func TestRender_CommonFieldsAndDeleteControls(t *testing.T) {
	form := Render(trapapi.Metadata{{Key: "Species", Value: "Kudu"}}, testSets)

	if len(form.Fields) != len(testSets.Common) {
		t.Fatalf("got %d fields, want %d", len(form.Fields), len(testSets.Common))
	}
	species := 0
	for _, f := range form.Fields {
		if f.Deletable() {
			t.Fatalf("field %q should not be deletable", f.Name)
		}
		if f.ReadOnly {
			t.Fatalf("field %q should not be read-only", f.Name)
		}
		if f.Name == "Species" {
			species++
			if f.Value != "Kudu" {
				t.Fatalf("Species = %q, want Kudu", f.Value)
			}
		} else if f.Value != "" {
			t.Fatalf("field %q = %q, want empty", f.Name, f.Value)
		}
	}
	if species != 1 {
		t.Fatalf("Species rendered %d times, want 1", species)
	}
}

func TestRender_ReadOnlyAndCustom(t *testing.T) {
	form := Render(trapapi.Metadata{
		{Key: "FileName", Value: "a.jpg"},
		{Key: "Trail", Value: "north"},
	}, testSets)

	if !form.Fields[0].ReadOnly || form.Fields[0].Deletable() {
		t.Fatalf("FileName should be read-only without delete: %#v", form.Fields[0])
	}
	if form.Fields[1].ReadOnly || !form.Fields[1].Deletable() {
		t.Fatalf("Trail should be a deletable custom field: %#v", form.Fields[1])
	}
	if _, ok := form.SetValue("FileName", "b.jpg"); ok {
		t.Fatalf("read-only field must not be editable")
	}
}

func TestForm_PayloadTrimsAndDropsEmpty(t *testing.T) {
	form := Render(trapapi.Metadata{{Key: "filename", Value: "a.jpg"}}, FieldSets{
		Common:   []string{"Species", "Notes"},
		ReadOnly: testSets.ReadOnly,
	})
	form, _ = form.SetValue("Species", "Kudu")
	form, _ = form.SetValue("Notes", "  ")

	got := form.Payload()
	if len(got) != 1 || got[0] != (trapapi.Field{Key: "Species", Value: "Kudu"}) {
		t.Fatalf("Payload() = %#v, want only Species", got)
	}

	form, _ = form.SetValue("Species", "  Eland ")
	if v, _ := form.Payload().Get("Species"); v != "Eland" {
		t.Fatalf("value not trimmed: %q", v)
	}
}

func TestForm_AddAndDelete(t *testing.T) {
	form := Render(nil, testSets)
	form = form.Add("Trail", "north")
	i := form.Index("Trail")
	if i < 0 || !form.Fields[i].Deletable() || form.Fields[i].Value != "north" {
		t.Fatalf("Trail not added as deletable: %#v", form.Fields)
	}

	if _, ok := form.Delete("Species"); ok {
		t.Fatalf("common field must not be deletable")
	}
	next, ok := form.Delete("Trail")
	if !ok || next.Has("Trail") {
		t.Fatalf("Delete(Trail) = %v", ok)
	}
	if !form.Has("Trail") {
		t.Fatalf("Delete mutated the original form")
	}
}

func TestForm_ApplyFooter(t *testing.T) {
	form := Render(trapapi.Metadata{{Key: "Temperature_C", Value: "10"}}, FieldSets{
		Common: []string{"Temperature_C", "Camera_ID"},
	})
	footer := trapapi.Metadata{
		{Key: "DateTime", Value: "2024:01:01 10:00:00"},
		{Key: "Temperature_F", Value: "73"},
		{Key: "Temperature_C", Value: "23"},
		{Key: "Camera_ID", Value: "CT14"},
	}
	next, applied := form.ApplyFooter(footer)
	if len(applied) != 2 || applied[0] != "Temperature_C" || applied[1] != "Camera_ID" {
		t.Fatalf("applied = %v", applied)
	}
	if v, _ := next.Value("Temperature_C"); v != "23" {
		t.Fatalf("Temperature_C = %q", v)
	}
	if next.Has("Temperature_F") || next.Has("DateTime") {
		t.Fatalf("footer must not add rows: %#v", next.Fields)
	}
}

func TestForm_ApplyIdentification(t *testing.T) {
	base := Render(trapapi.Metadata{{Key: "Species", Value: "Kudu"}, {Key: "Notes", Value: "near water"}}, testSets)

	tests := []struct {
		name  string
		id    trapapi.Identification
		check func(t *testing.T, f Form)
	}{
		{
			name: "unknown species and zero count leave fields",
			id:   trapapi.Identification{Species: "Unknown", Count: 0},
			check: func(t *testing.T, f Form) {
				if v, _ := f.Value("Species"); v != "Kudu" {
					t.Fatalf("Species = %q, want Kudu", v)
				}
				if v, _ := f.Value("Count"); v != "" {
					t.Fatalf("Count = %q, want empty", v)
				}
				if f.Has("Confidence") {
					t.Fatalf("Confidence should not be added")
				}
			},
		},
		{
			name: "full result",
			id: trapapi.Identification{
				Species: "Eland", Count: 3, Confidence: "High",
				ScientificName: "Taurotragus oryx", Habitat: "savanna", Description: "two adults",
			},
			check: func(t *testing.T, f Form) {
				want := map[string]string{
					"Species":         "Eland",
					"Count":           "3",
					"Confidence":      "High",
					"Scientific_Name": "Taurotragus oryx",
					"Habitat":         "savanna",
					"Notes":           "near water\ntwo adults",
				}
				for name, value := range want {
					if got, _ := f.Value(name); got != value {
						t.Fatalf("%s = %q, want %q", name, got, value)
					}
				}
				i := f.Index("Habitat")
				if !f.Fields[i].Deletable() {
					t.Fatalf("Habitat should be a custom field")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, base.ApplyIdentification(tt.id))
		})
	}
}

func TestForm_ApplyIdentificationEmptyNotes(t *testing.T) {
	form := Render(nil, testSets).ApplyIdentification(trapapi.Identification{Description: "one calf"})
	if v, _ := form.Value("Notes"); v != "one calf" {
		t.Fatalf("Notes = %q, want one calf", v)
	}
}
