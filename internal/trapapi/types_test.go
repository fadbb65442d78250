package trapapi

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestMetadata_UnmarshalPreservesOrderAndStringifies(t *testing.T) {
	var m Metadata
	input := `{"Zeta":"z","Alpha":1.50,"Flag":true,"Empty":null,"Nested":{"a": 1},"Zeta":"again"}`
	if err := json.Unmarshal([]byte(input), &m); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	want := Metadata{
		{Key: "Zeta", Value: "again"},
		{Key: "Alpha", Value: "1.50"},
		{Key: "Flag", Value: "true"},
		{Key: "Empty", Value: ""},
		{Key: "Nested", Value: `{"a":1}`},
	}
	if len(m) != len(want) {
		t.Fatalf("got %d fields, want %d: %#v", len(m), len(want), m)
	}
	for i := range want {
		if m[i] != want[i] {
			t.Fatalf("field %d = %#v, want %#v", i, m[i], want[i])
		}
	}
}

func TestMetadata_UnmarshalRejectsNonObject(t *testing.T) {
	var m Metadata
	if err := json.Unmarshal([]byte(`["a"]`), &m); err == nil {
		t.Fatalf("expected error for array input")
	}
	if err := json.Unmarshal([]byte(`null`), &m); err != nil || m != nil {
		t.Fatalf("null should decode to nil, got %v, %v", m, err)
	}
}

func TestMetadata_MarshalKeepsOrder(t *testing.T) {
	m := Metadata{{Key: "b", Value: "2"}, {Key: "a", Value: `quote"d`}}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `{"b":"2","a":"quote\"d"}` {
		t.Fatalf("Marshal = %s", data)
	}
	empty, _ := json.Marshal(Metadata{})
	if string(empty) != `{}` {
		t.Fatalf("empty Marshal = %s", empty)
	}
}

func TestMetadata_WithWithoutDoNotMutate(t *testing.T) {
	base := Metadata{{Key: "Species", Value: "Kudu"}}
	updated := base.With("Species", "Eland").With("Count", "2")
	if v, _ := base.Get("Species"); v != "Kudu" {
		t.Fatalf("With mutated receiver: %v", base)
	}
	if got := strings.Join(updated.Keys(), ","); got != "Species,Count" {
		t.Fatalf("keys = %q", got)
	}
	removed := updated.Without("Species")
	if removed.Has("Species") || !updated.Has("Species") {
		t.Fatalf("Without result = %v, original = %v", removed, updated)
	}
}

func TestMetadata_YAMLOrder(t *testing.T) {
	m := Metadata{{Key: "Species", Value: "Kudu"}, {Key: "Count", Value: "3"}}
	out, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("yaml.Marshal returned error: %v", err)
	}
	if string(out) != "Species: Kudu\nCount: \"3\"\n" {
		t.Fatalf("yaml = %q", out)
	}
}

func TestCount_Lenient(t *testing.T) {
	cases := map[string]Count{`3`: 3, `"2"`: 2, `2.0`: 2, `"several"`: 0, `null`: 0}
	for in, want := range cases {
		var c Count
		if err := json.Unmarshal([]byte(in), &c); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", in, err)
		}
		if c != want {
			t.Fatalf("Count(%s) = %d, want %d", in, c, want)
		}
	}
}

func TestBrowseEntry_KindAndLabel(t *testing.T) {
	three := 3
	one := 1
	tests := []struct {
		entry BrowseEntry
		kind  string
		label string
	}{
		{BrowseEntry{Type: "dir", IsDir: true, ImageCount: &three}, EntryDirectory, "3 images"},
		{BrowseEntry{Type: "directory", IsDir: true, ImageCount: &one}, EntryDirectory, "1 image"},
		{BrowseEntry{Type: "parent", IsDir: true}, EntryParent, ""},
		{BrowseEntry{IsDir: true}, EntryDirectory, ""},
		{BrowseEntry{Type: "file"}, EntryFile, ""},
	}
	for _, tt := range tests {
		if got := tt.entry.Kind(); got != tt.kind {
			t.Fatalf("Kind(%#v) = %q, want %q", tt.entry, got, tt.kind)
		}
		if got := tt.entry.CountLabel(); got != tt.label {
			t.Fatalf("CountLabel(%#v) = %q, want %q", tt.entry, got, tt.label)
		}
	}
}
