package trapapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one metadata entry as returned by the server.
type Field struct {
	Key   string
	Value string
}

// Metadata is a field-name to value mapping that keeps the order in which the
// server listed the keys. Non-string JSON values are kept as their literal text.
type Metadata []Field

// UnmarshalJSON decodes a JSON object while preserving key order. A repeated
// key keeps its first position and its last value.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*m = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("metadata: expected object, got %v", tok)
	}
	var out Metadata
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("metadata: expected key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("metadata %q: %w", key, err)
		}
		value, err := rawText(raw)
		if err != nil {
			return fmt.Errorf("metadata %q: %w", key, err)
		}
		out = out.With(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalJSON encodes the fields as a JSON object in order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits an ordered mapping so exports list fields as the server did.
func (m Metadata) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
		)
	}
	return node, nil
}

// Get returns the value stored under key.
func (m Metadata) Get(key string) (string, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether key is present. Keys are case-sensitive.
func (m Metadata) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// With returns a copy with key set to value, appended when new.
func (m Metadata) With(key, value string) Metadata {
	out := make(Metadata, len(m), len(m)+1)
	copy(out, m)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Field{Key: key, Value: value})
}

// Without returns a copy with key removed.
func (m Metadata) Without(key string) Metadata {
	out := make(Metadata, 0, len(m))
	for _, f := range m {
		if f.Key != key {
			out = append(out, f)
		}
	}
	return out
}

// Keys lists the field names in order.
func (m Metadata) Keys() []string {
	keys := make([]string, len(m))
	for i, f := range m {
		keys[i] = f.Key
	}
	return keys
}

func rawText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return "", nil
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}

// Text accepts any JSON scalar and keeps it as a string. The identification
// service returns confidence as either "High" or 0.92 depending on the model.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := rawText(data)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// Count accepts a JSON number or a numeric string. Anything else decodes as 0.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	s, err := rawText(data)
	if err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*c = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*c = Count(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*c = Count(int(f))
		return nil
	}
	*c = 0
	return nil
}

// Entry types reported by /api/browse_folders.
const (
	EntryParent    = "parent"
	EntryDirectory = "directory"
	EntryFile      = "file"
)

// BrowseEntry is one row of a folder listing.
type BrowseEntry struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Type       string `json:"type"`
	IsDir      bool   `json:"is_dir"`
	ImageCount *int   `json:"image_count,omitempty"`
}

// Kind normalizes Type; servers send either "dir" or "directory".
func (e BrowseEntry) Kind() string {
	switch strings.ToLower(strings.TrimSpace(e.Type)) {
	case EntryParent:
		return EntryParent
	case "dir", EntryDirectory:
		return EntryDirectory
	case EntryFile:
		return EntryFile
	}
	if e.IsDir {
		return EntryDirectory
	}
	return EntryFile
}

// CountLabel renders the optional image count: "" when unknown, "empty" for 0.
func (e BrowseEntry) CountLabel() string {
	if e.ImageCount == nil {
		return ""
	}
	switch n := *e.ImageCount; n {
	case 0:
		return "empty"
	case 1:
		return "1 image"
	default:
		return fmt.Sprintf("%d images", n)
	}
}

// Listing mirrors /api/browse_folders.
type Listing struct {
	CurrentPath string        `json:"current_path"`
	Items       []BrowseEntry `json:"items"`
}

// ImageInfo mirrors /api/image/{index}.
type ImageInfo struct {
	Path       string   `json:"path"`
	Filename   string   `json:"filename"`
	Dimensions string   `json:"dimensions"`
	SizeMB     float64  `json:"size_mb"`
	Index      int      `json:"index"`
	Total      int      `json:"total"`
	Metadata   Metadata `json:"metadata"`
}

// Selection is a rectangle in natural image pixels.
type Selection struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Identification mirrors the identification object of /api/identify_species.
type Identification struct {
	Species        string `json:"species"`
	Count          Count  `json:"count"`
	Confidence     Text   `json:"confidence"`
	ScientificName string `json:"scientific_name"`
	Habitat        string `json:"habitat"`
	Description    string `json:"description"`
}

// envelope carries the status fields every JSON endpoint may include.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e envelope) failed() bool {
	return strings.TrimSpace(e.Error) != "" || (e.Success != nil && !*e.Success)
}

type loadFolderRequest struct {
	FolderPath string `json:"folder_path"`
}

type loadFolderResponse struct {
	Count int `json:"count"`
}

type saveMetadataRequest struct {
	Index    int      `json:"index"`
	Metadata Metadata `json:"metadata"`
}

type footerResponse struct {
	FooterMetadata Metadata `json:"footer_metadata"`
}

type identifyRequest struct {
	ImageIndex int       `json:"image_index"`
	Selection  Selection `json:"selection"`
}

type identifyResponse struct {
	Identification Identification `json:"identification"`
}

type manualFooterRequest struct {
	FooterText string `json:"footer_text"`
}
