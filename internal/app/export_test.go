package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/five82/trapmeta/internal/apperrors"
	"github.com/five82/trapmeta/internal/logging"
	"github.com/five82/trapmeta/internal/trapapi"
)

func newExportServer(t *testing.T) *trapapi.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/load_folder":
			_, _ = io.WriteString(w, `{"success":true,"count":3}`)
		case "/api/image/0":
			_, _ = io.WriteString(w, `{"filename":"a.jpg","dimensions":"4000 x 3000","size_mb":2.5,"index":0,"total":3,
				"metadata":{"Species":"Kudu","Count":"2","Behavior":"Grazing"}}`)
		case "/api/image/1":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":"Corrupt image"}`)
		case "/api/image/2":
			_, _ = io.WriteString(w, `{"filename":"c.jpg","dimensions":"4000 x 3000","size_mb":1.0,"index":2,"total":3,
				"metadata":{"Notes":"empty frame"}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := trapapi.NewClient(server.URL, 0, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestExport_WritesEveryImageInOrder(t *testing.T) {
	client := newExportServer(t)
	var out bytes.Buffer

	report, err := Export(context.Background(), client, logging.Discard(), "/data/cam1", &out)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if report.Total != 3 || len(report.Images) != 3 {
		t.Fatalf("report = %+v, want 3 images", report)
	}
	if report.Images[1].Error == "" {
		t.Fatal("failed image should carry its error")
	}
	if report.Images[2].Filename != "c.jpg" {
		t.Fatalf("image 2 filename = %q", report.Images[2].Filename)
	}

	text := out.String()
	species := strings.Index(text, "Species: Kudu")
	count := strings.Index(text, "Count: \"2\"")
	behavior := strings.Index(text, "Behavior: Grazing")
	if species < 0 || count < 0 || behavior < 0 {
		t.Fatalf("metadata missing from output:\n%s", text)
	}
	if !(species < count && count < behavior) {
		t.Fatalf("metadata not in server order:\n%s", text)
	}

	var decoded struct {
		Folder string `yaml:"folder"`
		Images []struct {
			Filename string            `yaml:"filename"`
			Metadata map[string]string `yaml:"metadata"`
		} `yaml:"images"`
	}
	if err := yaml.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Folder != "/data/cam1" {
		t.Fatalf("folder = %q", decoded.Folder)
	}
	if decoded.Images[0].Metadata["Species"] != "Kudu" {
		t.Fatalf("metadata = %v", decoded.Images[0].Metadata)
	}
}

func TestExport_RejectsBlankFolder(t *testing.T) {
	_, err := Export(context.Background(), nil, logging.Discard(), "  ", io.Discard)
	if !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestExport_LoadFailureStops(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":false,"error":"No images found"}`)
	}))
	t.Cleanup(server.Close)
	client, err := trapapi.NewClient(server.URL, 0, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	var out bytes.Buffer
	if _, err := Export(context.Background(), client, logging.Discard(), "/data/empty", &out); err == nil {
		t.Fatal("expected load failure")
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written on failure, got %q", out.String())
	}
}
