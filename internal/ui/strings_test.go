package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"Kudu", 10, "Kudu"},
		{"  Kudu  ", 10, "Kudu"},
		{"Tragelaphus strepsiceros", 10, "Tragela..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/data/traps/site-a/2024", 11)
	if got != "/data…/2024" {
		t.Fatalf("truncateMiddle = %q, want %q", got, "/data…/2024")
	}
	if got := truncateMiddle("/short", 20); got != "/short" {
		t.Fatalf("truncateMiddle short = %q", got)
	}
}

func TestFormatSize(t *testing.T) {
	cases := map[float64]string{
		0:    "",
		0.05: "51 KB",
		2.44: "2.4 MB",
	}
	for in, want := range cases {
		if got := formatSize(in); got != want {
			t.Fatalf("formatSize(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSingleLine(t *testing.T) {
	if got := singleLine("grazing\nnear  water"); got != "grazing ⏎ near water" {
		t.Fatalf("singleLine = %q", got)
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "field", "fields"); got != "1 field" {
		t.Fatalf("pluralize(1) = %q", got)
	}
	if got := pluralize(3, "field", "fields"); got != "3 fields" {
		t.Fatalf("pluralize(3) = %q", got)
	}
}
