package comic

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDB = `[
  {"filename": "one.png", "isstoryline": true, "title": "One", "date": "2010-09-05", "episode": 1,
   "hovertext": "first hover", "blogtext": "", "alternate": "", "url": "http://example.com/1"},
  {"filename": "", "isstoryline": false, "title": "Announcement", "date": "2010-09-06", "episode": "bonus",
   "blogtext": "<p>Hello</p>", "url": "http://example.com/2"},
  {"filename": "two-a.png||two-b.png", "title": "Two", "episode": 2,
   "hovertext": "a||b", "alternate": "hi/two-a.png||hi/two-b.png"}
]`

func TestParseJSON(t *testing.T) {
	ds, err := Parse([]byte(sampleDB), FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", ds.Len())
	}
	first := ds.At(0)
	if first.Category != Storyline || !first.HasMedia || first.Meta.Episode != "1" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	text := ds.At(1)
	if text.Category != Extra {
		t.Fatalf("expected extra, got %s", text.Category)
	}
	if text.HasMedia || len(text.MediaRefs) != 0 {
		t.Fatalf("expected text-only entry, got %v", text.MediaRefs)
	}
	multi := ds.At(2)
	if multi.Index != 2 {
		t.Fatalf("expected index 2, got %d", multi.Index)
	}
	if multi.Category != Storyline {
		t.Fatalf("missing isstoryline should default to storyline, got %s", multi.Category)
	}
	if len(multi.MediaRefs) != 2 || multi.MediaRefs[1] != "two-b.png" {
		t.Fatalf("unexpected refs: %v", multi.MediaRefs)
	}
	if multi.HoverFor(1) != "b" || multi.AlternateFor(0) != "hi/two-a.png" {
		t.Fatalf("unexpected per-image metadata: %+v", multi.Meta)
	}
	if multi.HoverFor(5) != "" {
		t.Fatalf("expected empty hover text past the end")
	}
	if ds.Count(Storyline) != 2 || ds.Count(Extra) != 1 {
		t.Fatalf("unexpected counts: %d storyline, %d extra", ds.Count(Storyline), ds.Count(Extra))
	}
}

func TestEmptyRefKeepsHoverAligned(t *testing.T) {
	db := `[{"filename": "a.png||||c.png", "hovertext": "ha||hb||hc", "alternate": "alt-a||alt-b||alt-c"}]`
	ds, err := Parse([]byte(db), FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	e := ds.At(0)
	if len(e.MediaRefs) != 2 || e.MediaRefs[1] != "c.png" {
		t.Fatalf("unexpected refs: %v", e.MediaRefs)
	}
	if e.HoverFor(0) != "ha" || e.HoverFor(1) != "hc" {
		t.Fatalf("hover text out of step with refs: %v", e.Meta.HoverText)
	}
	if e.AlternateFor(1) != "alt-c" {
		t.Fatalf("alternates out of step with refs: %v", e.Meta.Alternate)
	}
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]DataFormat{
		"comics.json": FormatJSON,
		"comics.yml":  FormatYAML,
		"comics.YAML": FormatYAML,
		"comics.js":   FormatScript,
		"comics":      FormatJSON,
	} {
		if got := FormatFor(path); got != want {
			t.Fatalf("FormatFor(%q) = %d, want %d", path, got, want)
		}
	}
}

func TestParseYAMLAndScript(t *testing.T) {
	y := `
- filename: a.png
  title: A
  episode: 7
- filename: b.swf?640,480
  isstoryline: false
  title: B
`
	ds, err := Parse([]byte(y), FormatYAML)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if ds.Len() != 2 || ds.At(0).Meta.Episode != "7" || ds.At(1).Category != Extra {
		t.Fatalf("unexpected yaml dataset: %+v", ds.Entries())
	}

	js := "var comicDB = " + sampleDB + ";\n"
	ds, err = Parse([]byte(js), FormatScript)
	if err != nil {
		t.Fatalf("parse script: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("expected 3 entries from script, got %d", ds.Len())
	}
}

func TestLoadDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.yaml")
	if err := os.WriteFile(path, []byte("- title: only\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.At(0).Meta.Title != "only" {
		t.Fatalf("unexpected title %q", ds.At(0).Meta.Title)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing dataset")
	}
}

func TestParseRejectsBadDatasets(t *testing.T) {
	if _, err := Parse([]byte(`[]`), FormatJSON); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	if _, err := Parse([]byte(`{"filename": "x"}`), FormatJSON); err == nil {
		t.Fatalf("expected error for non-array dataset")
	}
	if _, err := Parse([]byte(`not json`), FormatJSON); err == nil {
		t.Fatalf("expected error for invalid json")
	}
	_, err := Parse([]byte(`[{"filename": "a.swf"}, {"filename": "b.swf?1"}]`), FormatJSON)
	if err == nil {
		t.Fatalf("expected flash refs without dimensions to fail")
	}
	if !strings.Contains(err.Error(), "entry 0") || !strings.Contains(err.Error(), "entry 1") {
		t.Fatalf("expected both records reported, got %v", err)
	}
	if _, err := Parse([]byte(`[{"category": "bonus"}]`), FormatJSON); err == nil {
		t.Fatalf("expected unknown category to fail")
	}
}

func TestParseMedia(t *testing.T) {
	m, err := ParseMedia("movie.swf?640,480")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.Flash || m.Name != "movie.swf" || m.Width != 640 || m.Height != 480 {
		t.Fatalf("unexpected media: %+v", m)
	}
	m, err = ParseMedia("strip.png")
	if err != nil || m.Flash || m.Name != "strip.png" {
		t.Fatalf("unexpected image media: %+v (%v)", m, err)
	}
	if _, err := ParseMedia("movie.swf?wide,480"); err == nil {
		t.Fatalf("expected width error")
	}
	if _, err := ParseMedia(""); err == nil {
		t.Fatalf("expected empty ref error")
	}
}

func TestFormatAndPlainText(t *testing.T) {
	e := Entry{Meta: Metadata{Title: "Hello", Date: "2011-01-02", Episode: "12"}}
	if got := Format("%episode%: %title% (%date%)", e); got != "12: Hello (2011-01-02)" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := PlainText("<p>Hello <b>world</b></p><p>Second</p>"); got != "Hello world\n\nSecond" {
		t.Fatalf("unexpected text: %q", got)
	}
	if got := PlainText("a<br>b<script>alert(1)</script>"); got != "a\nb" {
		t.Fatalf("unexpected text: %q", got)
	}
	if got := PlainText(""); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestParseCategory(t *testing.T) {
	for raw, want := range map[string]Category{"": Storyline, "Storyline": Storyline, "extras": Extra, " extra ": Extra} {
		got, err := ParseCategory(raw)
		if err != nil || got != want {
			t.Fatalf("ParseCategory(%q) = %s, %v", raw, got, err)
		}
	}
	if _, err := ParseCategory("bonus"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestSingleCategoryDataset(t *testing.T) {
	ds, err := New([]Entry{{Category: Extra, Meta: Metadata{Title: "Only news"}}})
	if err != nil {
		t.Fatalf("an extras-only dataset is valid: %v", err)
	}
	if ds.Count(Storyline) != 0 || ds.Count(Extra) != 1 {
		t.Fatalf("unexpected counts: %d storyline, %d extra", ds.Count(Storyline), ds.Count(Extra))
	}
}
