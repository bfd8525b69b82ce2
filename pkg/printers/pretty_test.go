package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/viewer"
)

func init() {
	color.NoColor = true
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{
		Out:    &buf,
		Filter: func() viewer.Filter { return viewer.NewFilter(true, false) },
	}
	pp.Render(comic.Entry{
		Index:     3,
		Category:  comic.Storyline,
		HasMedia:  true,
		MediaRefs: []string{"a.png", "b.swf?640,480"},
		Meta: comic.Metadata{
			Title:     "Pilot",
			Date:      "2004-01-01",
			HoverText: []string{"hello"},
			BlogText:  "<p>Blog <b>post</b></p>",
			URL:       "https://example.com/3",
		},
	}, true, false)

	got := buf.String()
	for _, want := range []string{
		"#3", "2004-01-01 - Pilot", "storyline, first", "a.png", `"hello"`,
		"b.swf [flash 640x480]", "Blog post", "https://example.com/3", "showing: storyline",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "last") {
		t.Fatalf("entry is not last:\n%s", got)
	}
}

func TestRenderNoMedia(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, TitleFormat: "%title%"}
	pp.Render(comic.Entry{Index: 0, Category: comic.Extra, Meta: comic.Metadata{Title: "Sketch"}}, true, true)
	got := buf.String()
	for _, want := range []string{"Sketch", "extra, first, last", "(no media)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestList(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.List([]comic.Entry{
		{Index: 0, Category: comic.Storyline, HasMedia: true, Meta: comic.Metadata{Episode: "1", Title: "One"}},
		{Index: 1, Category: comic.Extra, Meta: comic.Metadata{Episode: "x", Title: "Bonus"}},
	}, 1, viewer.NewFilter(true, false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 rows, got %q", buf.String())
	}
	if strings.HasPrefix(lines[0], "›") || !strings.Contains(lines[0], "1 One") {
		t.Fatalf("row 0 = %q", lines[0])
	}
	for _, want := range []string{"›", "#1", "○", "x Bonus", "no media"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("row 1 missing %q: %q", want, lines[1])
		}
	}

	buf.Reset()
	pp.List(nil, 0, viewer.DefaultFilter())
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("empty list output = %q", buf.String())
	}
}
