// Package comic defines the comic dataset: ordered, immutable entries with
// their media references and pass-through metadata.
package comic

import (
	"fmt"
	"strings"
)

// Category classifies an entry for filtering.
type Category string

const (
	// Storyline entries belong to the main sequence.
	Storyline Category = "storyline"
	// Extra entries are bonus material outside the storyline.
	Extra Category = "extra"
)

// AllCategories returns the supported categories in display order.
func AllCategories() []Category {
	return []Category{Storyline, Extra}
}

// ParseCategory converts a string to a Category. Empty input is a storyline.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case "":
		return Storyline, nil
	case "extras":
		return Extra, nil
	}
	for _, candidate := range AllCategories() {
		if candidate == c {
			return candidate, nil
		}
	}
	return Storyline, fmt.Errorf("comic: unknown category %q", raw)
}

// Metadata is carried through to renderers untouched.
type Metadata struct {
	Title     string   `json:"title,omitempty" yaml:"title,omitempty"`
	Date      string   `json:"date,omitempty" yaml:"date,omitempty"`
	Episode   string   `json:"episode,omitempty" yaml:"episode,omitempty"`
	HoverText []string `json:"hovertext,omitempty" yaml:"hovertext,omitempty"`
	BlogText  string   `json:"blogtext,omitempty" yaml:"blogtext,omitempty"`
	Alternate []string `json:"alternate,omitempty" yaml:"alternate,omitempty"`
	URL       string   `json:"url,omitempty" yaml:"url,omitempty"`
}

// Entry is one addressable comic in the dataset.
type Entry struct {
	Index     int      `json:"index"`
	Category  Category `json:"category"`
	HasMedia  bool     `json:"hasMedia"`
	MediaRefs []string `json:"mediaRefs,omitempty"`
	Meta      Metadata `json:"meta"`
}

// IsStoryline reports whether the entry is part of the storyline.
func (e Entry) IsStoryline() bool {
	return e.Category == Storyline
}

// HoverFor returns the hover text paired with the i-th media ref.
func (e Entry) HoverFor(i int) string {
	if i < 0 || i >= len(e.Meta.HoverText) {
		return ""
	}
	return e.Meta.HoverText[i]
}

// AlternateFor returns the alternate link paired with the i-th media ref.
func (e Entry) AlternateFor(i int) string {
	if i < 0 || i >= len(e.Meta.Alternate) {
		return ""
	}
	return e.Meta.Alternate[i]
}

func (e Entry) String() string {
	return fmt.Sprintf("#%d %s (%s)", e.Index, e.Meta.Title, e.Category)
}

// SplitJoined splits a "||" joined field. An empty field yields no parts.
func SplitJoined(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, joinSeparator)
}

const joinSeparator = "||"
