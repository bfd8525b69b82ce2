package comic

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// DataFormat identifies a dataset file encoding.
type DataFormat int

const (
	// FormatJSON is a JSON array of records (resource/db.json).
	FormatJSON DataFormat = iota
	// FormatYAML is a YAML sequence of records.
	FormatYAML
	// FormatScript is a JavaScript file assigning the record array to a
	// variable, e.g. `var comicDB = [...];`.
	FormatScript
)

// FormatFor guesses the format from a file extension.
func FormatFor(path string) DataFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".js":
		return FormatScript
	default:
		return FormatJSON
	}
}

// Load reads and validates the dataset at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("comic: read dataset: %w", err)
	}
	return Parse(data, FormatFor(path))
}

// Parse decodes and validates a dataset.
func Parse(data []byte, f DataFormat) (*Dataset, error) {
	var (
		entries []Entry
		err     error
	)
	switch f {
	case FormatYAML:
		entries, err = parseYAML(data)
	case FormatScript:
		entries, err = parseScript(data)
	default:
		entries, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}
	return New(entries)
}

// record mirrors the scraper's db.json fields.
type record struct {
	Filename    string `yaml:"filename"`
	IsStoryline *bool  `yaml:"isstoryline"`
	Category    string `yaml:"category"`
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Episode     string `yaml:"episode"`
	HoverText   string `yaml:"hovertext"`
	BlogText    string `yaml:"blogtext"`
	Alternate   string `yaml:"alternate"`
	URL         string `yaml:"url"`
}

func (r record) entry() (Entry, error) {
	cat := Storyline
	switch {
	case r.Category != "":
		c, err := ParseCategory(r.Category)
		if err != nil {
			return Entry{}, err
		}
		cat = c
	case r.IsStoryline != nil && !*r.IsStoryline:
		cat = Extra
	}
	return Entry{
		Category:  cat,
		MediaRefs: SplitJoined(r.Filename),
		Meta: Metadata{
			Title:     r.Title,
			Date:      r.Date,
			Episode:   r.Episode,
			HoverText: SplitJoined(r.HoverText),
			BlogText:  r.BlogText,
			Alternate: SplitJoined(r.Alternate),
			URL:       r.URL,
		},
	}, nil
}

// parseJSON reads records with gjson; scraped databases are loosely typed
// (episode may be a number or a string, isstoryline may be missing).
func parseJSON(data []byte) ([]Entry, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("comic: dataset is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.New("comic: dataset must be a JSON array")
	}
	var (
		entries []Entry
		err     error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		r := record{
			Filename:  value.Get("filename").String(),
			Category:  value.Get("category").String(),
			Title:     value.Get("title").String(),
			Date:      value.Get("date").String(),
			Episode:   value.Get("episode").String(),
			HoverText: value.Get("hovertext").String(),
			BlogText:  value.Get("blogtext").String(),
			Alternate: value.Get("alternate").String(),
			URL:       value.Get("url").String(),
		}
		if s := value.Get("isstoryline"); s.Exists() {
			b := s.Bool()
			r.IsStoryline = &b
		}
		var e Entry
		if e, err = r.entry(); err != nil {
			err = fmt.Errorf("comic: record %d: %w", key.Int(), err)
			return false
		}
		entries = append(entries, e)
		return true
	})
	return entries, err
}

func parseYAML(data []byte) ([]Entry, error) {
	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("comic: decode yaml: %w", err)
	}
	entries := make([]Entry, 0, len(records))
	for i, r := range records {
		e, err := r.entry()
		if err != nil {
			return nil, fmt.Errorf("comic: record %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseScript(data []byte) ([]Entry, error) {
	start := bytes.IndexByte(data, '[')
	end := bytes.LastIndexByte(data, ']')
	if start < 0 || end < start {
		return nil, errors.New("comic: script dataset has no array literal")
	}
	return parseJSON(data[start : end+1])
}
