package comic

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrEmptyDataset is returned when a dataset has no entries.
var ErrEmptyDataset = errors.New("comic: dataset is empty")

// Dataset is the immutable, ordered sequence of entries.
type Dataset struct {
	entries []Entry
	counts  map[Category]int
}

// New validates entries and builds a Dataset. Entry indices are assigned
// from slice position; every record problem found is reported.
func New(entries []Entry) (*Dataset, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyDataset
	}
	d := &Dataset{
		entries: make([]Entry, len(entries)),
		counts:  make(map[Category]int, 2),
	}
	var err error
	for i, e := range entries {
		e.Index = i
		switch e.Category {
		case Storyline, Extra:
		case "":
			e.Category = Storyline
		default:
			err = multierr.Append(err, fmt.Errorf("comic: entry %d: unknown category %q", i, e.Category))
		}
		var (
			refs  = make([]string, 0, len(e.MediaRefs))
			hover = make([]string, 0, len(e.MediaRefs))
			alt   = make([]string, 0, len(e.MediaRefs))
		)
		for j, ref := range e.MediaRefs {
			if ref == "" {
				continue
			}
			if _, perr := ParseMedia(ref); perr != nil {
				err = multierr.Append(err, fmt.Errorf("entry %d: %w", i, perr))
				continue
			}
			refs = append(refs, ref)
			hover = append(hover, e.HoverFor(j))
			alt = append(alt, e.AlternateFor(j))
		}
		// Hover text and alternates pair with refs by position.
		if len(e.Meta.HoverText) > 0 {
			e.Meta.HoverText = hover
		}
		if len(e.Meta.Alternate) > 0 {
			e.Meta.Alternate = alt
		}
		e.MediaRefs = refs
		e.HasMedia = len(refs) > 0
		d.entries[i] = e
		d.counts[e.Category]++
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	return len(d.entries)
}

// At returns the entry at index i. It panics when i is out of range.
func (d *Dataset) At(i int) Entry {
	return d.entries[i]
}

// Lookup returns the entry at index i, if any.
func (d *Dataset) Lookup(i int) (Entry, bool) {
	if i < 0 || i >= len(d.entries) {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Entries returns a copy of all entries in order.
func (d *Dataset) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Count returns how many entries have the given category.
func (d *Dataset) Count(c Category) int {
	return d.counts[c]
}
