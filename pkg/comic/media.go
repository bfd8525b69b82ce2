package comic

import (
	"fmt"
	"strconv"
	"strings"
)

// Media is a parsed media reference.
type Media struct {
	Name   string
	Flash  bool
	Width  int
	Height int
}

// ParseMedia splits a media ref into its file name and, for flash refs of
// the form "name.swf?W,H", the embedded display size.
func ParseMedia(ref string) (Media, error) {
	name, query, hasQuery := strings.Cut(ref, "?")
	m := Media{Name: name, Flash: strings.Contains(strings.ToLower(name), ".swf")}
	if name == "" {
		return m, fmt.Errorf("comic: empty media ref %q", ref)
	}
	if !m.Flash {
		return m, nil
	}
	if !hasQuery {
		return m, fmt.Errorf("comic: flash ref %q has no dimensions", ref)
	}
	w, h, ok := strings.Cut(query, ",")
	if !ok {
		return m, fmt.Errorf("comic: flash ref %q has malformed dimensions", ref)
	}
	var err error
	if m.Width, err = strconv.Atoi(strings.TrimSpace(w)); err != nil {
		return m, fmt.Errorf("comic: flash ref %q width: %w", ref, err)
	}
	if m.Height, err = strconv.Atoi(strings.TrimSpace(h)); err != nil {
		return m, fmt.Errorf("comic: flash ref %q height: %w", ref, err)
	}
	return m, nil
}

func (m Media) String() string {
	if m.Flash {
		return fmt.Sprintf("%s (%dx%d)", m.Name, m.Width, m.Height)
	}
	return m.Name
}
