// Package keymap holds the keyboard bindings of the interactive viewer.
package keymap

import (
	"fmt"
	"strings"

	"tableflip.dev/comicview/pkg/viewer"
)

// Command is something a key press asks the viewer to do.
type Command int

const (
	None Command = iota
	First
	Prev
	Next
	Last
	Random
	ToggleStoryline
	ToggleExtras
	Quit
)

var commandNames = map[Command]string{
	None:            "none",
	First:           "first",
	Prev:            "prev",
	Next:            "next",
	Last:            "last",
	Random:          "random",
	ToggleStoryline: "storyline",
	ToggleExtras:    "extras",
	Quit:            "quit",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Action maps a navigation command onto a viewer action.
func (c Command) Action() (viewer.Action, bool) {
	switch c {
	case First:
		return viewer.Go(viewer.First), true
	case Prev:
		return viewer.Go(viewer.Prev), true
	case Next:
		return viewer.Go(viewer.Next), true
	case Last:
		return viewer.Go(viewer.Last), true
	case Random:
		return viewer.Go(viewer.Random), true
	}
	return viewer.Action{}, false
}

// Binding ties a command to the keys that trigger it.
type Binding struct {
	Command Command
	Keys    []string
	Help    string
}

// Display joins the keys for a help line.
func (b Binding) Display() string {
	return strings.Join(b.Keys, " ")
}

// Default returns the stock bindings in display order.
func Default() []Binding {
	b := make([]Binding, 0, 8)

	b = append(b, Binding{
		Command: First,
		Keys:    []string{"-", "home"},
		Help:    "first comic",
	}, Binding{
		Command: Prev,
		Keys:    []string{"[", "left", "p"},
		Help:    "previous comic",
	}, Binding{
		Command: Next,
		Keys:    []string{"]", "right", "n", "+"},
		Help:    "next comic",
	}, Binding{
		Command: Last,
		Keys:    []string{"=", "end", "*"},
		Help:    "last comic",
	}, Binding{
		Command: Random,
		Keys:    []string{"\\", "0", "r"},
		Help:    "random comic",
	}, Binding{
		Command: ToggleStoryline,
		Keys:    []string{"s"},
		Help:    "toggle storyline comics",
	}, Binding{
		Command: ToggleExtras,
		Keys:    []string{"e"},
		Help:    "toggle extra comics",
	}, Binding{
		Command: Quit,
		Keys:    []string{"q", "ctrl+c"},
		Help:    "quit",
	})

	return b
}

// Map resolves key names to commands.
type Map struct {
	keys map[string]Command
}

// New builds a Map. A key bound twice keeps its first command.
func New(bindings []Binding) *Map {
	m := &Map{keys: make(map[string]Command)}
	for _, b := range bindings {
		for _, k := range b.Keys {
			if _, dup := m.keys[k]; !dup {
				m.keys[k] = b.Command
			}
		}
	}
	return m
}

// Lookup returns the command bound to key, or None.
func (m *Map) Lookup(key string) Command {
	if c, ok := m.keys[key]; ok {
		return c
	}
	return None
}
