package keymap

import (
	"testing"

	"tableflip.dev/comicview/pkg/viewer"
)

func TestDefaultLookup(t *testing.T) {
	m := New(Default())
	tests := map[string]Command{
		"-":      First,
		"home":   First,
		"[":      Prev,
		"left":   Prev,
		"]":      Next,
		"n":      Next,
		"+":      Next,
		"=":      Last,
		"end":    Last,
		"*":      Last,
		"\\":     Random,
		"0":      Random,
		"s":      ToggleStoryline,
		"e":      ToggleExtras,
		"ctrl+c": Quit,
		"x":      None,
	}
	for key, want := range tests {
		if got := m.Lookup(key); got != want {
			t.Fatalf("Lookup(%q) = %s, want %s", key, got, want)
		}
	}
}

func TestDuplicateKeyKeepsFirst(t *testing.T) {
	m := New([]Binding{
		{Command: Next, Keys: []string{"x"}},
		{Command: Prev, Keys: []string{"x"}},
	})
	if got := m.Lookup("x"); got != Next {
		t.Fatalf("got %s, want next", got)
	}
}

func TestCommandAction(t *testing.T) {
	act, ok := Random.Action()
	if !ok || act.Kind != viewer.Random {
		t.Fatalf("random action = %v, %v", act, ok)
	}
	if _, ok := ToggleExtras.Action(); ok {
		t.Fatalf("toggle has no navigation action")
	}
	if Quit.String() != "quit" || Command(99).String() != "command(99)" {
		t.Fatalf("unexpected names")
	}
}
