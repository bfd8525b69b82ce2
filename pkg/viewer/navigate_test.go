package viewer

import (
	"math/rand/v2"
	"testing"
)

var storylineOnly = NewFilter(true, false)

func TestExampleScenario(t *testing.T) {
	ds := dataset(t, "seses")

	if i, ok := FirstAllowed(ds, storylineOnly); !ok || i != 0 {
		t.Fatalf("FirstAllowed = %d, %v; want 0", i, ok)
	}
	if i, ok := LastAllowed(ds, storylineOnly); !ok || i != 4 {
		t.Fatalf("LastAllowed = %d, %v; want 4", i, ok)
	}
	if i, ok := Advance(ds, storylineOnly, 0, 1); !ok || i != 2 {
		t.Fatalf("Advance(0,+1) = %d, %v; want 2", i, ok)
	}
	if i, ok := Advance(ds, storylineOnly, 2, 1); !ok || i != 4 {
		t.Fatalf("Advance(2,+1) = %d, %v; want 4", i, ok)
	}
	if i, ok := Advance(ds, storylineOnly, 4, 1); ok {
		t.Fatalf("Advance(4,+1) = %d; want none", i)
	}
}

func TestClosestAllowedNormalizesDirection(t *testing.T) {
	ds := dataset(t, "seses")
	if i, ok := ClosestAllowed(ds, storylineOnly, 0, 17); !ok || i != 2 {
		t.Fatalf("direction 17 = %d, %v; want 2", i, ok)
	}
	if i, ok := ClosestAllowed(ds, storylineOnly, 4, -3); !ok || i != 2 {
		t.Fatalf("direction -3 = %d, %v; want 2", i, ok)
	}
	if _, ok := ClosestAllowed(ds, storylineOnly, 2, 0); ok {
		t.Fatalf("direction 0 should find nothing")
	}
	// Starting on an entry the filter excludes still scans correctly.
	if i, ok := ClosestAllowed(ds, storylineOnly, 1, -1); !ok || i != 0 {
		t.Fatalf("from excluded entry = %d, %v; want 0", i, ok)
	}
	if _, ok := ClosestAllowed(ds, storylineOnly, 0, -1); ok {
		t.Fatalf("scan below 0 should find nothing")
	}
}

var allFilters = []Filter{NewFilter(true, true), NewFilter(true, false), NewFilter(false, true)}

var patterns = []string{"s", "e", "se", "es", "seses", "eeees", "seeee", "sssss", "eseeese"}

func TestFirstNotAfterLast(t *testing.T) {
	for _, p := range patterns {
		ds := dataset(t, p)
		for _, f := range allFilters {
			first, okFirst := FirstAllowed(ds, f)
			last, okLast := LastAllowed(ds, f)
			if okFirst != okLast {
				t.Fatalf("%s/%s: first ok=%v last ok=%v", p, f, okFirst, okLast)
			}
			if okFirst && first > last {
				t.Fatalf("%s/%s: first %d > last %d", p, f, first, last)
			}
			if okFirst != (Eligible(ds, f) > 0) {
				t.Fatalf("%s/%s: eligible count disagrees with FirstAllowed", p, f)
			}
		}
	}
}

func TestAdvanceRoundTrip(t *testing.T) {
	for _, p := range patterns {
		ds := dataset(t, p)
		for _, f := range allFilters {
			for i := 0; i < ds.Len(); i++ {
				fwd, ok := Advance(ds, f, i, 1)
				if !ok {
					continue
				}
				back, ok := Advance(ds, f, fwd, -1)
				if f.Allows(ds.At(i)) {
					if !ok || back != i {
						t.Fatalf("%s/%s: round trip from allowed %d gave %d, %v", p, f, i, back, ok)
					}
					continue
				}
				if ok && (back > i || !f.Allows(ds.At(back))) {
					t.Fatalf("%s/%s: round trip from %d gave %d", p, f, i, back)
				}
			}
		}
	}
}

func TestFilterInvariant(t *testing.T) {
	f := NewFilter(true, false)
	f.SetIncludeStoryline(false)
	if f.IncludeStoryline() || !f.IncludeExtras() {
		t.Fatalf("clearing the only flag should force the other on, got %s", f)
	}

	f = NewFilter(false, true)
	f.SetIncludeExtras(false)
	if !f.IncludeStoryline() || f.IncludeExtras() {
		t.Fatalf("clearing extras should force storyline on, got %s", f)
	}

	f = DefaultFilter()
	f.SetIncludeExtras(false)
	if !f.IncludeStoryline() || f.IncludeExtras() {
		t.Fatalf("clearing extras with storyline on should stick, got %s", f)
	}

	f = NewFilter(false, false)
	if f.IncludeStoryline() || !f.IncludeExtras() {
		t.Fatalf("NewFilter(false, false) should fall back to extras, got %s", f)
	}
	for _, c := range []struct{ storyline, extras bool }{{true, false}, {false, true}, {true, true}} {
		f = NewFilter(c.storyline, c.extras)
		if f.IncludeStoryline() != c.storyline || f.IncludeExtras() != c.extras {
			t.Fatalf("NewFilter(%v, %v) = %s", c.storyline, c.extras, f)
		}
	}
}

func TestStageAlwaysAllowed(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, p := range patterns {
		ds := dataset(t, p)
		for _, f := range allFilters {
			for n := 0; n < 50; n++ {
				i, ok := Stage(ds, f, rng)
				if ok != (Eligible(ds, f) > 0) {
					t.Fatalf("%s/%s: Stage ok=%v with %d eligible", p, f, ok, Eligible(ds, f))
				}
				if ok && !f.Allows(ds.At(i)) {
					t.Fatalf("%s/%s: staged %d is not allowed", p, f, i)
				}
			}
		}
	}
}

func TestStageResamplesUntilAllowed(t *testing.T) {
	ds := dataset(t, "seses")
	rng := &seqRand{vals: []int{1, 3, 1, 2}}
	i, ok := Stage(ds, storylineOnly, rng)
	if !ok || i != 2 {
		t.Fatalf("Stage = %d, %v; want 2", i, ok)
	}
	if rng.i != 4 {
		t.Fatalf("expected 4 draws, got %d", rng.i)
	}
}
