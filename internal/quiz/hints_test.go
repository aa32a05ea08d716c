package quiz

import (
	"testing"

	"github.com/abhisek/geoquiz/internal/answer"
	"github.com/abhisek/geoquiz/internal/dataset"
)

func TestHintOptions_FourDistinctIncludingCorrect(t *testing.T) {
	items := testItems(10)
	d := testDeck(items, 3)

	for _, kind := range []HintKind{HintCountry, HintCapital} {
		opts := d.HintOptions(kind, items[4])
		if len(opts) != 4 {
			t.Fatalf("%s: len(opts) = %d, want 4", kind, len(opts))
		}
		want := FieldOf(kind, items[4])
		seen := make(map[string]bool)
		found := 0
		for _, o := range opts {
			k := answer.Normalize(o)
			if seen[k] {
				t.Errorf("%s: duplicate option %q", kind, o)
			}
			seen[k] = true
			if o == want {
				found++
			}
		}
		if found != 1 {
			t.Errorf("%s: correct value appears %d times, want 1", kind, found)
		}
	}
}

func TestHintOptions_TwoItemPool(t *testing.T) {
	items := []dataset.Item{
		{Country: "France", Capital: "Paris"},
		{Country: "Peru", Capital: "Lima"},
	}
	d := testDeck(items, 1)

	opts := d.HintOptions(HintCountry, items[0])
	if len(opts) != 2 {
		t.Fatalf("len(opts) = %d, want 2", len(opts))
	}
}

func TestHintOptions_SkipsDuplicateAndEmptyDecoys(t *testing.T) {
	items := []dataset.Item{
		{Country: "A", Capital: "Paris"},
		{Country: "B", Capital: "PARIS"},
		{Country: "C", Capital: "Lima"},
		{Country: "D", Capital: "lima"},
		{Country: "E", Capital: "!!"},
	}
	d := testDeck(items, 8)

	opts := d.HintOptions(HintCapital, items[0])
	if len(opts) != 2 {
		t.Fatalf("opts = %v, want Paris plus one Lima", opts)
	}
}

func TestModeExpects(t *testing.T) {
	tests := []struct {
		mode Mode
		want HintKind
	}{
		{FlagToCountry, HintCountry},
		{CountryToFlag, HintCountry},
		{CountryToCapital, HintCapital},
		{CapitalToCountry, HintCountry},
	}
	for _, tc := range tests {
		if got := tc.mode.Expects(); got != tc.want {
			t.Errorf("%s.Expects() = %s, want %s", tc.mode.Name(), got, tc.want)
		}
	}
}

func TestModeSlugRoundTrip(t *testing.T) {
	for _, m := range Modes {
		got, ok := ModeFromSlug(m.Slug())
		if !ok || got != m {
			t.Errorf("ModeFromSlug(%q) = %v, %v", m.Slug(), got, ok)
		}
	}
	if _, ok := ModeFromSlug("nope"); ok {
		t.Error("expected unknown slug to fail")
	}
}
