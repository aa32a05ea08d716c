package quiz

import (
	"github.com/abhisek/geoquiz/internal/answer"
	"github.com/abhisek/geoquiz/internal/dataset"
)

// HintKind selects which field hint options are drawn from.
type HintKind string

const (
	HintCountry HintKind = "country"
	HintCapital HintKind = "capital"
)

// FieldOf returns the country or capital of item.
func FieldOf(kind HintKind, item dataset.Item) string {
	if kind == HintCapital {
		return item.Capital
	}
	return item.Country
}

// HintOptions returns the correct value for item plus up to HintDecoys
// distinct decoys from the pool, shuffled. Small pools give fewer options.
func (d *Deck) HintOptions(kind HintKind, item dataset.Item) []string {
	correct := FieldOf(kind, item)
	options := append([]string{correct}, d.decoys(kind, correct, d.cfg.HintDecoys)...)
	d.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// decoys samples up to count distinct values of the field, excluding the
// correct value and empty values, without replacement.
func (d *Deck) decoys(kind HintKind, correct string, count int) []string {
	want := answer.Normalize(correct)
	seen := make(map[string]bool)
	var pool []string
	for _, it := range d.items {
		v := FieldOf(kind, it)
		k := answer.Normalize(v)
		if k == "" || k == want || seen[k] {
			continue
		}
		seen[k] = true
		pool = append(pool, v)
	}

	d.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}
