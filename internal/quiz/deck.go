// Package quiz builds question rounds from a pool of dataset items: mode and
// item selection, flag choice sets and hint options.
package quiz

import (
	"math/rand/v2"
	"slices"

	"github.com/abhisek/geoquiz/internal/answer"
	"github.com/abhisek/geoquiz/internal/dataset"
)

// Deck is the question pool plus the random source used to draw from it.
// A Deck is not safe for concurrent use; it is owned by one session.
type Deck struct {
	items []dataset.Item
	rng   *rand.Rand
	cfg   Config
}

// NewDeck creates a deck over items. A nil rng uses a randomly seeded
// source.
func NewDeck(items []dataset.Item, rng *rand.Rand, cfg Config) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Deck{
		items: slices.Clone(items),
		rng:   rng,
		cfg:   cfg,
	}
}

// Items returns the pool in its current order.
func (d *Deck) Items() []dataset.Item {
	return d.items
}

// Len returns the pool size.
func (d *Deck) Len() int {
	return len(d.items)
}

// Shuffle randomizes the pool order.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.items), func(i, j int) {
		d.items[i], d.items[j] = d.items[j], d.items[i]
	})
}

// RandomItem draws a uniformly random item. When exclude is set it redraws
// up to RepeatAttempts times to avoid the same country; if every attempt
// hits it, the last draw is returned anyway, so exclusion is not guaranteed
// on tiny pools. The bool is false only when the pool is empty.
func (d *Deck) RandomItem(exclude *dataset.Item) (dataset.Item, bool) {
	n := len(d.items)
	if n == 0 {
		return dataset.Item{}, false
	}
	if n == 1 {
		return d.items[0], true
	}

	it := d.items[d.rng.IntN(n)]
	if exclude == nil {
		return it, true
	}
	for attempt := 1; attempt < d.cfg.RepeatAttempts && sameCountry(it, *exclude); attempt++ {
		it = d.items[d.rng.IntN(n)]
	}
	return it, true
}

// RandomMode picks one of the four modes uniformly.
func (d *Deck) RandomMode() Mode {
	return Modes[d.rng.IntN(len(Modes))]
}

// Choices returns count distinct items (by normalized country) including
// correct exactly once, in random order. When the pool has fewer distinct
// countries the result is shorter.
func (d *Deck) Choices(correct dataset.Item, count int) []dataset.Item {
	choices := []dataset.Item{correct}
	target := min(count, d.distinctWith(correct))

	// Random draws first; then sweep the pool so a short or skewed pool
	// cannot stall.
	for attempt := 0; len(choices) < target && attempt < count*8; attempt++ {
		it, ok := d.RandomItem(nil)
		if !ok {
			break
		}
		if !containsCountry(choices, it) {
			choices = append(choices, it)
		}
	}
	if len(choices) < target {
		for _, i := range d.rng.Perm(len(d.items)) {
			if len(choices) >= target {
				break
			}
			if !containsCountry(choices, d.items[i]) {
				choices = append(choices, d.items[i])
			}
		}
	}

	d.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// NextQuestion builds a new round: a random mode, a random item (preferring
// items with a flag for flag-based modes) and choices for CountryToFlag.
// The bool is false when the pool is empty.
func (d *Deck) NextQuestion() (*Question, bool) {
	mode := d.RandomMode()
	item, ok := d.RandomItem(nil)
	if !ok {
		return nil, false
	}

	if mode.NeedsFlag() {
		for attempt := 0; attempt < d.cfg.FlagAttempts && !item.HasFlag(); attempt++ {
			prev := item
			item, _ = d.RandomItem(&prev)
		}
	}

	q := &Question{Mode: mode, Item: item}
	if mode.HasChoices() {
		q.Choices = d.Choices(item, d.cfg.ChoiceCount)
	}
	return q, true
}

// distinctWith counts distinct countries in the pool plus correct.
func (d *Deck) distinctWith(correct dataset.Item) int {
	seen := map[string]bool{answer.Normalize(correct.Country): true}
	for _, it := range d.items {
		seen[answer.Normalize(it.Country)] = true
	}
	return len(seen)
}

func containsCountry(items []dataset.Item, it dataset.Item) bool {
	for _, x := range items {
		if sameCountry(x, it) {
			return true
		}
	}
	return false
}
