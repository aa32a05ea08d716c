package quiz

import (
	"github.com/abhisek/geoquiz/internal/answer"
	"github.com/abhisek/geoquiz/internal/dataset"
)

// Question is a single round. It is created fresh for every round and
// discarded once answered, skipped or replaced.
type Question struct {
	Mode Mode

	// Item is the correct answer.
	Item dataset.Item

	// Choices is set only for CountryToFlag. It contains Item exactly once.
	Choices []dataset.Item
}

// ExpectedAnswer returns the text a typed answer must match.
func (q *Question) ExpectedAnswer() string {
	return FieldOf(q.Mode.Expects(), q.Item)
}

// CorrectChoice returns the index of Item within Choices, or -1.
func (q *Question) CorrectChoice() int {
	for i, c := range q.Choices {
		if sameCountry(c, q.Item) {
			return i
		}
	}
	return -1
}

// sameCountry compares items by normalized country name.
func sameCountry(a, b dataset.Item) bool {
	return answer.Normalize(a.Country) == answer.Normalize(b.Country)
}
