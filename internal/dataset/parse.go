// Package dataset turns a flags manifest into a deduplicated, sorted quiz
// pool and loads that manifest from its source or the local cache.
package dataset

import (
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abhisek/geoquiz/internal/answer"
)

// Parse converts a manifest into quiz items.
//
// The manifest is a JSON object keyed by country name whose values carry
// optional "capital", "normal_flag" and "small_flag" fields. Anything else at
// the root (array, scalar, invalid JSON) yields no items. Entries with an
// empty key or a value that is not a well-formed object are skipped.
//
// A key repeated verbatim keeps its first position but its last value, the
// way a JSON object decode would. Items are then deduplicated by normalized
// country name, keeping the first one in document order, and sorted by
// country.
func Parse(raw []byte) []Item {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil
	}

	var keys []string
	values := make(map[string]gjson.Result)
	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, dup := values[k]; !dup {
			keys = append(keys, k)
		}
		values[k] = value
		return true
	})

	var out []Item
	seen := make(map[string]bool)
	for _, key := range keys {
		item, ok := parseEntry(key, values[key].Value())
		if !ok {
			continue
		}
		k := answer.Normalize(item.Country)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}

	sortItems(out)
	return out
}

// parseEntry builds an Item from a single manifest entry.
func parseEntry(country string, value any) (Item, bool) {
	country = strings.TrimSpace(country)
	if country == "" || !validEntry(value) {
		return Item{}, false
	}
	obj := value.(map[string]any)

	capital := strings.TrimSpace(answer.Stringify(obj["capital"]))
	if capital == "" {
		capital = UnknownCapital
	}

	return Item{
		Country:    country,
		Capital:    capital,
		NormalFlag: ensureLeadingSlash(strings.TrimSpace(answer.Stringify(obj["normal_flag"]))),
		SmallFlag:  ensureLeadingSlash(strings.TrimSpace(answer.Stringify(obj["small_flag"]))),
	}, true
}

// ensureLeadingSlash makes a relative flag path manifest-rooted. Empty paths
// and URLs with a scheme are returned unchanged.
func ensureLeadingSlash(p string) string {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "://") || strings.HasPrefix(p, "data:") {
		return p
	}
	return "/" + p
}

// sortItems orders items by country using locale-aware collation.
func sortItems(items []Item) {
	col := collate.New(language.English)
	slices.SortStableFunc(items, func(a, b Item) int {
		return col.CompareString(a.Country, b.Country)
	})
}

// Validate checks that raw is parseable JSON with an object root. It does not
// inspect individual entries; bad entries are skipped by Parse.
func Validate(raw []byte) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return &InvalidJSONError{Reason: "empty input"}
	}
	if !gjson.ValidBytes(raw) {
		return &InvalidJSONError{Reason: "not valid JSON"}
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return &InvalidJSONError{Reason: "root must be a single object keyed by country"}
	}
	return nil
}
