// Package answer canonicalizes free-text answers so that case, accents and
// punctuation do not affect comparison.
package answer

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks matches the Combining Diacritical Marks block (U+0300–U+036F).
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
})

// Normalize returns the canonical form of s used for every answer and
// dataset-key comparison.
//
// Rules, in order:
//   - trim and lowercase
//   - decompose (NFD) and drop combining diacritical marks
//   - underscores become spaces, apostrophes are removed
//   - anything other than a-z, 0-9, whitespace or '-' becomes a space
//   - whitespace runs collapse to a single space, result is trimmed
//
// Normalize is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(combiningMarks)), s)
	if err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\'' || r == '’':
			// dropped
		case r == '_':
			b.WriteByte(' ')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeAny stringifies a decoded JSON value and normalizes it.
// nil becomes the empty string.
func NormalizeAny(v any) string {
	return Normalize(Stringify(v))
}

// Stringify renders a decoded JSON scalar the way a dataset field is read:
// nil is empty, numbers use the shortest representation, bools are
// "true"/"false". Objects and arrays yield "".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// Equal reports whether a and b are the same answer after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
