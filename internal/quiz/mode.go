package quiz

// Mode is one of the four fixed question styles.
type Mode int

const (
	FlagToCountry    Mode = 1 // Given a flag, name the country
	CountryToFlag    Mode = 2 // Given a country, pick its flag from 4
	CountryToCapital Mode = 3 // Given a country, name the capital
	CapitalToCountry Mode = 4 // Given a capital, name the country
)

// Modes lists every mode in ID order.
var Modes = []Mode{FlagToCountry, CountryToFlag, CountryToCapital, CapitalToCountry}

// ID returns the stable numeric identifier.
func (m Mode) ID() int { return int(m) }

// Name returns the display name.
func (m Mode) Name() string {
	switch m {
	case FlagToCountry:
		return "Flag → Country"
	case CountryToFlag:
		return "Country → Flag (4 choices)"
	case CountryToCapital:
		return "Country → Capital"
	case CapitalToCountry:
		return "Capital → Country"
	}
	return "Unknown"
}

// Slug returns a stable machine-readable name used in the event log.
func (m Mode) Slug() string {
	switch m {
	case FlagToCountry:
		return "flag-to-country"
	case CountryToFlag:
		return "country-to-flag"
	case CountryToCapital:
		return "country-to-capital"
	case CapitalToCountry:
		return "capital-to-country"
	}
	return "unknown"
}

// ModeFromSlug is the inverse of Slug.
func ModeFromSlug(s string) (Mode, bool) {
	for _, m := range Modes {
		if m.Slug() == s {
			return m, true
		}
	}
	return 0, false
}

// NeedsFlag reports whether the question shows the item's flag. Only
// FlagToCountry is unanswerable without one; CountryToCapital shows it as
// an optional visual.
func (m Mode) NeedsFlag() bool {
	return m == FlagToCountry || m == CountryToCapital
}

// HasChoices reports whether the mode is answered by picking a choice.
func (m Mode) HasChoices() bool {
	return m == CountryToFlag
}

// Expects returns the field a typed answer is compared against. The given
// side of the prompt is never the expected answer: CapitalToCountry shows
// the capital and expects the country.
func (m Mode) Expects() HintKind {
	if m == CountryToCapital {
		return HintCapital
	}
	return HintCountry
}
