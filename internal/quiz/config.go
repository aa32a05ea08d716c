package quiz

// Config controls round construction.
type Config struct {
	// ChoiceCount is the number of flags offered in CountryToFlag rounds.
	ChoiceCount int

	// HintDecoys is the number of wrong options added to a hint list.
	HintDecoys int

	// RepeatAttempts bounds the redraws spent avoiding an excluded item.
	RepeatAttempts int

	// FlagAttempts bounds the redraws spent looking for an item with a flag
	// in flag-based modes.
	FlagAttempts int
}

// DefaultConfig returns the standard round settings.
func DefaultConfig() Config {
	return Config{
		ChoiceCount:    4,
		HintDecoys:     3,
		RepeatAttempts: 12,
		FlagAttempts:   10,
	}
}
