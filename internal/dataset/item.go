package dataset

// UnknownCapital is used when an entry carries no capital.
const UnknownCapital = "UnknownCapital"

// Item is one country in the quiz pool.
type Item struct {
	// Country is the display name and unique key (trimmed).
	Country string

	// Capital is the capital city, or UnknownCapital.
	Capital string

	// NormalFlag and SmallFlag are manifest-relative image paths with a
	// leading "/". Either may be empty.
	NormalFlag string
	SmallFlag  string
}

// BestFlagPath returns the flag path to display for item: the normal flag,
// then the small flag, then "". An empty result means no flag is available
// and nothing should be rendered.
func BestFlagPath(item Item) string {
	if item.NormalFlag != "" {
		return item.NormalFlag
	}
	return item.SmallFlag
}

// HasFlag reports whether item has any flag path.
func (it Item) HasFlag() bool {
	return BestFlagPath(it) != ""
}

// MissingFlags counts items without any flag path.
func MissingFlags(items []Item) int {
	n := 0
	for _, it := range items {
		if !it.HasFlag() {
			n++
		}
	}
	return n
}
