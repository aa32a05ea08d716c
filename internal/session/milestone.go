package session

// BaseStreakThreshold is the first streak milestone.
const BaseStreakThreshold = 5

// NextStreakThreshold returns the next streak milestone above current.
func NextStreakThreshold(current int) int {
	thresholds := []int{5, 10, 15, 20}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, every 5.
	return ((current / 5) + 1) * 5
}
