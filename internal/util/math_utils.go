package util

import "math"

// Percent returns part as a rounded percentage of whole. A zero whole yields 100
// when part is also zero, and 0 otherwise.
func Percent(part, whole int) int {
	if whole <= 0 {
		if part == 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(whole)))
}
