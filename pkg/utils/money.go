package utils

import "math"

// ToMinorUnits converts a major-unit amount (e.g. 19.99 MYR) to the
// smallest currency unit the gateway bills in. Rounds half up:
// 1.00 -> 100, 19.99 -> 1999, 0.005 -> 1.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
