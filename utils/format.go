package utils

import (
	"fmt"
	"math"
)

// FormatInt renders n with comma separators ("1234567" -> "1,234,567").
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// RoundTo2 rounds to two decimal places. Ratio metrics are rounded once, at
// the edge, before they enter an envelope.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
