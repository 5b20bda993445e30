package utils

import "math"

// RoundCurrency rounds an amount to cents.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
