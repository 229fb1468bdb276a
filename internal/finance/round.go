package finance

import "math"

// Monetary outputs are rounded to whole base units and hour outputs to two
// decimals, only at the point they leave the engine. Intermediate
// accumulation stays unrounded so error never compounds.

func RoundMoney(v float64) float64 {
	return math.Round(v)
}

func RoundHours(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundRate rounds a money-per-hour rate. Rates keep two decimals rather
// than the whole-unit rounding of plain money amounts.
func RoundRate(v float64) float64 {
	return math.Round(v*100) / 100
}

func RoundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}
