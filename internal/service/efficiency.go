package service

import "math"

// EfficiencyRatio computes DC energy delivered divided by AC energy consumed,
// rounded to two decimals. Zero consumption yields zero rather than an error
// or infinity.
func EfficiencyRatio(dcDelivered, acConsumed float64) float64 {
	if acConsumed == 0 {
		return 0
	}
	return round2(dcDelivered / acConsumed)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
