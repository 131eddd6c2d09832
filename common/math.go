package common

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NonNegative returns v, or 0 when v is below zero.
func NonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
