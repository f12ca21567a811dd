package geom

// Limit bounds value into [min, max]. With clamp set it saturates; without
// it the value passes through untouched, which lets callers share one code
// path for bounded and free movement.
func Limit(value, min, max float64, clamp bool) float64 {
	v, _ := LimitReport(value, min, max, clamp)
	return v
}

// LimitReport is Limit that also reports whether the value was saturated.
// The lower bound is checked first, so an inverted range (min > max) yields
// min for values below it and max otherwise.
func LimitReport(value, min, max float64, clamp bool) (float64, bool) {
	if !clamp {
		return value, false
	}
	if value < min {
		return min, true
	}
	if value > max {
		return max, true
	}
	return value, false
}
