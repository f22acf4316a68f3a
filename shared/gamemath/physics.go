package gamemath

// ClampAbs clamps a value to [-max, max]. A non-positive max disables the clamp.
func ClampAbs(v, max float64) float64 {
	if max <= 0 {
		return v
	}
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}

// ClampLength scales v down so its length does not exceed max.
// A non-positive max disables the clamp.
func ClampLength(v Vec, max float64) Vec {
	if max <= 0 {
		return v
	}
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}
