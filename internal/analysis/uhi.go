package analysis

// HeatAnomaly computes the per-pixel deviation from the scene's own
// temperature reference. The reference is the median of the valid
// temperature pixels rather than a fixed rural zone; the median is
// stable even when the clipped study area is small or skewed towards
// built-up land. The result is unbounded and unclamped.
func HeatAnomaly(temperature *Grid) *Grid {
	out := NewGrid(temperature.Width, temperature.Height)

	valid := temperature.ValidValues()
	if len(valid) == 0 {
		return out
	}
	reference := Median(valid)

	for i, v := range temperature.Data {
		if !IsValid(v) {
			continue
		}
		out.Data[i] = v - reference
	}
	return out
}
