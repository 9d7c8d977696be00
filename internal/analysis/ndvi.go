package analysis

// VegetationIndex computes the normalized difference of the NIR and
// red bands, clamped to [-1, 1]. Zero DN in either band is nodata, as
// is a non-positive denominator. Both grids must share dimensions.
func VegetationIndex(red, nir *Grid) *Grid {
	out := NewGrid(red.Width, red.Height)

	for i := range red.Data {
		r := red.Data[i]
		n := nir.Data[i]
		if !IsValid(r) || !IsValid(n) || r == 0 || n == 0 {
			continue
		}
		denominator := n + r
		if denominator <= 0 {
			continue
		}
		ndvi := (n - r) / denominator
		if ndvi < -1 {
			ndvi = -1
		}
		if ndvi > 1 {
			ndvi = 1
		}
		out.Data[i] = ndvi
	}
	return out
}
