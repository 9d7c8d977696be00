package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sentinel is the on-disk nodata value for index rasters. In memory
// invalid pixels are always NaN; the conversion happens only at the
// raster-write boundary.
const Sentinel = -9999

// Grid is a single-band raster held row-major in a flat slice.
type Grid struct {
	Data   []float64
	Width  int
	Height int
}

// NewGrid returns a grid with every pixel invalid.
func NewGrid(width, height int) *Grid {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Grid{Data: data, Width: width, Height: height}
}

// NewGridFrom wraps an existing row-major buffer without copying.
func NewGridFrom(data []float64, width, height int) *Grid {
	return &Grid{Data: data, Width: width, Height: height}
}

func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

func (g *Grid) Set(x, y int, v float64) {
	g.Data[y*g.Width+x] = v
}

// IsValid reports whether v carries data.
func IsValid(v float64) bool {
	return !math.IsNaN(v)
}

// ValidValues returns a fresh slice of the non-invalid pixels.
func (g *Grid) ValidValues() []float64 {
	valid := make([]float64, 0, len(g.Data))
	for _, v := range g.Data {
		if IsValid(v) {
			valid = append(valid, v)
		}
	}
	return valid
}

// ValidRange returns the min and max over valid pixels, ok=false when
// the grid has none.
func (g *Grid) ValidRange() (min, max float64, ok bool) {
	for _, v := range g.Data {
		if !IsValid(v) {
			continue
		}
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}

// Percentile returns the p-th percentile (0-100) of values.
// Values may come in any order; an internal sorted copy is used.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p/100, stat.LinInterp, sorted, nil)
}

// Median averages the two middle order statistics for even-sized
// inputs, matching the usual convention.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
