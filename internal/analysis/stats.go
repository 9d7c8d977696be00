package analysis

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// IndexKind identifies which per-pixel index a grid holds; it selects
// the rendering policy, colormap and unit downstream.
type IndexKind int

const (
	IndexLST IndexKind = iota
	IndexNDVI
	IndexUHI
)

func (k IndexKind) String() string {
	switch k {
	case IndexLST:
		return "LST"
	case IndexNDVI:
		return "NDVI"
	case IndexUHI:
		return "UHI"
	}
	return "unknown"
}

// Unit returns the display unit suffix for the index.
func (k IndexKind) Unit() string {
	switch k {
	case IndexLST, IndexUHI:
		return "°C"
	}
	return ""
}

// Precision returns the display decimal places for the index.
func (k IndexKind) Precision() int {
	if k == IndexNDVI {
		return 3
	}
	return 1
}

// Metric is a summary value that marshals NaN as an empty CSV cell
// and everything else with three decimals.
type Metric float64

func (m Metric) MarshalCSV() (string, error) {
	if math.IsNaN(float64(m)) {
		return "", nil
	}
	return strconv.FormatFloat(float64(m), 'f', 3, 64), nil
}

// MarshalJSON encodes NaN as null so rows survive JSON round trips
// (the scene-stats cache stores them that way).
func (m Metric) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(m)) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(m), 'f', -1, 64)), nil
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*m = Metric(v)
	return nil
}

func (m *Metric) UnmarshalCSV(s string) error {
	if s == "" {
		*m = Metric(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*m = Metric(v)
	return nil
}

// SceneStats is one summary row per scene. Field order matches the
// CSV column order.
type SceneStats struct {
	LSTMin   Metric `csv:"LST_min"`
	LSTMax   Metric `csv:"LST_max"`
	LSTMean  Metric `csv:"LST_mean"`
	LSTStd   Metric `csv:"LST_std"`
	NDVIMin  Metric `csv:"NDVI_min"`
	NDVIMax  Metric `csv:"NDVI_max"`
	NDVIMean Metric `csv:"NDVI_mean"`
	NDVIStd  Metric `csv:"NDVI_std"`
	UHIMin   Metric `csv:"UHI_min"`
	UHIMax   Metric `csv:"UHI_max"`
	UHIMean  Metric `csv:"UHI_mean"`
	UHIStd   Metric `csv:"UHI_std"`
	Period   string `csv:"Period"`
}

// Summarize reduces the three index grids of one scene to a stats row.
// A grid without valid pixels contributes NaN metrics.
func Summarize(period string, lst, ndvi, uhi *Grid) SceneStats {
	stats := SceneStats{Period: period}
	stats.LSTMin, stats.LSTMax, stats.LSTMean, stats.LSTStd = summarizeGrid(lst)
	stats.NDVIMin, stats.NDVIMax, stats.NDVIMean, stats.NDVIStd = summarizeGrid(ndvi)
	stats.UHIMin, stats.UHIMax, stats.UHIMean, stats.UHIStd = summarizeGrid(uhi)
	return stats
}

func summarizeGrid(g *Grid) (min, max, mean, std Metric) {
	valid := g.ValidValues()
	if len(valid) == 0 {
		nan := Metric(math.NaN())
		return nan, nan, nan, nan
	}
	min = Metric(floats.Min(valid))
	max = Metric(floats.Max(valid))
	mean = Metric(stat.Mean(valid, nil))
	std = Metric(stat.PopStdDev(valid, nil))
	return min, max, mean, std
}
