package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Thermal DN percentile bounds and regime classification used by the
// empirical temperature remap. The remap is deliberately relative: it
// maps whatever DN distribution the scene carries into a plausible
// surface-temperature window, so output stays realistic regardless of
// absolute sensor calibration.
const (
	thermalLowPercentile  = 1
	thermalHighPercentile = 99
	thermalRegimeMeanDN   = 35000

	coolRegimeMinC = 10.0
	coolRegimeMaxC = 45.0
	warmRegimeMinC = 15.0
	warmRegimeMaxC = 50.0

	plausibleMinC = -50.0
	plausibleMaxC = 80.0
)

// TemperatureEstimate remaps raw thermal-band DN values into degrees
// Celsius. Zero DN is nodata. An input without any valid pixel yields
// an all-invalid grid.
func TemperatureEstimate(thermal *Grid) *Grid {
	out := NewGrid(thermal.Width, thermal.Height)

	valid := make([]float64, 0, len(thermal.Data))
	for _, dn := range thermal.Data {
		if IsValid(dn) && dn != 0 {
			valid = append(valid, dn)
		}
	}
	if len(valid) == 0 {
		return out
	}

	minDN := Percentile(valid, thermalLowPercentile)
	maxDN := Percentile(valid, thermalHighPercentile)

	tempMin, tempMax := coolRegimeMinC, coolRegimeMaxC
	if stat.Mean(valid, nil) >= thermalRegimeMeanDN {
		tempMin, tempMax = warmRegimeMinC, warmRegimeMaxC
	}

	dnRange := maxDN - minDN
	for i, dn := range thermal.Data {
		if !IsValid(dn) || dn == 0 {
			continue
		}
		var celsius float64
		if dnRange > 0 {
			normalized := (dn - minDN) / dnRange
			if normalized < 0 {
				normalized = 0
			}
			if normalized > 1 {
				normalized = 1
			}
			celsius = tempMin + normalized*(tempMax-tempMin)
		} else {
			celsius = (tempMin + tempMax) / 2
		}
		if celsius < plausibleMinC || celsius > plausibleMaxC {
			celsius = math.NaN()
		}
		out.Data[i] = celsius
	}
	return out
}
