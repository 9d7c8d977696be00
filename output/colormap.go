package output

import (
	"image/color"

	"github.com/heatwatch/landsat-uhi-cli/internal/analysis"
)

type rampStop struct {
	pos     float64
	r, g, b uint8
}

// Colormap maps a normalized [0,1] value onto a color gradient with
// linear interpolation between anchor stops.
type Colormap []rampStop

// Anchor points sampled from the matplotlib gradients the plates are
// expected to match.
var (
	// Viridis, for temperature plates.
	viridis = Colormap{
		{0.00, 68, 1, 84},
		{0.25, 59, 82, 139},
		{0.50, 33, 145, 140},
		{0.75, 94, 201, 98},
		{1.00, 253, 231, 37},
	}

	// Reversed red-blue diverging, for anomaly plates: cool blue below
	// zero, hot red above.
	redBlueReversed = Colormap{
		{0.00, 5, 48, 97},
		{0.25, 67, 147, 195},
		{0.50, 247, 247, 247},
		{0.75, 214, 96, 77},
		{1.00, 103, 0, 31},
	}

	// Red-yellow-green, for vegetation plates.
	redYellowGreen = Colormap{
		{0.00, 165, 0, 38},
		{0.25, 244, 109, 67},
		{0.50, 255, 255, 191},
		{0.75, 102, 189, 99},
		{1.00, 0, 104, 55},
	}
)

// Ramp returns the colormap used for an index kind.
func Ramp(kind analysis.IndexKind) Colormap {
	switch kind {
	case analysis.IndexLST:
		return viridis
	case analysis.IndexUHI:
		return redBlueReversed
	default:
		return redYellowGreen
	}
}

// Lookup returns the gradient color at t, clamping t to [0,1].
func (c Colormap) Lookup(t float64) color.RGBA {
	if t <= c[0].pos {
		first := c[0]
		return color.RGBA{first.r, first.g, first.b, 255}
	}
	last := c[len(c)-1]
	if t >= last.pos {
		return color.RGBA{last.r, last.g, last.b, 255}
	}
	for i := 1; i < len(c); i++ {
		if t > c[i].pos {
			continue
		}
		lo, hi := c[i-1], c[i]
		f := (t - lo.pos) / (hi.pos - lo.pos)
		lerp := func(a, b uint8) uint8 {
			return uint8(float64(a) + f*(float64(b)-float64(a)) + 0.5)
		}
		return color.RGBA{lerp(lo.r, hi.r), lerp(lo.g, hi.g), lerp(lo.b, hi.b), 255}
	}
	return color.RGBA{last.r, last.g, last.b, 255}
}
