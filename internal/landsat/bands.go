package landsat

import "fmt"

// Band names the spectral channels the pipeline consumes. The merged
// scene rasters carry Landsat 8/9 bands B1-B7 plus B10 in file order,
// so each named band maps to a fixed 0-based offset.
type Band int

const (
	Blue Band = iota
	Green
	Red
	NIR
	Thermal
)

// MinBandCount is the smallest band count a merged scene can have and
// still contain the thermal channel.
const MinBandCount = 8

var bandOffsets = map[Band]int{
	Blue:    1, // B2
	Green:   2, // B3
	Red:     3, // B4
	NIR:     4, // B5
	Thermal: 7, // B10
}

// Offset returns the 0-based band index inside a merged scene raster.
func (b Band) Offset() int {
	return bandOffsets[b]
}

func (b Band) String() string {
	switch b {
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Red:
		return "Red"
	case NIR:
		return "NIR"
	case Thermal:
		return "Thermal"
	}
	return fmt.Sprintf("Band(%d)", int(b))
}
