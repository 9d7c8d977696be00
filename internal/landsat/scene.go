package landsat

import (
	"fmt"

	"github.com/airbusgeo/godal"
	"github.com/heatwatch/landsat-uhi-cli/internal/analysis"
)

// Scene is one period's co-registered multi-band raster, read eagerly
// so the dataset handle can be closed before any processing starts.
// All bands share the scene's dimensions and spatial metadata.
type Scene struct {
	Path         string
	Width        int
	Height       int
	GeoTransform [6]float64
	Projection   string

	bands map[Band][]float64
}

// ReadScene opens a merged, clipped scene raster and extracts the
// named bands. Scenes with fewer than MinBandCount bands are rejected
// rather than indexed blindly.
func ReadScene(path string) (*Scene, error) {
	ds, err := godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal: %s", msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to open scene %s: %w", path, err)
	}
	defer ds.Close()

	structure := ds.Structure()
	if structure.NBands < MinBandCount {
		return nil, fmt.Errorf("scene %s has %d bands, need at least %d", path, structure.NBands, MinBandCount)
	}

	scene := &Scene{
		Path:   path,
		Width:  structure.SizeX,
		Height: structure.SizeY,
		bands:  make(map[Band][]float64),
	}

	scene.GeoTransform, err = ds.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("failed to get geotransform of %s: %w", path, err)
	}
	if sr := ds.SpatialRef(); sr != nil {
		wkt, err := sr.WKT()
		if err != nil {
			return nil, fmt.Errorf("failed to export projection of %s: %w", path, err)
		}
		scene.Projection = wkt
	}

	rasterBands := ds.Bands()
	for _, band := range []Band{Blue, Green, Red, NIR, Thermal} {
		data := make([]float64, scene.Width*scene.Height)
		if err := rasterBands[band.Offset()].Read(0, 0, data, scene.Width, scene.Height); err != nil {
			return nil, fmt.Errorf("failed to read %s band of %s: %w", band, path, err)
		}
		scene.bands[band] = data
	}

	return scene, nil
}

// Grid exposes a band as an analysis grid. The underlying buffer is
// shared; index computations never mutate their inputs.
func (s *Scene) Grid(b Band) *analysis.Grid {
	return analysis.NewGridFrom(s.bands[b], s.Width, s.Height)
}

// DNRange reports the minimum non-zero and maximum DN of a band,
// ok=false when the band carries only zeros.
func (s *Scene) DNRange(b Band) (min, max float64, ok bool) {
	for _, v := range s.bands[b] {
		if v <= 0 {
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
