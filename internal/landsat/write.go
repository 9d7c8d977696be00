package landsat

import (
	"fmt"

	"github.com/airbusgeo/godal"
	"github.com/heatwatch/landsat-uhi-cli/internal/analysis"
)

// WriteIndexRaster persists an index grid as a single-band float32
// GeoTIFF carrying the source scene's spatial metadata. Invalid pixels
// become the nodata sentinel here and nowhere else.
func WriteIndexRaster(path string, grid *analysis.Grid, scene *Scene) error {
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, grid.Width, grid.Height,
		godal.CreationOption("COMPRESS=LZW"))
	if err != nil {
		return fmt.Errorf("failed to create raster %s: %w", path, err)
	}
	defer ds.Close()

	if err := ds.SetGeoTransform(scene.GeoTransform); err != nil {
		return fmt.Errorf("failed to set geotransform on %s: %w", path, err)
	}
	if scene.Projection != "" {
		sr, err := godal.NewSpatialRefFromWKT(scene.Projection)
		if err != nil {
			return fmt.Errorf("failed to parse projection for %s: %w", path, err)
		}
		defer sr.Close()
		if err := ds.SetSpatialRef(sr); err != nil {
			return fmt.Errorf("failed to set projection on %s: %w", path, err)
		}
	}

	band := ds.Bands()[0]
	if err := band.SetNoData(analysis.Sentinel); err != nil {
		return fmt.Errorf("failed to set nodata on %s: %w", path, err)
	}

	buffer := make([]float64, len(grid.Data))
	for i, v := range grid.Data {
		if analysis.IsValid(v) {
			buffer[i] = v
		} else {
			buffer[i] = analysis.Sentinel
		}
	}
	if err := band.Write(0, 0, buffer, grid.Width, grid.Height); err != nil {
		return fmt.Errorf("failed to write raster %s: %w", path, err)
	}
	return nil
}
