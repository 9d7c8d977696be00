package landsat

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Footprint builds a GeoJSON feature covering the scene's extent in
// the raster's own coordinate reference, corners taken from the
// geotransform.
func (s *Scene) Footprint(period string) (*geojson.Feature, error) {
	gt := s.GeoTransform
	corner := func(px, py float64) orb.Point {
		return orb.Point{
			gt[0] + gt[1]*px + gt[2]*py,
			gt[3] + gt[4]*px + gt[5]*py,
		}
	}

	w, h := float64(s.Width), float64(s.Height)
	ring := orb.Ring{corner(0, 0), corner(w, 0), corner(w, h), corner(0, h), corner(0, 0)}
	polygon := orb.Polygon{ring}

	if planar.Area(polygon) == 0 {
		return nil, fmt.Errorf("degenerate footprint for scene %s", s.Path)
	}

	feature := geojson.NewFeature(polygon)
	feature.Properties = geojson.Properties{
		"period": period,
		"width":  s.Width,
		"height": s.Height,
		"source": s.Path,
	}
	return feature, nil
}

// WriteFootprint saves the scene footprint as a GeoJSON sidecar file.
func (s *Scene) WriteFootprint(path, period string) error {
	feature, err := s.Footprint(period)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create footprint file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(geojson.NewFeatureCollection().Append(feature)); err != nil {
		return fmt.Errorf("failed to encode footprint: %w", err)
	}
	return nil
}
