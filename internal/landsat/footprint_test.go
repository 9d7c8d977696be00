package landsat

import "testing"

// TestFootprintCorners checks the geotransform-to-polygon mapping on a
// north-up raster.
func TestFootprintCorners(t *testing.T) {
	scene := &Scene{
		Path:         "test.tif",
		Width:        100,
		Height:       50,
		GeoTransform: [6]float64{500000, 30, 0, 4000000, 0, -30},
	}

	feature, err := scene.Footprint("test_period")
	if err != nil {
		t.Fatalf("Footprint failed: %v", err)
	}

	if feature.Properties["period"] != "test_period" {
		t.Errorf("expected period property, got %v", feature.Properties["period"])
	}

	bound := feature.Geometry.Bound()
	if bound.Min[0] != 500000 || bound.Max[0] != 503000 {
		t.Errorf("unexpected x extent: %f - %f", bound.Min[0], bound.Max[0])
	}
	if bound.Min[1] != 3998500 || bound.Max[1] != 4000000 {
		t.Errorf("unexpected y extent: %f - %f", bound.Min[1], bound.Max[1])
	}
}

// TestFootprintDegenerate rejects a zero-area extent.
func TestFootprintDegenerate(t *testing.T) {
	scene := &Scene{Path: "flat.tif", Width: 0, Height: 0}
	if _, err := scene.Footprint("p"); err == nil {
		t.Errorf("expected error for zero-area footprint")
	}
}
