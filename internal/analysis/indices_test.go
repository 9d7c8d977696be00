package analysis

import (
	"math"
	"testing"
)

func gridFrom(width, height int, values []float64) *Grid {
	g := NewGrid(width, height)
	copy(g.Data, values)
	return g
}

// TestVegetationIndexKnownValues verifies the normalized difference on
// a 2x2 scene with hand-computed expectations.
func TestVegetationIndexKnownValues(t *testing.T) {
	red := gridFrom(2, 2, []float64{10, 20, 30, 40})
	nir := gridFrom(2, 2, []float64{40, 30, 20, 10})

	got := VegetationIndex(red, nir)
	want := []float64{0.6, 0.2, -0.2, -0.6}

	for i, expected := range want {
		if math.Abs(got.Data[i]-expected) > 1e-12 {
			t.Errorf("pixel %d: expected %f, got %f", i, expected, got.Data[i])
		}
	}
}

// TestVegetationIndexInvalidInputs checks that zero DN in either band
// marks the pixel invalid instead of producing a value.
func TestVegetationIndexInvalidInputs(t *testing.T) {
	red := gridFrom(2, 2, []float64{0, 20, 30, 0})
	nir := gridFrom(2, 2, []float64{40, 0, 20, 0})

	got := VegetationIndex(red, nir)

	for _, i := range []int{0, 1, 3} {
		if IsValid(got.Data[i]) {
			t.Errorf("pixel %d: expected invalid, got %f", i, got.Data[i])
		}
	}
	if !IsValid(got.Data[2]) {
		t.Errorf("pixel 2: expected valid result")
	}
}

// TestVegetationIndexRange ensures every valid output lies in [-1, 1].
func TestVegetationIndexRange(t *testing.T) {
	red := gridFrom(3, 2, []float64{1, 65535, 300, 12000, 7, 0})
	nir := gridFrom(3, 2, []float64{65535, 1, 250, 4, 9000, 100})

	got := VegetationIndex(red, nir)
	for i, v := range got.Data {
		if !IsValid(v) {
			continue
		}
		if v < -1 || v > 1 {
			t.Errorf("pixel %d: %f outside [-1, 1]", i, v)
		}
	}
}

// TestTemperatureEstimateRegimeRanges checks that outputs stay inside
// the classified temperature window for both thermal regimes.
func TestTemperatureEstimateRegimeRanges(t *testing.T) {
	cases := []struct {
		name     string
		values   []float64
		min, max float64
	}{
		{"cool regime", []float64{7000, 12000, 20000, 26000, 30000, 34000}, 10, 45},
		{"warm regime", []float64{36000, 42000, 50000, 58000, 62000, 65000}, 15, 50},
	}

	for _, tc := range cases {
		thermal := gridFrom(3, 2, tc.values)
		got := TemperatureEstimate(thermal)
		for i, v := range got.Data {
			if !IsValid(v) {
				t.Errorf("%s: pixel %d unexpectedly invalid", tc.name, i)
				continue
			}
			if v < tc.min || v > tc.max {
				t.Errorf("%s: pixel %d: %f outside [%f, %f]", tc.name, i, v, tc.min, tc.max)
			}
		}
	}
}

// TestTemperatureEstimatePlausibilityWindow ensures no output ever
// escapes the [-50, 80] window regardless of the DN distribution.
func TestTemperatureEstimatePlausibilityWindow(t *testing.T) {
	values := make([]float64, 64)
	for i := range values {
		values[i] = float64(i * 1024)
	}
	got := TemperatureEstimate(gridFrom(8, 8, values))
	for i, v := range got.Data {
		if IsValid(v) && (v < -50 || v > 80) {
			t.Errorf("pixel %d: %f outside plausibility window", i, v)
		}
	}
}

// TestTemperatureEstimateAllZeroThermal verifies that an all-nodata
// thermal band propagates to an all-invalid temperature grid and then
// to an all-invalid anomaly grid, without panicking.
func TestTemperatureEstimateAllZeroThermal(t *testing.T) {
	thermal := gridFrom(2, 2, []float64{0, 0, 0, 0})

	lst := TemperatureEstimate(thermal)
	for i, v := range lst.Data {
		if IsValid(v) {
			t.Errorf("lst pixel %d: expected invalid, got %f", i, v)
		}
	}

	uhi := HeatAnomaly(lst)
	for i, v := range uhi.Data {
		if IsValid(v) {
			t.Errorf("uhi pixel %d: expected invalid, got %f", i, v)
		}
	}
}

// TestTemperatureEstimateDegenerateRange checks the midpoint fill when
// the percentile span collapses to zero: one distinct non-zero DN.
func TestTemperatureEstimateDegenerateRange(t *testing.T) {
	cases := []struct {
		name     string
		dn       float64
		midpoint float64
	}{
		{"cool regime midpoint", 20000, 27.5},
		{"warm regime midpoint", 40000, 32.5},
	}

	for _, tc := range cases {
		thermal := gridFrom(2, 2, []float64{tc.dn, 0, tc.dn, tc.dn})
		got := TemperatureEstimate(thermal)

		for _, i := range []int{0, 2, 3} {
			if math.Abs(got.Data[i]-tc.midpoint) > 1e-9 {
				t.Errorf("%s: pixel %d: expected %f, got %f", tc.name, i, tc.midpoint, got.Data[i])
			}
		}
		if IsValid(got.Data[1]) {
			t.Errorf("%s: nodata pixel became valid", tc.name)
		}
	}
}

// TestHeatAnomalyMedianZero verifies the anomaly is exactly zero at
// the pixel holding the scene's median temperature.
func TestHeatAnomalyMedianZero(t *testing.T) {
	lst := gridFrom(2, 2, []float64{10, 20, 30, math.NaN()})

	got := HeatAnomaly(lst)

	if math.Abs(got.Data[1]) > 1e-12 {
		t.Errorf("median pixel: expected 0, got %f", got.Data[1])
	}
	if math.Abs(got.Data[0]+10) > 1e-12 {
		t.Errorf("pixel 0: expected -10, got %f", got.Data[0])
	}
	if math.Abs(got.Data[2]-10) > 1e-12 {
		t.Errorf("pixel 2: expected 10, got %f", got.Data[2])
	}
	if IsValid(got.Data[3]) {
		t.Errorf("invalid input pixel produced a valid anomaly")
	}
}

// TestHeatAnomalyEmptyInput checks the all-invalid passthrough.
func TestHeatAnomalyEmptyInput(t *testing.T) {
	lst := NewGrid(3, 3)
	got := HeatAnomaly(lst)
	if got.Width != 3 || got.Height != 3 {
		t.Fatalf("expected 3x3 output, got %dx%d", got.Width, got.Height)
	}
	for i, v := range got.Data {
		if IsValid(v) {
			t.Errorf("pixel %d: expected invalid, got %f", i, v)
		}
	}
}

// TestIndexEngineIdempotence runs the full index chain twice on the
// same input and expects identical outputs.
func TestIndexEngineIdempotence(t *testing.T) {
	thermal := gridFrom(2, 2, []float64{15000, 0, 42000, 33000})
	red := gridFrom(2, 2, []float64{10, 20, 0, 40})
	nir := gridFrom(2, 2, []float64{40, 30, 20, 10})

	lst1 := TemperatureEstimate(thermal)
	lst2 := TemperatureEstimate(thermal)
	ndvi1 := VegetationIndex(red, nir)
	ndvi2 := VegetationIndex(red, nir)
	uhi1 := HeatAnomaly(lst1)
	uhi2 := HeatAnomaly(lst2)

	pairs := []struct {
		name string
		a, b *Grid
	}{
		{"lst", lst1, lst2},
		{"ndvi", ndvi1, ndvi2},
		{"uhi", uhi1, uhi2},
	}
	for _, pair := range pairs {
		for i := range pair.a.Data {
			a, b := pair.a.Data[i], pair.b.Data[i]
			if !IsValid(a) && !IsValid(b) {
				continue
			}
			if a != b {
				t.Errorf("%s pixel %d: %f != %f", pair.name, i, a, b)
			}
		}
	}
}
