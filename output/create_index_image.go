package output

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/heatwatch/landsat-uhi-cli/internal/analysis"
)

// Plate geometry. Every index image is rendered at the same fixed
// resolution with white padding so periods compare side by side.
const (
	canvasWidth  = 1200
	canvasHeight = 900

	titleBand    = 60
	plateMargin  = 40
	colorbarArea = 120
	colorbarW    = 25
)

// ValueRange picks the display range for an index grid following the
// percentile-adaptive but policy-clamped scheme. Naive min/max would
// be dominated by outliers; the caps and the symmetric-zero anomaly
// range keep plates comparable across scenes. ok=false means no range
// applies (unclassified index without valid pixels).
func ValueRange(kind analysis.IndexKind, valid []float64) (vmin, vmax float64, ok bool) {
	switch kind {
	case analysis.IndexLST:
		if len(valid) == 0 {
			return 15, 50, true
		}
		vmin = math.Max(15, analysis.Percentile(valid, 2))
		vmax = math.Min(60, analysis.Percentile(valid, 98))
		return vmin, vmax, true
	case analysis.IndexUHI:
		if len(valid) == 0 {
			return -8, 8, true
		}
		absMax := math.Max(
			math.Abs(analysis.Percentile(valid, 2)),
			math.Abs(analysis.Percentile(valid, 98)),
		)
		magnitude := math.Min(absMax, 12)
		return -magnitude, magnitude, true
	default:
		if len(valid) == 0 {
			return 0, 0, false
		}
		return analysis.Percentile(valid, 5), analysis.Percentile(valid, 95), true
	}
}

func titleFor(kind analysis.IndexKind, period string) string {
	switch kind {
	case analysis.IndexLST:
		return fmt.Sprintf("Land Surface Temperature - %s", period)
	case analysis.IndexUHI:
		return fmt.Sprintf("Urban Heat Island - %s", period)
	case analysis.IndexNDVI:
		return fmt.Sprintf("NDVI - %s", period)
	}
	return period
}

func formatValue(kind analysis.IndexKind, v float64) string {
	return fmt.Sprintf("%.*f%s", kind.Precision(), v, kind.Unit())
}

// CreateIndexImage renders an index grid as a color plate with title,
// colorbar and a statistics box. Invalid pixels stay background white,
// never a data color.
func CreateIndexImage(grid *analysis.Grid, kind analysis.IndexKind, period, outputPath string) error {
	valid := grid.ValidValues()
	vmin, vmax, hasRange := ValueRange(kind, valid)
	ramp := Ramp(kind)

	// Rasterize the grid at native resolution; invalid pixels keep
	// zero alpha so the white canvas shows through.
	raster := image.NewRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	if hasRange && len(valid) > 0 {
		span := vmax - vmin
		for y := 0; y < grid.Height; y++ {
			for x := 0; x < grid.Width; x++ {
				v := grid.At(x, y)
				if !analysis.IsValid(v) {
					continue
				}
				t := 0.5
				if span > 0 {
					t = (v - vmin) / span
				}
				raster.Set(x, y, ramp.Lookup(t))
			}
		}
	}

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(titleFor(kind, period), canvasWidth/2, titleBand/2, 0.5, 0.5)

	// Fit the raster into the plot area, preserving aspect.
	plotW := float64(canvasWidth - 2*plateMargin - colorbarArea)
	plotH := float64(canvasHeight - titleBand - 2*plateMargin)
	scale := math.Min(plotW/float64(grid.Width), plotH/float64(grid.Height))
	drawW := float64(grid.Width) * scale
	drawH := float64(grid.Height) * scale
	offsetX := plateMargin + (plotW-drawW)/2
	offsetY := titleBand + plateMargin + (plotH-drawH)/2

	dc.Push()
	dc.Translate(offsetX, offsetY)
	dc.Scale(scale, scale)
	dc.DrawImage(raster, 0, 0)
	dc.Pop()

	if hasRange && len(valid) > 0 {
		drawColorbar(dc, ramp, kind, vmin, vmax)
	}
	if len(valid) > 0 {
		drawStatsBox(dc, kind, grid, offsetX, offsetY)
	}

	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save plate %s: %w", outputPath, err)
	}
	return nil
}

func drawColorbar(dc *gg.Context, ramp Colormap, kind analysis.IndexKind, vmin, vmax float64) {
	barX := float64(canvasWidth - colorbarArea + 20)
	barY := float64(titleBand + plateMargin)
	barH := float64(canvasHeight - titleBand - 2*plateMargin)

	for i := 0; i < int(barH); i++ {
		t := 1 - float64(i)/barH
		dc.SetColor(ramp.Lookup(t))
		dc.DrawRectangle(barX, barY+float64(i), colorbarW, 1)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(barX, barY, colorbarW, barH)
	dc.SetLineWidth(1)
	dc.Stroke()

	labelX := barX + colorbarW + 6
	dc.DrawStringAnchored(formatValue(kind, vmax), labelX, barY, 0, 0.5)
	dc.DrawStringAnchored(formatValue(kind, vmin), labelX, barY+barH, 0, 0.5)
	if unit := kind.Unit(); unit != "" {
		dc.DrawStringAnchored(unit, barX+colorbarW/2, barY+barH+16, 0.5, 0.5)
	}
}

func drawStatsBox(dc *gg.Context, kind analysis.IndexKind, grid *analysis.Grid, plotX, plotY float64) {
	min, max, ok := grid.ValidRange()
	if !ok {
		return
	}
	valid := grid.ValidValues()
	var sum float64
	for _, v := range valid {
		sum += v
	}
	mean := sum / float64(len(valid))

	lines := []string{
		fmt.Sprintf("Min: %s", formatValue(kind, min)),
		fmt.Sprintf("Max: %s", formatValue(kind, max)),
		fmt.Sprintf("Mean: %s", formatValue(kind, mean)),
	}

	const lineHeight = 18
	boxW := 0.0
	for _, line := range lines {
		if w, _ := dc.MeasureString(line); w > boxW {
			boxW = w
		}
	}
	boxW += 20
	boxH := float64(len(lines)*lineHeight + 12)

	x := plotX + 10
	y := plotY + 10
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 6)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 6)
	dc.SetLineWidth(1)
	dc.Stroke()

	for i, line := range lines {
		dc.DrawString(line, x+10, y+float64((i+1)*lineHeight))
	}
}
