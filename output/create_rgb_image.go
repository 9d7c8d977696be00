package output

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/heatwatch/landsat-uhi-cli/internal/analysis"
	"github.com/heatwatch/landsat-uhi-cli/internal/landsat"
)

const (
	rgbCanvasWidth  = 1000
	rgbCanvasHeight = 800
	rgbCropPadding  = 20
)

// CreateRGBImage renders a true-color quicklook of the scene: crop to
// the valid-data bounding box, stretch each band between its 2nd and
// 98th percentile, paint invalid pixels white. A scene without a
// single valid RGB pixel produces no file.
func CreateRGBImage(scene *landsat.Scene, period, outputPath string) error {
	red := scene.Grid(landsat.Red)
	green := scene.Grid(landsat.Green)
	blue := scene.Grid(landsat.Blue)

	minX, minY := scene.Width, scene.Height
	maxX, maxY := -1, -1
	for y := 0; y < scene.Height; y++ {
		for x := 0; x < scene.Width; x++ {
			if red.At(x, y) > 0 && green.At(x, y) > 0 && blue.At(x, y) > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		fmt.Printf("  No valid RGB data for %s, skipping quicklook\n", period)
		return nil
	}

	minX = maxInt(0, minX-rgbCropPadding)
	minY = maxInt(0, minY-rgbCropPadding)
	maxX = minInt(scene.Width-1, maxX+rgbCropPadding)
	maxY = minInt(scene.Height-1, maxY+rgbCropPadding)
	cropW := maxX - minX + 1
	cropH := maxY - minY + 1

	stretch := func(g *analysis.Grid) func(x, y int) float64 {
		valid := make([]float64, 0, cropW*cropH)
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if red.At(x, y) > 0 && green.At(x, y) > 0 && blue.At(x, y) > 0 {
					valid = append(valid, g.At(x, y))
				}
			}
		}
		p2 := analysis.Percentile(valid, 2)
		p98 := analysis.Percentile(valid, 98)
		span := p98 - p2
		return func(x, y int) float64 {
			if span <= 0 {
				return 0.5
			}
			t := (g.At(x, y) - p2) / span
			return math.Min(1, math.Max(0, t))
		}
	}

	redAt := stretch(red)
	greenAt := stretch(green)
	blueAt := stretch(blue)

	raster := image.NewRGBA(image.Rect(0, 0, cropW, cropH))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if red.At(x, y) > 0 && green.At(x, y) > 0 && blue.At(x, y) > 0 {
				raster.Set(x-minX, y-minY, color.RGBA{
					R: uint8(redAt(x, y)*255 + 0.5),
					G: uint8(greenAt(x, y)*255 + 0.5),
					B: uint8(blueAt(x, y)*255 + 0.5),
					A: 255,
				})
			} else {
				raster.Set(x-minX, y-minY, color.White)
			}
		}
	}

	dc := gg.NewContext(rgbCanvasWidth, rgbCanvasHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("True Color - %s", period), rgbCanvasWidth/2, titleBand/2, 0.5, 0.5)

	plotW := float64(rgbCanvasWidth - 2*plateMargin)
	plotH := float64(rgbCanvasHeight - titleBand - 2*plateMargin)
	scale := math.Min(plotW/float64(cropW), plotH/float64(cropH))
	offsetX := plateMargin + (plotW-float64(cropW)*scale)/2
	offsetY := titleBand + plateMargin + (plotH-float64(cropH)*scale)/2

	dc.Push()
	dc.Translate(offsetX, offsetY)
	dc.Scale(scale, scale)
	dc.DrawImage(raster, 0, 0)
	dc.Pop()

	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save quicklook %s: %w", outputPath, err)
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
