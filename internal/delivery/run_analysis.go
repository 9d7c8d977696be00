package delivery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/heatwatch/landsat-uhi-cli/internal/analysis"
	"github.com/heatwatch/landsat-uhi-cli/internal/landsat"
	"github.com/heatwatch/landsat-uhi-cli/internal/utils"
	"github.com/heatwatch/landsat-uhi-cli/output"
)

// Analysis carries the batch configuration. It is constructed once per
// run and not mutated afterwards.
type Analysis struct {
	InputDir  string
	OutputDir string
	Workers   int
}

func NewAnalysis(inputDir, outputDir string, workers int) Analysis {
	if workers < 1 {
		workers = 1
	}
	return Analysis{InputDir: inputDir, OutputDir: outputDir, Workers: workers}
}

// ProcessScene runs the full index derivation for one scene: read the
// named bands, derive LST then NDVI then UHI (the anomaly consumes the
// temperature output), persist rasters, plates, quicklook, footprint
// and the per-scene statistics row. Failures propagate to the batch
// loop, which isolates them.
func (a Analysis) ProcessScene(imagePath, period string) (analysis.SceneStats, error) {
	fmt.Printf("\nProcessing %s...\n", period)

	var scene *landsat.Scene
	var err error
	utils.ExecuteWithGDALMutex(func() {
		scene, err = landsat.ReadScene(imagePath)
	})
	if err != nil {
		return analysis.SceneStats{}, err
	}
	fmt.Printf("  Size: %dx%d\n", scene.Width, scene.Height)

	for _, band := range []landsat.Band{landsat.Red, landsat.NIR, landsat.Thermal} {
		if min, max, ok := scene.DNRange(band); ok {
			fmt.Printf("  %s DN: %.0f - %.0f\n", band, min, max)
		} else {
			fmt.Printf("  %s DN: no non-zero values\n", band)
		}
	}

	fmt.Println("  Calculating LST...")
	lst := analysis.TemperatureEstimate(scene.Grid(landsat.Thermal))
	fmt.Println("  Calculating NDVI...")
	ndvi := analysis.VegetationIndex(scene.Grid(landsat.Red), scene.Grid(landsat.NIR))
	fmt.Println("  Calculating UHI...")
	uhi := analysis.HeatAnomaly(lst)

	grids := []struct {
		kind analysis.IndexKind
		grid *analysis.Grid
	}{
		{analysis.IndexLST, lst},
		{analysis.IndexNDVI, ndvi},
		{analysis.IndexUHI, uhi},
	}

	for _, g := range grids {
		if min, max, ok := g.grid.ValidRange(); ok {
			fmt.Printf("  %s: %.*f - %.*f%s\n", g.kind,
				g.kind.Precision(), min, g.kind.Precision(), max, g.kind.Unit())
		}
	}

	periodDir := filepath.Join(a.OutputDir, period)
	if err := os.MkdirAll(periodDir, os.ModePerm); err != nil {
		return analysis.SceneStats{}, fmt.Errorf("failed to create period folder: %w", err)
	}

	fmt.Println("  Saving outputs...")
	for _, g := range grids {
		tifPath := filepath.Join(periodDir, fmt.Sprintf("%s_%s.tif", period, g.kind))
		utils.ExecuteWithGDALMutex(func() {
			err = landsat.WriteIndexRaster(tifPath, g.grid, scene)
		})
		if err != nil {
			return analysis.SceneStats{}, err
		}
		fmt.Printf("    Saved: %s\n", filepath.Base(tifPath))

		pngPath := filepath.Join(periodDir, fmt.Sprintf("%s_%s.png", period, g.kind))
		if err := output.CreateIndexImage(g.grid, g.kind, period, pngPath); err != nil {
			return analysis.SceneStats{}, err
		}
		fmt.Printf("    Saved: %s\n", filepath.Base(pngPath))
	}

	rgbDir := filepath.Join(a.OutputDir, "RGB_Images")
	if err := os.MkdirAll(rgbDir, os.ModePerm); err != nil {
		return analysis.SceneStats{}, fmt.Errorf("failed to create quicklook folder: %w", err)
	}
	if err := output.CreateRGBImage(scene, period, filepath.Join(rgbDir, period+"_RGB.png")); err != nil {
		return analysis.SceneStats{}, err
	}

	footprintPath := filepath.Join(periodDir, period+"_footprint.geojson")
	if err := scene.WriteFootprint(footprintPath, period); err != nil {
		return analysis.SceneStats{}, err
	}

	stats := analysis.Summarize(period, lst, ndvi, uhi)
	if err := a.writeSceneStats(periodDir, period, stats); err != nil {
		return analysis.SceneStats{}, err
	}

	return stats, nil
}

func (a Analysis) writeSceneStats(periodDir, period string, stats analysis.SceneStats) error {
	statsPath := filepath.Join(periodDir, period+"_statistics.csv")
	file, err := os.Create(statsPath)
	if err != nil {
		return fmt.Errorf("failed to create statistics file: %w", err)
	}
	defer file.Close()

	rows := []analysis.SceneStats{stats}
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write statistics file: %w", err)
	}
	fmt.Printf("    Saved: %s\n", filepath.Base(statsPath))
	return nil
}
