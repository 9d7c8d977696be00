package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/gocarina/gocsv"
	"github.com/heatwatch/landsat-uhi-cli/internal/analysis"
	"github.com/heatwatch/landsat-uhi-cli/internal/cache"
	"github.com/heatwatch/landsat-uhi-cli/internal/notification"
	"github.com/heatwatch/landsat-uhi-cli/internal/properties"
	"github.com/heatwatch/landsat-uhi-cli/internal/utils"
	"github.com/schollz/progressbar/v3"
)

// PeriodLabel derives the scene's period from its filename by
// stripping the clipping-pipeline suffix, falling back to the bare
// extension for files that do not follow the convention.
func PeriodLabel(filename string) string {
	if trimmed := strings.TrimSuffix(filename, properties.SceneSuffix); trimmed != filename {
		return trimmed
	}
	trimmed := strings.TrimSuffix(filename, ".tif")
	return strings.TrimSuffix(trimmed, ".TIF")
}

// DiscoverScenes lists the scene rasters in the input directory in
// sorted order. A missing or empty directory is not an error.
func (a Analysis) DiscoverScenes() []string {
	entries, err := os.ReadDir(a.InputDir)
	if err != nil {
		fmt.Printf("Cannot read input folder %s: %v\n", a.InputDir, err)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".tif") || strings.HasSuffix(name, ".TIF") {
			files = append(files, name)
		}
	}
	sort.Strings(files)
	return files
}

// Run processes every discovered scene and writes the cross-scene
// summary. A failing scene is logged and excluded; it never aborts the
// rest of the batch. A run without any input scene completes after
// reporting, without error.
func (a Analysis) Run() error {
	files := a.DiscoverScenes()
	if len(files) == 0 {
		fmt.Println("No images found!")
		return nil
	}
	fmt.Printf("Found %d images\n", len(files))

	if err := os.MkdirAll(a.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	statsCache := cache.NewFileCache[analysis.SceneStats](a.OutputDir, "cache")
	bar := progressbar.Default(int64(len(files)), "Processing scenes")

	var mu sync.Mutex
	results := make(map[string]analysis.SceneStats)
	var completed []string

	processOne := func(name string) {
		defer bar.Add(1)
		period := PeriodLabel(name)
		imagePath := filepath.Join(a.InputDir, name)

		stats, ok := a.cachedStats(statsCache, imagePath, period)
		if !ok {
			var err error
			stats, err = a.ProcessScene(imagePath, period)
			if err != nil {
				fmt.Printf("ERROR processing %s: %v\n", period, err)
				if notifyErr := notification.SendDiscordErrorNotification(
					fmt.Sprintf("Scene %s failed: %v", period, err)); notifyErr != nil {
					fmt.Printf("Failed to send notification: %v\n", notifyErr)
				}
				return
			}
			a.storeStats(statsCache, imagePath, stats)
		}

		mu.Lock()
		results[period] = stats
		completed = append(completed, period)
		mu.Unlock()
	}

	if a.Workers > 1 {
		wp := workerpool.New(a.Workers)
		for _, name := range files {
			wp.Submit(func() { processOne(name) })
		}
		wp.StopWait()
	} else {
		for _, name := range files {
			processOne(name)
		}
	}
	bar.Finish()

	// Sequential runs keep completion order; parallel runs sort by
	// period so the summary stays deterministic.
	order := completed
	if a.Workers > 1 {
		order = utils.GetSortedKeys(results)
	}

	rows := BuildSummary(results, order)
	if len(rows) == 0 {
		fmt.Println("No scenes produced statistics, summary not written")
		return nil
	}

	summaryPath := filepath.Join(a.OutputDir, properties.SummaryFile)
	if err := a.writeSummary(summaryPath, rows); err != nil {
		return err
	}
	fmt.Printf("\nSummary saved: %s\n", summaryPath)

	if err := notification.SendDiscordSuccessNotification(
		fmt.Sprintf("Processed %d/%d scenes.\nSummary: %s", len(rows), len(files), summaryPath)); err != nil {
		fmt.Printf("Failed to send notification: %v\n", err)
	}
	return nil
}

// BuildSummary assembles the summary rows for the given period order,
// skipping periods without a result.
func BuildSummary(results map[string]analysis.SceneStats, order []string) []analysis.SceneStats {
	rows := make([]analysis.SceneStats, 0, len(order))
	for _, period := range order {
		if stats, ok := results[period]; ok {
			rows = append(rows, stats)
		}
	}
	return rows
}

func (a Analysis) writeSummary(path string, rows []analysis.SceneStats) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

// cachedStats returns a memoized row when the input file is unchanged
// and the scene's outputs are still on disk.
func (a Analysis) cachedStats(statsCache *cache.FileCache[analysis.SceneStats], imagePath, period string) (analysis.SceneStats, bool) {
	key, ok := a.cacheKey(statsCache, imagePath)
	if !ok {
		return analysis.SceneStats{}, false
	}
	stats, ok := statsCache.Get(key)
	if !ok || stats.Period != period {
		return analysis.SceneStats{}, false
	}
	for _, kind := range []analysis.IndexKind{analysis.IndexLST, analysis.IndexNDVI, analysis.IndexUHI} {
		tif := filepath.Join(a.OutputDir, period, fmt.Sprintf("%s_%s.tif", period, kind))
		if _, err := os.Stat(tif); err != nil {
			return analysis.SceneStats{}, false
		}
	}
	fmt.Printf("\nReusing cached statistics for %s\n", period)
	return stats, true
}

func (a Analysis) storeStats(statsCache *cache.FileCache[analysis.SceneStats], imagePath string, stats analysis.SceneStats) {
	key, ok := a.cacheKey(statsCache, imagePath)
	if !ok {
		return
	}
	if err := statsCache.Set(key, stats); err != nil {
		fmt.Printf("Failed to cache statistics: %v\n", err)
	}
}

func (a Analysis) cacheKey(statsCache *cache.FileCache[analysis.SceneStats], imagePath string) (string, bool) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return "", false
	}
	return statsCache.GenerateKey(imagePath, info.ModTime().UnixNano(), info.Size()), true
}
