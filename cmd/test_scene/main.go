package main

import (
	"fmt"
	"log"
	"os"

	"github.com/airbusgeo/godal"
	"github.com/heatwatch/landsat-uhi-cli/internal/delivery"
	"github.com/heatwatch/landsat-uhi-cli/internal/properties"
	"github.com/joho/godotenv"
)

func main() {
	// Hardcoded test parameters - modify these to test different scenes
	sceneFile := "hot_may_2023_clipped_NGP.tif"

	fmt.Println("=== HeatWatch Test Scene Run ===")
	fmt.Printf("Scene: %s\n", sceneFile)
	fmt.Println()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		fmt.Println("Make sure ROOT_PATH points at the folder holding Clipped_Images/")
		fmt.Println()
	}

	godal.RegisterAll()

	analysis := delivery.NewAnalysis(properties.ClippedDir(), properties.ResultsDir(), 1)

	period := delivery.PeriodLabel(sceneFile)
	imagePath := fmt.Sprintf("%s/%s", analysis.InputDir, sceneFile)
	if _, err := os.Stat(imagePath); err != nil {
		log.Fatalf("Scene not found: %v", err)
	}

	stats, err := analysis.ProcessScene(imagePath, period)
	if err != nil {
		log.Fatalf("Failed to process scene: %v", err)
	}

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Period: %s\n", stats.Period)
	fmt.Printf("LST mean:  %.3f\n", float64(stats.LSTMean))
	fmt.Printf("NDVI mean: %.3f\n", float64(stats.NDVIMean))
	fmt.Printf("UHI std:   %.3f\n", float64(stats.UHIStd))

	fmt.Println("\n✓ Test completed successfully!")
}
