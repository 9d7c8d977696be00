package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/heatwatch/landsat-uhi-cli/internal/delivery"
	"github.com/heatwatch/landsat-uhi-cli/internal/notification"
	"github.com/heatwatch/landsat-uhi-cli/internal/properties"
	"github.com/joho/godotenv"
)

func printBanner() {
	figure1 := figure.NewFigure("HeatWatch", "isometric1", true)
	figure2 := figure.NewFigure("UHI", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

func runAnalysis(workers int) {
	defer func() {
		if r := recover(); r != nil {
			pc, file, line, ok := runtime.Caller(3)
			var location string
			if ok {
				fn := runtime.FuncForPC(pc)
				location = fmt.Sprintf("%s:%d in %s", file, line, fn.Name())
			} else {
				location = "Unknown location"
			}

			fmt.Printf("\n\033[31mPANIC: %v\033[0m\n", r)
			fmt.Printf("\033[31mLocation: %s\033[0m\n", location)
			fmt.Printf("\033[31mExiting...\033[0m\n")

			stack := debug.Stack()
			errMessage := fmt.Sprintf("HeatWatch CLI panic:\n\n%v\n\nLocation: %s\n\nStack trace:\n%s", r, location, stack)
			if err := notification.SendDiscordErrorNotification(errMessage); err != nil {
				fmt.Printf("\033[31mFailed to send notification: %s\033[0m\n", err.Error())
			}
			os.Exit(1)
		}
	}()

	analysis := delivery.NewAnalysis(properties.ClippedDir(), properties.ResultsDir(), workers)

	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("SIMPLE LANDSAT ANALYSIS")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Input:   %s\n", analysis.InputDir)
	fmt.Printf("Output:  %s\n", analysis.OutputDir)
	fmt.Printf("Workers: %d\n", analysis.Workers)

	if err := analysis.Run(); err != nil {
		fmt.Printf("\n\033[31mError running analysis: %s\033[0m\n", err.Error())
		if notifyErr := notification.SendDiscordErrorNotification(fmt.Sprintf("HeatWatch CLI\n\nError running analysis: %s", err.Error())); notifyErr != nil {
			fmt.Printf("\033[31mFailed to send notification: %s\033[0m\n", notifyErr.Error())
		}
		os.Exit(1)
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("ANALYSIS COMPLETED")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Results in: %s\n", analysis.OutputDir)
}

func main() {
	var workers int
	for i, arg := range os.Args {
		if strings.HasPrefix(arg, "--workers=") {
			workersArg := strings.TrimPrefix(arg, "--workers=")
			var err error
			workers, err = strconv.Atoi(workersArg)
			if err != nil {
				fmt.Printf("\033[31mInvalid workers value: %s\033[0m\n", workersArg)
				os.Exit(1)
			}
			break
		} else if arg == "--workers" && i+1 < len(os.Args) {
			var err error
			workers, err = strconv.Atoi(os.Args[i+1])
			if err != nil {
				fmt.Printf("\033[31mInvalid workers value: %s\033[0m\n", os.Args[i+1])
				os.Exit(1)
			}
			break
		}
	}

	if workers == 0 {
		workers = 1
		fmt.Printf("\033[33mNo worker count specified. Processing scenes sequentially.\033[0m\n")
	} else {
		fmt.Printf("\033[32mUsing %d workers.\033[0m\n", workers)
	}

	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			fmt.Printf("\033[33mNo .env file found, using defaults.\033[0m\n")
		}
	}

	godal.RegisterAll()

	printBanner()
	runAnalysis(workers)
}
