// Package main provides a command that converts a single spreadsheet to CSV.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sheetetl/internal/converter"
	"sheetetl/internal/logger"
)

func main() {
	inputPath := flag.String("input", "", "Path to input spreadsheet (.xlsx)")
	outputPath := flag.String("output", "", "Path to output CSV (default: input name with .csv)")
	flag.Parse()

	log := logger.NewLogger("info")

	if *inputPath == "" {
		fmt.Println("Usage: convert -input <report.xlsx> [-output <report.csv>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	out := *outputPath
	if out == "" {
		out = strings.TrimSuffix(*inputPath, filepath.Ext(*inputPath)) + ".csv"
	}

	fmt.Printf("📂 Reading: %s\n", *inputPath)

	if err := converter.New().Convert(*inputPath, out); err != nil {
		log.Error(fmt.Sprintf("❌ Conversion failed: %v", err), "input", *inputPath)
		os.Exit(1)
	}

	fmt.Printf("✅ Wrote %s\n", out)
}
