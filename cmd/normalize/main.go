// Package main provides a command that normalizes a single CSV file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"sheetetl/internal/logger"
	"sheetetl/internal/normalizer"
)

func main() {
	inputPath := flag.String("input", "", "Path to input CSV")
	outputPath := flag.String("output", "", "Path to output CSV (default: normalized_<input>)")
	fileName := flag.String("file-name", "", "Originating file name recorded in file_name (default: input base name)")
	flag.Parse()

	log := logger.NewLogger("info")

	if *inputPath == "" {
		fmt.Println("Usage: normalize -input <report.csv> [-output <out.csv>] [-file-name <report.xlsx>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	out := *outputPath
	if out == "" {
		out = filepath.Join(filepath.Dir(*inputPath), "normalized_"+filepath.Base(*inputPath))
	}

	name := *fileName
	if name == "" {
		name = filepath.Base(*inputPath)
	}

	fmt.Printf("📂 Reading: %s\n", *inputPath)

	if err := normalizer.NewProcessor().NormalizeFile(*inputPath, out, name); err != nil {
		log.Error(fmt.Sprintf("❌ Normalization failed: %v", err), "input", *inputPath)
		os.Exit(1)
	}

	fmt.Printf("✅ Wrote %s\n", out)
}
