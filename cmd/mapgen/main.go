package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/solerao/campusmetro/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		numLines    = flag.Int("lines", cfg.NumLines, "number of service lines to generate")
		perLine     = flag.Int("stations-per-line", cfg.StationsPerLine, "stations per line")
		crossLinks  = flag.Int("cross-links", cfg.CrossLinks, "extra unnamed walkway connections")
		scheme      = flag.String("scheme", cfg.Scheme, "coordinate scheme (geo or percent)")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "data", "directory to write campus.json and lines.json")
		writeStdout = flag.Bool("stdout", false, "write the dataset to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumLines:        *numLines,
		StationsPerLine: *perLine,
		CrossLinks:      *crossLinks,
		Scheme:          *scheme,
		Seed:            *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dataset, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d stations across %d lines into %s\n",
		len(dataset.Map.Stations), len(dataset.Lines), *outputDir)
}
