package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"simple-watchface/internal/app"
	"simple-watchface/internal/batch"
	"simple-watchface/internal/config"
	"simple-watchface/internal/logger"
	"simple-watchface/internal/watchface"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	startAt := flag.String("start", "", "First frame time, RFC3339 (default: now)")
	step := flag.Duration("step", time.Minute, "Time between frames")
	count := flag.Int("count", 60, "Number of instants to render")
	modes := flag.String("modes", "interactive", "Comma-separated draw modes (interactive, ambient)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	size := flag.Int("size", 0, "Face size in pixels (default: 454)")
	format := flag.String("format", "", "Image format: webp or png (default: webp)")
	round := flag.Bool("round", false, "Mask frames to a round screen")

	flag.Parse()

	cfg, err := config.FromFile(*configFile, config.Flags{
		OutputDir: *outputDir,
		Size:      *size,
		Workers:   *workers,
		Format:    *format,
		Round:     *round,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	loc, _ := cfg.Location()
	start := time.Now().In(loc)
	if *startAt != "" {
		start, err = time.ParseInLocation(time.RFC3339, *startAt, loc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad -start: %v\n", err)
			os.Exit(1)
		}
	}

	var drawModes []watchface.DrawMode
	for _, m := range strings.Split(*modes, ",") {
		dm, err := watchface.ParseDrawMode(m)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		drawModes = append(drawModes, dm)
	}

	frames, err := batch.Timeline{Start: start, Step: *step, Count: *count, Modes: drawModes}.Frames()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	face, err := app.Build(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading face: %v\n", err)
		os.Exit(1)
	}
	defer face.Close()

	fmt.Printf("Watch face renderer → %s\n", strings.ToUpper(cfg.Format))
	fmt.Printf("Frames: %d (%s from %s), Workers: %d\n", len(frames), *step, start.Format(time.RFC3339), cfg.Workers)
	fmt.Printf("Size: %dpx (x%d supersample), Output: %s\n", cfg.RenderSize, cfg.Supersample, cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	began := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      cfg.Format,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		RoundMask:   cfg.RoundMask,
		NewRenderer: face.NewRenderer,
		Logger:      log,
	}

	results, err := batch.Run(ctx, batchCfg, frames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(began).Seconds())

	failed := batch.Failed(results)
	fmt.Printf("Rendered: %d/%d\n", len(results)-failed, len(frames))

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			fmt.Printf("  %s: %s\n", r.File, r.Error)
			if shown++; shown == 20 {
				break
			}
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, batchCfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
