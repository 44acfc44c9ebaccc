package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"time"

	"simple-watchface/internal/app"
	"simple-watchface/internal/batch"
	"simple-watchface/internal/config"
	"simple-watchface/internal/host"
	"simple-watchface/internal/logger"
	"simple-watchface/internal/watchface"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	duration := flag.Duration("duration", 10*time.Second, "How long to run (0: until interrupted)")
	ambientAfter := flag.Duration("ambient-after", 5*time.Second, "Switch to ambient after this long (0: never)")
	outputDir := flag.String("output", "", "Directory for the live frame (default: renders)")
	size := flag.Int("size", 0, "Face size in pixels (default: 454)")
	every := flag.Int("every", 60, "Write every Nth interactive frame to disk")

	flag.Parse()

	cfg, err := config.FromFile(*configFile, config.Flags{OutputDir: *outputDir, Size: *size})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	loc, err := cfg.Location()
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

	r, err := face.NewRenderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	livePath := filepath.Join(cfg.OutputDir, "live."+cfg.Format)
	var interactiveFrames, ambientFrames atomic.Int64

	sched, err := host.New(host.Options{
		Renderer:    r,
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		RoundMask:   cfg.RoundMask,
		Location:    loc,
		Logger:      log,
		Sink: func(f host.Frame) error {
			if f.Mode.IsInteractive() {
				n := interactiveFrames.Add(1)
				if (n-1)%int64(max(*every, 1)) != 0 {
					return nil
				}
			} else {
				ambientFrames.Add(1)
			}
			log.Debug().Int("seq", f.Seq).Stringer("mode", f.Mode).Msg("Frame written")
			return batch.WriteImage(livePath, f.Image, cfg.Format)
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// redraw as soon as the accent colour changes
	cancelSub := face.Settings.Subscribe(func(uint32) { sched.Invalidate() })
	defer cancelSub()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}
	if *ambientAfter > 0 {
		time.AfterFunc(*ambientAfter, func() { sched.SetMode(watchface.Ambient) })
	}

	fmt.Printf("Running face at %dpx, live frame: %s\n", cfg.RenderSize, livePath)
	if err := sched.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Frames: %d interactive, %d ambient\n", interactiveFrames.Load(), ambientFrames.Load())
}
