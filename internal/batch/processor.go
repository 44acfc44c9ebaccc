package batch

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"simple-watchface/internal/postprocess"
	"simple-watchface/internal/raster"
	"simple-watchface/internal/watchface"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Format      string
	RenderSize  int
	Supersample int
	Workers     int
	RoundMask   bool

	// NewRenderer is called once per worker.
	NewRenderer func() (*watchface.Renderer, error)

	Logger zerolog.Logger

	// ProgressInterval defaults to two seconds.
	ProgressInterval time.Duration
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Index   int
	Time    time.Time
	Mode    watchface.DrawMode
	File    string
	Digest  string
	Success bool
	Error   string
}

// Run renders all frames using a worker pool. Per-frame failures are
// reported in the results; the returned error is for setup failures and
// cancellation.
func Run(ctx context.Context, cfg Config, frames []Frame) ([]Result, error) {
	log := cfg.Logger.With().Str("component", "batch").Logger()
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info().
						Int64("done", p).
						Int("total", total).
						Float64("frames_per_sec", rate).
						Msg("Progress")
				}
			}
		}
	}()
	defer close(done)

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > total {
		workers = max(total, 1)
	}

	g, ctx := errgroup.WithContext(ctx)
	frameChan := make(chan int, workers*2)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			r, err := cfg.NewRenderer()
			if err != nil {
				return err
			}
			s, err := raster.NewSurface(cfg.RenderSize, cfg.Supersample)
			if err != nil {
				return err
			}
			defer s.Close()

			for idx := range frameChan {
				results[idx] = renderFrame(cfg, r, s, frames[idx])
				if !results[idx].Success {
					log.Warn().Int("frame", idx).Str("error", results[idx].Error).Msg("Frame failed")
				}
				processed.Add(1)
			}
			return nil
		})
	}

	// Send work
	g.Go(func() error {
		defer close(frameChan)
		for i := range frames {
			select {
			case frameChan <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return results, err
	}

	log.Info().
		Int("frames", total).
		Dur("elapsed", time.Since(start)).
		Msg("Batch complete")
	return results, nil
}

func renderFrame(cfg Config, r *watchface.Renderer, s *raster.Surface, fr Frame) Result {
	res := Result{
		Index: fr.Index,
		Time:  fr.Time,
		Mode:  fr.Mode,
		File:  fr.FileName(cfg.Format),
	}

	r.Render(s.Context(), s.Bounds(), fr.Time, fr.Mode)
	img, err := s.Capture()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if cfg.RoundMask {
		postprocess.CircleMask(img)
	}
	res.Digest = raster.Digest(img)

	if err := WriteImage(filepath.Join(cfg.OutputDir, res.File), img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// Failed counts unsuccessful results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
