package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"simple-watchface/internal/app"
	"simple-watchface/internal/batch"
	"simple-watchface/internal/complication"
	"simple-watchface/internal/config"
	"simple-watchface/internal/logger"
	"simple-watchface/internal/postprocess"
	"simple-watchface/internal/raster"
	"simple-watchface/internal/settings"
	"simple-watchface/internal/watchface"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	at := flag.String("time", "", "Time to show, RFC3339 or 15:04:05 today (default: now)")
	mode := flag.String("mode", "interactive", "Draw mode: interactive or ambient")
	out := flag.String("out", "preview.webp", "Output file; extension picks the format")
	size := flag.Int("size", 0, "Face size in pixels (default: 454)")
	round := flag.Bool("round", false, "Mask to a round screen")
	highlight := flag.String("highlight", "", "Render the highlight layer for a slot (top, left, right, bottom, all)")
	tint := flag.String("tint", "#80FFFFFF", "Highlight tint")

	flag.Parse()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(*out)), ".")
	cfg, err := config.FromFile(*configFile, config.Flags{Size: *size, Format: format, Round: *round})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	loc, _ := cfg.Location()
	now, err := parseTime(*at, time.Now().In(loc))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad -time: %v\n", err)
		os.Exit(1)
	}
	drawMode, err := watchface.ParseDrawMode(*mode)
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

	surface, err := raster.NewSurface(cfg.RenderSize, cfg.Supersample)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer surface.Close()

	if *highlight != "" {
		hl, err := highlightLayer(*highlight, *tint)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		r.RenderHighlightLayer(surface.Context(), surface.Bounds(), now, hl)
	} else {
		r.Render(surface.Context(), surface.Bounds(), now, drawMode)
	}

	img, err := surface.Capture()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.RoundMask {
		postprocess.CircleMask(img)
	}
	if err := batch.WriteImage(*out, img, cfg.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("%s  %s  %s  %dpx  sha256=%s\n", *out, now.Format(time.RFC3339), drawMode, cfg.RenderSize, raster.Digest(img)[:12])
}

func parseTime(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	if t, err := time.ParseInLocation(time.RFC3339, s, now.Location()); err == nil {
		return t, nil
	}
	clock, err := time.ParseInLocation("15:04:05", s, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, now.Location()), nil
}

func highlightLayer(slot, tint string) (watchface.HighlightLayer, error) {
	argb, err := settings.ParseColor(tint)
	if err != nil {
		return watchface.HighlightLayer{}, err
	}
	hl := watchface.HighlightLayer{Tint: settings.ToNRGBA(argb)}
	if slot == "all" {
		return hl, nil
	}
	id, err := complication.SlotIDByName(slot)
	if err != nil {
		return watchface.HighlightLayer{}, err
	}
	hl.Slot = &id
	return hl, nil
}
