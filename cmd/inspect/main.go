package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"simple-watchface/internal/complication"
	"simple-watchface/internal/config"
	"simple-watchface/internal/geometry"
	"simple-watchface/internal/i18n"
	"simple-watchface/internal/logger"
	"simple-watchface/internal/typeface"
	"simple-watchface/internal/watchface"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	lang := flag.String("lang", "", "Language for slot names (default: config or en)")
	size := flag.Int("size", 0, "Face size in pixels (default: 454)")
	at := flag.String("time", "", "Time for hand angles, RFC3339 (default: now)")

	flag.Parse()

	cfg, err := config.FromFile(*configFile, config.Flags{Size: *size, Language: *lang})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	bundle, err := i18n.NewBundle(log)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	l := bundle.Localizer(cfg.Language)

	loc, _ := cfg.Location()
	now := time.Now().In(loc)
	if *at != "" {
		if now, err = time.ParseInLocation(time.RFC3339, *at, loc); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Slots
	fmt.Printf("%s (%s):\n", l.Msg(i18n.LabelSlots), cfg.Language)
	for _, s := range complication.Slots() {
		types := make([]string, len(s.SupportedTypes))
		for i, t := range s.SupportedTypes {
			types[i] = t.String()
		}
		fmt.Printf("  [%d] %s\n", s.ID, l.SlotName(s))
		fmt.Printf("    %s: %s\n", l.Msg(i18n.LabelTypes), strings.Join(types, ", "))
		fmt.Printf("    %s: %s/%s\n", l.Msg(i18n.LabelSource), s.DefaultPolicy.Source, s.DefaultPolicy.DefaultType)
		fmt.Printf("    %s: %s\n", l.Msg(i18n.LabelAmbient), l.YesNo(s.VisibleWhenNotInteractive))
		for _, t := range []complication.Type{complication.ShortText, complication.LongText} {
			r := s.Bounds(t)
			if r.IsEmpty() {
				continue
			}
			fmt.Printf("    %-10s [%.3f, %.3f, %.3f, %.3f]\n", t, r.Left, r.Top, r.Right, r.Bottom)
		}
	}

	// Numerals
	tf, err := typeface.Load(cfg.FontPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer tf.Close()

	width := float64(cfg.RenderSize)
	var heights [geometry.NumeralCount]float64
	fmt.Printf("\n%s (%s, %dpx):\n", l.Msg(i18n.LabelNumerals), tf.Name(), cfg.RenderSize)
	for i := 0; i < geometry.NumeralCount; i++ {
		text := geometry.NumeralText(i)
		sz := geometry.NumeralSize(i, width)
		h, err := tf.GlyphHeight(text, sz)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		heights[i] = h
		fmt.Printf("  %2s  size=%5.1f  height=%3.0f  advance=%5.1f\n", text, sz, h, tf.Advance(text, sz))
	}
	margin := watchface.DefaultStyle().DigitsMarginRatio * width
	radius := geometry.DialRadius(width/2, heights, margin)
	fmt.Printf("  dial radius: %.1f\n", radius)

	// Hands
	a := geometry.HandAngles(now)
	fmt.Printf("\n%s @ %s:\n", l.Msg(i18n.LabelHands), now.Format("15:04:05.000"))
	center := geometry.Point{X: width / 2, Y: width / 2}
	for _, spec := range geometry.Hands {
		deg := spec.Angle(a)
		seg := spec.Segment(center, width, deg)
		fmt.Printf("  %-6s %7.2f°  tip=(%.1f, %.1f)  width=%.1f\n", spec.Hand, deg, seg.To.X, seg.To.Y, seg.Width)
	}
}
