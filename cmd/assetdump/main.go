package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ftrvxmtrx/tga"

	"simple-watchface/internal/asset"
	"simple-watchface/internal/batch"
	"simple-watchface/internal/config"
)

func dumpAsset(cache *asset.Cache, dir, name, format string) error {
	img, err := cache.Resolve(name)
	if err != nil {
		return err
	}

	dst := filepath.Join(dir, name+"."+format)
	if format == "tga" {
		f, err := os.Create(dst)
		if err != nil {
			return fmt.Errorf("create %s: %w", dst, err)
		}
		if err := tga.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", dst, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	} else if err := batch.WriteImage(dst, img, format); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}

	b := img.Bounds()
	fmt.Printf("OK  %s -> %s  (%dx%d)\n", name, dst, b.Dx(), b.Dy())
	return nil
}

func main() {
	out := flag.String("out", ".", "Output directory")
	format := flag.String("format", "png", "Output format: png, webp or tga")
	assetDir := flag.String("assets", "", "Asset directory overriding the built-ins")
	flag.Parse()

	switch *format {
	case config.FormatPNG, config.FormatWebP, "tga":
	default:
		fmt.Fprintf(os.Stderr, "ERR unknown format %q\n", *format)
		os.Exit(1)
	}
	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "ERR %v\n", err)
		os.Exit(1)
	}

	var index *asset.Index
	if *assetDir != "" {
		index = asset.BuildIndex(*assetDir)
	}
	cache := asset.NewCache(index)

	errors := 0
	for _, name := range asset.BuiltinNames() {
		if err := dumpAsset(cache, *out, name, *format); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
	fmt.Println("\nDone. All assets exported.")
}
