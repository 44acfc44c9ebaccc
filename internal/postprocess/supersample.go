// Package postprocess finishes captured frames: supersample reduction and
// the round-screen mask.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales img to width x height with premultiplied-alpha-aware
// CatmullRom filtering, which keeps translucent edges free of dark halos.
// Images already at or below the target size are returned as is.
func Downsample(img *image.NRGBA, width, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= width && b.Dy() <= height {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := img.Pix[si+3]
			if a == 0xFF {
				copy(premul.Pix[di:di+4], img.Pix[si:si+4])
				continue
			}
			af := float64(a) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*af + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*af + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*af + 0.5)
			premul.Pix[di+3] = a
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := dst.Pix[i+3]
		switch {
		case a == 0xFF:
			copy(out.Pix[i:i+4], dst.Pix[i:i+4])
			continue
		case a > 1:
			inv := 255.0 / float64(a)
			out.Pix[i] = clamp8(float64(dst.Pix[i]) * inv)
			out.Pix[i+1] = clamp8(float64(dst.Pix[i+1]) * inv)
			out.Pix[i+2] = clamp8(float64(dst.Pix[i+2]) * inv)
		}
		out.Pix[i+3] = a
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
