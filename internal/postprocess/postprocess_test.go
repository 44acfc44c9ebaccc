package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fill(img *image.NRGBA, c color.NRGBA) {
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func TestDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	gray := color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xFF}
	fill(src, gray)

	out := Downsample(src, 20, 20)
	assert.Equal(t, image.Rect(0, 0, 20, 20), out.Bounds())
	assert.Equal(t, gray, out.NRGBAAt(10, 10))

	assert.Same(t, src, Downsample(src, 40, 40))
}

func TestDownsample_NoHalo(t *testing.T) {
	// a half-transparent edge against fully transparent black must keep its colour
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	fill(src.SubImage(image.Rect(0, 0, 20, 40)).(*image.NRGBA), red)

	out := Downsample(src, 20, 20)
	edge := out.NRGBAAt(10, 10)
	assert.Greater(t, edge.A, uint8(0))
	assert.Less(t, edge.A, uint8(0xFF))
	assert.GreaterOrEqual(t, edge.R, uint8(0xF0))
}

func TestCircleMask(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	fill(img, white)

	CircleMask(img)
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(99, 99))
	assert.Equal(t, white, img.NRGBAAt(50, 50))
	assert.Equal(t, white, img.NRGBAAt(50, 2))
}
