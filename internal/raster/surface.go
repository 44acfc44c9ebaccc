// Package raster owns the drawing surface a frame is rendered into and turns
// it into a finished image.
package raster

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"simple-watchface/internal/postprocess"
)

// Surface is a square canvas drawn at size*supersample pixels and captured
// at size pixels.
type Surface struct {
	size        int
	supersample int
	dc          *gg.Context
}

// NewSurface allocates a surface for a face of size pixels.
func NewSurface(size, supersample int) (*Surface, error) {
	if size <= 0 {
		return nil, fmt.Errorf("raster: invalid size %d", size)
	}
	if supersample < 1 {
		supersample = 1
	}
	n := size * supersample
	return &Surface{
		size:        size,
		supersample: supersample,
		dc:          gg.NewContext(n, n),
	}, nil
}

// Context returns the gg context to draw on.
func (s *Surface) Context() *gg.Context {
	return s.dc
}

// Bounds returns the drawing bounds in supersampled pixels.
func (s *Surface) Bounds() image.Rectangle {
	n := s.size * s.supersample
	return image.Rect(0, 0, n, n)
}

// Size returns the output size in pixels.
func (s *Surface) Size() int {
	return s.size
}

// Capture returns a copy of the current pixels at output size.
func (s *Surface) Capture() (*image.NRGBA, error) {
	if err := s.dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("raster: flush: %w", err)
	}
	img := ToNRGBA(s.dc.Image())
	if s.supersample > 1 {
		img = postprocess.Downsample(img, s.size, s.size)
	}
	return img, nil
}

// Close releases the context.
func (s *Surface) Close() error {
	return s.dc.Close()
}

// ToNRGBA converts src to non-premultiplied RGBA, always returning a new image.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Digest returns a hex SHA-256 of the image's size and pixels, for comparing
// frames without keeping them.
func Digest(img *image.NRGBA) string {
	h := sha256.New()
	b := img.Bounds()
	fmt.Fprintf(h, "%dx%d:", b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		h.Write(img.Pix[off : off+b.Dx()*4])
	}
	return hex.EncodeToString(h.Sum(nil))
}
