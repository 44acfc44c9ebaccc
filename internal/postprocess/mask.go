package postprocess

import (
	"image"
	"math"
)

// CircleMask clears everything outside the circle inscribed in img, in place,
// with a one pixel soft edge. It mimics how a round display crops the frame.
func CircleMask(img *image.NRGBA) {
	b := img.Bounds()
	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2
	r := math.Min(float64(b.Dx()), float64(b.Dy())) / 2

	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := float64(y) + 0.5 - cy
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			cover := r - math.Hypot(dx, dy) + 0.5
			if cover >= 1 {
				continue
			}
			i := img.PixOffset(x, y)
			if cover <= 0 {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
				continue
			}
			img.Pix[i+3] = uint8(float64(img.Pix[i+3])*cover + 0.5)
		}
	}
}
