package asset

import (
	"image"
	"sort"

	"github.com/gogpu/gg"

	"simple-watchface/internal/complication"
)

// Built-in asset resolution in pixels; the compositor scales them into slots.
const (
	BuiltinSmallSize = 128
	BuiltinBigWidth  = 288
)

var backgroundFill = gg.RGBA2(0, 0, 0, 0.55)

var builtins = map[string]func() *image.NRGBA{
	complication.AssetSmall:  drawSmall,
	complication.AssetRanged: drawRanged,
	complication.AssetBig:    drawBig,
}

// BuiltinNames lists the names served without an asset directory.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func drawSmall() *image.NRGBA {
	dc := gg.NewContext(BuiltinSmallSize, BuiltinSmallSize)
	defer dc.Close()

	r := float64(BuiltinSmallSize) / 2
	dc.SetColor(backgroundFill.Color())
	dc.DrawCircle(r, r, r)
	dc.Fill()
	return ToNRGBA(dc.Image())
}

func drawRanged() *image.NRGBA {
	dc := gg.NewContext(BuiltinSmallSize, BuiltinSmallSize)
	defer dc.Close()

	r := float64(BuiltinSmallSize) / 2
	dc.SetColor(backgroundFill.Color())
	dc.DrawCircle(r, r, r)
	dc.Fill()

	// inner disc leaves room for the value arc
	dc.SetColor(gg.RGBA2(0, 0, 0, 0.35).Color())
	dc.DrawCircle(r, r, r*0.78)
	dc.Fill()
	return ToNRGBA(dc.Image())
}

func drawBig() *image.NRGBA {
	dc := gg.NewContext(BuiltinBigWidth, BuiltinSmallSize)
	defer dc.Close()

	h := float64(BuiltinSmallSize)
	dc.SetColor(backgroundFill.Color())
	dc.DrawRoundedRectangle(0, 0, float64(BuiltinBigWidth), h, h/2)
	dc.Fill()
	return ToNRGBA(dc.Image())
}
