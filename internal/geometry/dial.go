package geometry

import (
	"math"
	"strconv"
)

// NumeralCount is the number of hour numerals on the dial.
const NumeralCount = 12

// Numeral font sizes as a fraction of the face width.
const (
	NumeralMajorSizeRatio = 1.0 / 8.0
	NumeralMinorSizeRatio = 1.0 / 12.0
)

// NumeralText returns the label drawn at a dial position: "12" at the top.
func NumeralText(i int) string {
	if i == 0 {
		return "12"
	}
	return strconv.Itoa(i)
}

// IsMajor reports whether position i (0..11) uses the large font (12, 3, 6, 9).
func IsMajor(i int) bool {
	return i%3 == 0
}

// NumeralSize returns the font size of numeral i on a face of the given width.
func NumeralSize(i int, faceWidth float64) float64 {
	if IsMajor(i) {
		return faceWidth * NumeralMajorSizeRatio
	}
	return faceWidth * NumeralMinorSizeRatio
}

// DialRadius returns the largest radius at which every numeral fits inside
// the face: the minimum over all numerals of faceRadius - height/2 - margin.
func DialRadius(faceRadius float64, heights [NumeralCount]float64, margin float64) float64 {
	r := math.MaxFloat64
	for _, h := range heights {
		r = math.Min(r, faceRadius-h/2-margin)
	}
	return r
}

// NumeralAnchors returns the centre of each numeral, position i at i*30°.
func NumeralAnchors(center Point, dialRadius float64) [NumeralCount]Point {
	var pts [NumeralCount]Point
	for i := range pts {
		pts[i] = Polar(center, dialRadius, float64(i)*30)
	}
	return pts
}
