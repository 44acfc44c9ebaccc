package geometry

import "math"

// Point is a position on the face in pixels, Y growing downwards.
type Point struct {
	X, Y float64
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Polar returns the point at distance r from center along an angle measured
// clockwise from 12 o'clock, in degrees.
func Polar(center Point, r, deg float64) Point {
	a := Deg2Rad(deg)
	return Point{
		X: center.X + math.Sin(a)*r,
		Y: center.Y - math.Cos(a)*r,
	}
}

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
