package geometry

import "time"

// Angles holds hand rotations in degrees, clockwise from 12 o'clock.
type Angles struct {
	Hour   float64
	Minute float64
	Second float64
}

// HandAngles computes hand rotations for a wall-clock time.
//
// The second angle can briefly exceed the next mark (and 360 at second 59)
// while the tick overshoots.
func HandAngles(t time.Time) Angles {
	hour, minute, second := t.Clock()
	fraction := float64(t.Nanosecond()) / float64(time.Second)

	return Angles{
		Hour:   float64(hour%12)*30 + float64(minute)*0.5,
		Minute: float64(minute)*6 + float64(second)*0.1,
		Second: float64(second)*6 + EasedSubsecond(fraction)*6,
	}
}
