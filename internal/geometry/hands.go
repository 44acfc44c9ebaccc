package geometry

// Hand identifies one of the three clock hands.
type Hand int

const (
	HourHand Hand = iota
	MinuteHand
	SecondHand
)

func (h Hand) String() string {
	switch h {
	case HourHand:
		return "hour"
	case MinuteHand:
		return "minute"
	case SecondHand:
		return "second"
	}
	return "unknown"
}

// HandSpec holds the proportions of a hand relative to the face height.
type HandSpec struct {
	Hand        Hand
	LengthRatio float64 // fraction of the face radius
	WidthRatio  float64 // fraction of the face height
	TailRatio   float64 // length behind the centre, fraction of the face height
}

// Hands lists the hands in drawing order, bottom to top.
var Hands = [3]HandSpec{
	{Hand: HourHand, LengthRatio: 0.6, WidthRatio: 0.02},
	{Hand: MinuteHand, LengthRatio: 0.9, WidthRatio: 0.01},
	{Hand: SecondHand, LengthRatio: 0.9, WidthRatio: 0.006, TailRatio: 0.9 / 20},
}

// Segment is a straight stroke between two points.
type Segment struct {
	From, To Point
	Width    float64
}

// Angle selects this hand's rotation from a set of angles.
func (s HandSpec) Angle(a Angles) float64 {
	switch s.Hand {
	case HourHand:
		return a.Hour
	case MinuteHand:
		return a.Minute
	}
	return a.Second
}

// Segment returns the stroke for the hand at an absolute angle on a face of
// the given height. Each hand is placed independently of the others.
func (s HandSpec) Segment(center Point, faceHeight, deg float64) Segment {
	radius := faceHeight / 2
	from := center
	if s.TailRatio > 0 {
		from = Polar(center, -s.TailRatio*faceHeight, deg)
	}
	return Segment{
		From:  from,
		To:    Polar(center, s.LengthRatio*radius, deg),
		Width: s.WidthRatio * faceHeight,
	}
}
