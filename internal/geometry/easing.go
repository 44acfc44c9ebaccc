package geometry

// Overshoot is an easing curve that runs past its target and settles back,
// f(t) = (t-1)²·((T+1)(t-1) + T) + 1.
type Overshoot struct {
	Tension float64
}

// Interpolate maps t in [0, 1] onto the curve. f(0) = 0 and f(1) = 1.
func (o Overshoot) Interpolate(t float64) float64 {
	t--
	return t*t*((o.Tension+1)*t+o.Tension) + 1
}

// SecondTickFraction is the point in each second after which the second hand
// starts moving to the next mark.
const SecondTickFraction = 0.92

// SecondHandEasing is the tick curve applied to the second hand.
var SecondHandEasing = Overshoot{Tension: 2}

// EasedSubsecond returns the eased progress of the second hand towards the
// next mark. It is 0 for the first 92% of a second.
func EasedSubsecond(fraction float64) float64 {
	if fraction <= SecondTickFraction {
		return 0
	}
	t := (fraction - SecondTickFraction) / (1 - SecondTickFraction)
	return SecondHandEasing.Interpolate(t)
}
