package watchface

import "image/color"

// Style holds the colours and proportions of the face.
type Style struct {
	Background        color.NRGBA
	AmbientBackground color.NRGBA
	Dial              color.NRGBA
	HourHand          color.NRGBA
	MinuteHand        color.NRGBA
	SecondHand        color.NRGBA
	Shadow            color.NRGBA

	// DigitsMarginRatio is the gap between numerals and the face edge, as a
	// fraction of the face width.
	DigitsMarginRatio float64

	// ShadowRatio is the blur radius of the hand shadow as a fraction of the
	// face height. Zero disables it.
	ShadowRatio float64
}

// DefaultStyle returns the stock look: dark grey face, yellow numerals,
// red/green/blue hands.
func DefaultStyle() Style {
	darkGray := color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xFF}
	return Style{
		Background:        darkGray,
		AmbientBackground: darkGray,
		Dial:              color.NRGBA{R: 0xFF, G: 0xFF, A: 0xFF},
		HourHand:          color.NRGBA{R: 0xFF, A: 0xFF},
		MinuteHand:        color.NRGBA{G: 0xFF, A: 0xFF},
		SecondHand:        color.NRGBA{B: 0xFF, A: 0xFF},
		Shadow:            color.NRGBA{A: 0xFF},
		DigitsMarginRatio: 0.015,
		ShadowRatio:       0.008,
	}
}

// DefaultAccent is the accent colour before the user picks one.
var DefaultAccent = color.NRGBA{R: 0xFF, A: 0xFF}

// ComplicationStyle is the per-frame styling handed to the complication drawer.
type ComplicationStyle struct {
	Border          color.NRGBA
	RangedPrimary   color.NRGBA
	RangedSecondary color.NRGBA
	Text            color.NRGBA
	Title           color.NRGBA
}

// complicationStyle derives slot styling from the accent colour.
func complicationStyle(accent color.NRGBA) ComplicationStyle {
	secondary := accent
	secondary.A = 0x4D
	return ComplicationStyle{
		Border:          accent,
		RangedPrimary:   accent,
		RangedSecondary: secondary,
		Text:            color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Title:           color.NRGBA{R: 0xBB, G: 0xBB, B: 0xBB, A: 0xFF},
	}
}
