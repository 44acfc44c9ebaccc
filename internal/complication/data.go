package complication

import "image"

// Data is the payload a data source publishes for one slot.
type Data struct {
	Type  Type
	Text  string
	Title string

	// Ranged values
	Value float64
	Min   float64
	Max   float64

	Icon  image.Image
	Items []Data // List entries
}

// IsDrawable reports whether the payload has anything to show.
func (d Data) IsDrawable() bool {
	switch d.Type {
	case NoData, Empty, NotConfigured, NoPermission:
		return false
	}
	return true
}

// Progress returns the ranged value as a fraction of [Min, Max], clamped to [0, 1].
func (d Data) Progress() float64 {
	span := d.Max - d.Min
	if span <= 0 {
		return 0
	}
	p := (d.Value - d.Min) / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
