package complication

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
)

// ErrUnknownSlot is returned for a slot id outside the slot table.
var ErrUnknownSlot = errors.New("complication: unknown slot")

// SlotID identifies a complication slot.
type SlotID int

const (
	Top SlotID = iota
	Left
	Right
	Bottom
)

// SystemSource names a data source built into the platform.
type SystemSource int

const (
	NoSource SystemSource = iota
	DayAndDate
	WatchBattery
	StepCount
	NextEvent
)

func (s SystemSource) String() string {
	switch s {
	case DayAndDate:
		return "day_and_date"
	case WatchBattery:
		return "watch_battery"
	case StepCount:
		return "step_count"
	case NextEvent:
		return "next_event"
	}
	return "none"
}

// DataSourcePolicy is the source a slot uses until the user picks another.
type DataSourcePolicy struct {
	Source      SystemSource
	DefaultType Type
}

// Rect is a rectangle in unit coordinates, (0,0) top-left and (1,1)
// bottom-right of the face.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Scale maps the unit rectangle onto pixel bounds.
func (r Rect) Scale(b image.Rectangle) image.Rectangle {
	w, h := float64(b.Dx()), float64(b.Dy())
	return image.Rect(
		b.Min.X+int(math.Round(r.Left*w)),
		b.Min.Y+int(math.Round(r.Top*h)),
		b.Min.X+int(math.Round(r.Right*w)),
		b.Min.Y+int(math.Round(r.Bottom*h)),
	)
}

func rectCenteredAt(x, y, width, height float64) Rect {
	return Rect{
		Left:   x - width/2,
		Top:    y - height/2,
		Right:  x + width/2,
		Bottom: y + height/2,
	}
}

// Slot geometry in unit coordinates.
const (
	SmallDiameter = 0.33
	half          = 0.5
	quarter       = 0.25
)

// Slot is the static declaration of one complication position.
type Slot struct {
	ID                        SlotID
	NameKey                   string
	SupportedTypes            []Type
	DefaultPolicy             DataSourcePolicy
	VisibleWhenNotInteractive bool

	bounds func(Type) Rect
}

// Bounds returns the slot rectangle used for complications of type t.
// Shapes the slot has no room for get an empty rectangle.
func (s Slot) Bounds(t Type) Rect {
	return s.bounds(t)
}

// Supports reports whether the slot accepts data of type t.
func (s Slot) Supports(t Type) bool {
	for _, st := range s.SupportedTypes {
		if st == t {
			return true
		}
	}
	return false
}

// ShouldDraw reports whether the slot is drawn in the given mode: always when
// interactive, otherwise only if it stays visible in ambient.
func (s Slot) ShouldDraw(interactive bool) bool {
	return interactive || s.VisibleWhenNotInteractive
}

func (s Slot) String() string {
	return s.NameKey
}

// shapedBounds gives small types a round area and big types a wide one.
func shapedBounds(x, y float64) func(Type) Rect {
	small := rectCenteredAt(x, y, SmallDiameter, SmallDiameter)
	big := rectCenteredAt(x, y, 1-quarter, SmallDiameter)
	return func(t Type) Rect {
		switch {
		case t.IsSmall():
			return small
		case t.IsBig():
			return big
		}
		return Rect{}
	}
}

func fixedBounds(x, y float64) func(Type) Rect {
	r := rectCenteredAt(x, y, SmallDiameter, SmallDiameter)
	return func(Type) Rect { return r }
}

var wideTypes = []Type{RangedValue, LongText, ShortText, MonochromaticImage, List}
var narrowTypes = []Type{RangedValue, ShortText, MonochromaticImage}

// slots is indexed by SlotID and never mutated.
var slots = [...]Slot{
	Top: {
		ID:                        Top,
		NameKey:                   "complicationSlot_top",
		SupportedTypes:            wideTypes,
		DefaultPolicy:             DataSourcePolicy{Source: DayAndDate, DefaultType: LongText},
		VisibleWhenNotInteractive: true,
		bounds:                    shapedBounds(half, quarter),
	},
	Left: {
		ID:             Left,
		NameKey:        "complicationSlot_left",
		SupportedTypes: narrowTypes,
		DefaultPolicy:  DataSourcePolicy{Source: WatchBattery, DefaultType: RangedValue},
		bounds:         fixedBounds(quarter, half),
	},
	Right: {
		ID:             Right,
		NameKey:        "complicationSlot_right",
		SupportedTypes: narrowTypes,
		DefaultPolicy:  DataSourcePolicy{Source: StepCount, DefaultType: ShortText},
		bounds:         fixedBounds(1-quarter, half),
	},
	Bottom: {
		ID:             Bottom,
		NameKey:        "complicationSlot_bottom",
		SupportedTypes: wideTypes,
		DefaultPolicy:  DataSourcePolicy{Source: NextEvent, DefaultType: LongText},
		bounds:         shapedBounds(half, 1-quarter),
	},
}

// Slots returns a copy of the slot table in id order.
func Slots() []Slot {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = s.clone()
	}
	return out
}

// FromID looks up a slot by id.
func FromID(id SlotID) (Slot, error) {
	if id < 0 || int(id) >= len(slots) {
		return Slot{}, fmt.Errorf("%w: %d", ErrUnknownSlot, id)
	}
	return slots[id].clone(), nil
}

func (s Slot) clone() Slot {
	s.SupportedTypes = slices.Clone(s.SupportedTypes)
	return s
}
