package complication

import (
	"fmt"
	"strings"
)

// Type is the kind of payload a complication data source publishes.
type Type int

const (
	NoData Type = iota
	Empty
	NotConfigured
	ShortText
	LongText
	RangedValue
	MonochromaticImage
	SmallImage
	PhotoImage
	NoPermission
	GoalProgress
	WeightedElements
	List
)

// AllTypes lists every Type in declaration order.
var AllTypes = []Type{
	NoData, Empty, NotConfigured, ShortText, LongText, RangedValue,
	MonochromaticImage, SmallImage, PhotoImage, NoPermission,
	GoalProgress, WeightedElements, List,
}

var typeNames = map[Type]string{
	NoData:             "no_data",
	Empty:              "empty",
	NotConfigured:      "not_configured",
	ShortText:          "short_text",
	LongText:           "long_text",
	RangedValue:        "ranged_value",
	MonochromaticImage: "monochromatic_image",
	SmallImage:         "small_image",
	PhotoImage:         "photo_image",
	NoPermission:       "no_permission",
	GoalProgress:       "goal_progress",
	WeightedElements:   "weighted_elements",
	List:               "list",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseType resolves a type name as produced by String.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return NoData, fmt.Errorf("complication: unknown type %q", s)
}

// IsBig reports whether the type needs the wide slot shape.
func (t Type) IsBig() bool {
	return t == LongText || t == List
}

// IsSmall reports whether the type fits the round slot shape.
func (t Type) IsSmall() bool {
	return t == ShortText || t == RangedValue || t == MonochromaticImage
}

// Background asset names.
const (
	AssetRanged = "complication_ranged"
	AssetBig    = "complication_big"
	AssetSmall  = "complication_small"
)

// AssetName returns the background asset used behind a complication of this type.
func (t Type) AssetName() string {
	switch {
	case t == RangedValue:
		return AssetRanged
	case t.IsBig():
		return AssetBig
	}
	return AssetSmall
}
