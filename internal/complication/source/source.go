// Package source implements the platform's built-in complication data sources.
package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"simple-watchface/internal/complication"
)

// DayAndDate publishes the current weekday and date.
type DayAndDate struct{}

func (DayAndDate) Data(now time.Time, want complication.Type) complication.Data {
	switch want {
	case complication.ShortText:
		return complication.Data{
			Type:  complication.ShortText,
			Text:  strconv.Itoa(now.Day()),
			Title: strings.ToUpper(now.Format("Mon")),
		}
	case complication.LongText:
		return complication.Data{Type: complication.LongText, Text: now.Format("Mon, Jan 2")}
	}
	return complication.Data{Type: complication.NoData}
}

// Battery publishes a battery level in percent.
type Battery struct {
	Level func() float64
}

// FixedBattery reports a constant level.
func FixedBattery(level float64) Battery {
	return Battery{Level: func() float64 { return level }}
}

func (b Battery) Data(_ time.Time, want complication.Type) complication.Data {
	level := b.Level()
	text := fmt.Sprintf("%.0f%%", level)
	switch want {
	case complication.RangedValue:
		return complication.Data{Type: complication.RangedValue, Value: level, Min: 0, Max: 100, Text: text}
	case complication.ShortText:
		return complication.Data{Type: complication.ShortText, Text: text}
	}
	return complication.Data{Type: complication.NoData}
}

// Steps publishes a step count against a daily goal.
type Steps struct {
	Count func() int
	Goal  int
}

// FixedSteps reports a constant count.
func FixedSteps(count, goal int) Steps {
	return Steps{Count: func() int { return count }, Goal: goal}
}

func (s Steps) Data(_ time.Time, want complication.Type) complication.Data {
	n := s.Count()
	switch want {
	case complication.ShortText:
		return complication.Data{Type: complication.ShortText, Text: strconv.Itoa(n)}
	case complication.RangedValue:
		goal := s.Goal
		if goal <= 0 {
			goal = 10000
		}
		return complication.Data{
			Type:  complication.RangedValue,
			Value: float64(n),
			Max:   float64(goal),
			Text:  strconv.Itoa(n),
		}
	}
	return complication.Data{Type: complication.NoData}
}
