package complication

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixtures pins slot contents from a file, keyed by slot name
// ("top", "left", "right", "bottom").
type Fixtures map[string]FixtureEntry

// FixtureEntry configures one slot. Nil fields keep the slot's defaults.
type FixtureEntry struct {
	Enabled *bool          `json:"enabled" yaml:"enabled"`
	Source  *string        `json:"source" yaml:"source"`
	Type    *string        `json:"type" yaml:"type"`
	Text    string         `json:"text" yaml:"text"`
	Title   string         `json:"title" yaml:"title"`
	Value   *float64       `json:"value" yaml:"value"`
	Min     *float64       `json:"min" yaml:"min"`
	Max     *float64       `json:"max" yaml:"max"`
	Items   []FixtureEntry `json:"items" yaml:"items"`
}

// LoadFixtures reads a JSON or YAML fixture file, picked by extension.
func LoadFixtures(path string) (Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("complication: read %s: %w", path, err)
	}

	var fx Fixtures
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &fx)
	default:
		err = json.Unmarshal(raw, &fx)
	}
	if err != nil {
		return nil, fmt.Errorf("complication: parse %s: %w", path, err)
	}
	return fx, nil
}

// SlotIDByName maps a lowercase slot name to its id.
func SlotIDByName(name string) (SlotID, error) {
	for _, s := range slots {
		if strings.TrimPrefix(s.NameKey, "complicationSlot_") == strings.ToLower(name) {
			return s.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
}

// ParseSystemSource resolves a source name as produced by SystemSource.String.
func ParseSystemSource(s string) (SystemSource, error) {
	for _, src := range []SystemSource{DayAndDate, WatchBattery, StepCount, NextEvent} {
		if src.String() == strings.ToLower(s) {
			return src, nil
		}
	}
	return NoSource, fmt.Errorf("complication: unknown source %q", s)
}

// Apply configures m from the fixtures. A fixture naming a system source is
// bound through resolve; otherwise its literal payload is pinned.
func (fx Fixtures) Apply(m *Manager, resolve func(SystemSource) Source) error {
	for name, e := range fx {
		id, err := SlotIDByName(name)
		if err != nil {
			return err
		}
		slot := slots[id]

		if e.Enabled != nil {
			if err := m.SetEnabled(id, *e.Enabled); err != nil {
				return err
			}
		}

		typ := slot.DefaultPolicy.DefaultType
		if e.Type != nil {
			if typ, err = ParseType(*e.Type); err != nil {
				return fmt.Errorf("complication: slot %s: %w", name, err)
			}
		}

		switch {
		case e.Source != nil:
			sys, err := ParseSystemSource(*e.Source)
			if err != nil {
				return fmt.Errorf("complication: slot %s: %w", name, err)
			}
			src := resolve(sys)
			if src == nil {
				return fmt.Errorf("complication: slot %s: source %s unavailable", name, sys)
			}
			if err := m.SetSource(id, src, typ); err != nil {
				return err
			}
		case e.Text != "" || e.Value != nil || len(e.Items) > 0:
			if err := m.SetSource(id, Static(e.data(typ)), typ); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e FixtureEntry) data(typ Type) Data {
	d := Data{Type: typ, Text: e.Text, Title: e.Title, Max: 100}
	if e.Value != nil {
		d.Value = *e.Value
	}
	if e.Min != nil {
		d.Min = *e.Min
	}
	if e.Max != nil {
		d.Max = *e.Max
	}
	for _, it := range e.Items {
		d.Items = append(d.Items, it.data(ShortText))
	}
	return d
}
