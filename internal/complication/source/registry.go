package source

import "simple-watchface/internal/complication"

// Registry resolves system data sources to implementations.
type Registry struct {
	Battery  Battery
	Steps    Steps
	Calendar *Calendar // nil when no calendar is configured
}

// Resolve returns the implementation of s, or nil when it is unavailable.
func (r Registry) Resolve(s complication.SystemSource) complication.Source {
	switch s {
	case complication.DayAndDate:
		return DayAndDate{}
	case complication.WatchBattery:
		if r.Battery.Level != nil {
			return r.Battery
		}
	case complication.StepCount:
		if r.Steps.Count != nil {
			return r.Steps
		}
	case complication.NextEvent:
		if r.Calendar != nil {
			return r.Calendar
		}
	}
	return nil
}

// BindDefaults binds every slot to its default system source where available.
func (r Registry) BindDefaults(m *complication.Manager) error {
	for _, slot := range complication.Slots() {
		src := r.Resolve(slot.DefaultPolicy.Source)
		if src == nil {
			continue
		}
		if err := m.SetSource(slot.ID, src, slot.DefaultPolicy.DefaultType); err != nil {
			return err
		}
	}
	return nil
}
