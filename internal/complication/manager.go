package complication

import (
	"fmt"
	"sync"
	"time"
)

// Source publishes complication data. want is the type the slot is
// configured for; a source may answer with Empty or NoData instead.
type Source interface {
	Data(now time.Time, want Type) Data
}

// SourceFunc adapts a function to Source.
type SourceFunc func(now time.Time, want Type) Data

func (f SourceFunc) Data(now time.Time, want Type) Data { return f(now, want) }

// Static is a Source that always returns the same payload.
type Static Data

func (s Static) Data(time.Time, Type) Data { return Data(s) }

// SlotState is a slot together with what it shows for one frame.
type SlotState struct {
	Slot    Slot
	Enabled bool
	Data    Data
}

type slotConfig struct {
	enabled bool
	source  Source
	typ     Type
}

// Manager tracks which source feeds each slot. Sources may be swapped while
// frames are being rendered.
type Manager struct {
	mu      sync.RWMutex
	configs [len(slots)]slotConfig
}

// NewManager returns a manager with every slot enabled and no sources bound.
func NewManager() *Manager {
	m := &Manager{}
	for i := range m.configs {
		m.configs[i] = slotConfig{enabled: true, typ: slots[i].DefaultPolicy.DefaultType}
	}
	return m
}

// SetSource binds a source to a slot, requesting payloads of type typ.
func (m *Manager) SetSource(id SlotID, src Source, typ Type) error {
	slot, err := FromID(id)
	if err != nil {
		return err
	}
	if !slot.Supports(typ) {
		return fmt.Errorf("complication: slot %s does not support %s", slot, typ)
	}

	m.mu.Lock()
	m.configs[id].source = src
	m.configs[id].typ = typ
	m.mu.Unlock()
	return nil
}

// SetEnabled turns a slot on or off.
func (m *Manager) SetEnabled(id SlotID, enabled bool) error {
	if _, err := FromID(id); err != nil {
		return err
	}
	m.mu.Lock()
	m.configs[id].enabled = enabled
	m.mu.Unlock()
	return nil
}

// Snapshot returns the state of every slot at now, in slot id order.
func (m *Manager) Snapshot(now time.Time) []SlotState {
	m.mu.RLock()
	configs := m.configs
	m.mu.RUnlock()

	out := make([]SlotState, len(configs))
	for i, c := range configs {
		st := SlotState{Slot: slots[i].clone(), Enabled: c.enabled, Data: Data{Type: NoData}}
		if c.source != nil {
			st.Data = c.source.Data(now, c.typ)
		}
		out[i] = st
	}
	return out
}
