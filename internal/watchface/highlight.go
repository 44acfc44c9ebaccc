package watchface

import (
	"image"
	"image/color"
	"time"

	"github.com/gogpu/gg"

	"simple-watchface/internal/complication"
)

// HighlightLayer describes what the editor wants highlighted.
type HighlightLayer struct {
	// Slot selects one slot; nil highlights every slot.
	Slot *complication.SlotID

	Tint           color.NRGBA
	BackgroundTint color.NRGBA
}

// RenderHighlightLayer paints slot shapes in the tint over a plain layer,
// used by editors to show which areas can be configured.
func (r *Renderer) RenderHighlightLayer(dc *gg.Context, bounds image.Rectangle, now time.Time, hl HighlightLayer) {
	dc.ClearWithColor(gg.FromColor(hl.BackgroundTint))

	var states []complication.SlotState
	if r.slots != nil {
		states = r.slots.Snapshot(now)
	} else {
		for _, s := range complication.Slots() {
			states = append(states, complication.SlotState{Slot: s, Enabled: true})
		}
	}

	dc.SetColor(hl.Tint)
	for _, st := range states {
		if hl.Slot != nil && *hl.Slot != st.Slot.ID {
			continue
		}
		typ := st.Data.Type
		if st.Slot.Bounds(typ).IsEmpty() {
			typ = st.Slot.DefaultPolicy.DefaultType
		}
		rect := st.Slot.Bounds(typ).Scale(bounds)
		if rect.Empty() {
			continue
		}
		x, y := float64(rect.Min.X), float64(rect.Min.Y)
		w, h := float64(rect.Dx()), float64(rect.Dy())
		dc.DrawRoundedRectangle(x, y, w, h, min(w, h)/2)
		if err := dc.Fill(); err != nil {
			r.log.Debug().Err(err).Stringer("slot", st.Slot).Msg("Highlight fill failed")
		}
	}
}
