package watchface

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-watchface/internal/asset"
	"simple-watchface/internal/complication"
)

type recordingDrawer struct {
	mu    sync.Mutex
	drawn []complication.SlotID
	fail  map[complication.SlotID]bool
}

func (d *recordingDrawer) Draw(_ *gg.Context, t Target) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail[t.Slot.ID] {
		return errors.New("boom")
	}
	d.drawn = append(d.drawn, t.Slot.ID)
	return nil
}

type fixedSlots []complication.SlotState

func (f fixedSlots) Snapshot(time.Time) []complication.SlotState { return f }

func allSlots(data complication.Data) fixedSlots {
	var out fixedSlots
	for _, s := range complication.Slots() {
		out = append(out, complication.SlotState{Slot: s, Enabled: true, Data: data})
	}
	return out
}

type failingAssets struct{}

func (failingAssets) Resolve(name string) (*image.NRGBA, error) {
	return nil, asset.ErrNotFound
}

func render(t *testing.T, r *Renderer, size int, now time.Time, mode DrawMode) image.Image {
	t.Helper()
	dc := gg.NewContext(size, size)
	t.Cleanup(func() { _ = dc.Close() })
	r.Render(dc, image.Rect(0, 0, size, size), now, mode)
	return dc.Image()
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

var tenTen = time.Date(2024, 3, 9, 10, 10, 30, 0, time.UTC)

func TestRender_Idempotent(t *testing.T) {
	r, err := New(Options{Logger: zerolog.Nop()})
	require.NoError(t, err)

	a := render(t, r, 200, tenTen, Interactive)
	b := render(t, r, 200, tenTen, Interactive)
	assert.Equal(t, a, b)
}

func TestRender_AmbientHidesSecondHand(t *testing.T) {
	r, err := New(Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	bg := DefaultStyle().Background

	// At :30 the second hand points straight down; nothing else crosses
	// halfway between the centre and the bottom edge.
	interactive := render(t, r, 400, tenTen, Interactive)
	ambient := render(t, r, 400, tenTen, Ambient)

	assert.NotEqual(t, bg, nrgbaAt(interactive, 200, 300))
	assert.Equal(t, bg, nrgbaAt(ambient, 200, 300))
}

func TestRender_BackgroundPerMode(t *testing.T) {
	style := DefaultStyle()
	style.AmbientBackground = color.NRGBA{A: 0xFF}
	r, err := New(Options{Style: style, Logger: zerolog.Nop()})
	require.NoError(t, err)

	assert.Equal(t, style.Background, nrgbaAt(render(t, r, 200, tenTen, Interactive), 2, 2))
	assert.Equal(t, style.AmbientBackground, nrgbaAt(render(t, r, 200, tenTen, Ambient), 2, 2))
}

func TestRender_SlotVisibility(t *testing.T) {
	data := complication.Data{Type: complication.ShortText, Text: "42"}

	tests := []struct {
		name string
		mode DrawMode
		want []complication.SlotID
	}{
		{"interactive", Interactive, []complication.SlotID{complication.Top, complication.Left, complication.Right, complication.Bottom}},
		{"ambient", Ambient, []complication.SlotID{complication.Top}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &recordingDrawer{}
			r, err := New(Options{Slots: allSlots(data), Drawer: d, Logger: zerolog.Nop()})
			require.NoError(t, err)

			render(t, r, 200, tenTen, tt.mode)
			assert.Equal(t, tt.want, d.drawn)
		})
	}
}

func TestRender_SkipsDisabledAndEmpty(t *testing.T) {
	states := allSlots(complication.Data{Type: complication.ShortText})
	states[complication.Left].Enabled = false
	states[complication.Right].Data = complication.Data{Type: complication.Empty}
	// the bottom slot has no shape for photos
	states[complication.Bottom].Data = complication.Data{Type: complication.PhotoImage}

	d := &recordingDrawer{}
	r, err := New(Options{Slots: states, Drawer: d, Logger: zerolog.Nop()})
	require.NoError(t, err)

	render(t, r, 200, tenTen, Interactive)
	assert.Equal(t, []complication.SlotID{complication.Top}, d.drawn)
}

func TestRender_SwallowsComplicationErrors(t *testing.T) {
	d := &recordingDrawer{fail: map[complication.SlotID]bool{complication.Top: true}}
	r, err := New(Options{
		Slots:  allSlots(complication.Data{Type: complication.ShortText}),
		Drawer: d,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	assert.NotPanics(t, func() { render(t, r, 200, tenTen, Interactive) })
	assert.Equal(t, []complication.SlotID{complication.Left, complication.Right, complication.Bottom}, d.drawn)

	d = &recordingDrawer{}
	r, err = New(Options{
		Assets: failingAssets{},
		Slots:  allSlots(complication.Data{Type: complication.ShortText}),
		Drawer: d,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	render(t, r, 200, tenTen, Interactive)
	assert.Empty(t, d.drawn)
}

func TestRender_TargetCarriesAccent(t *testing.T) {
	accent := color.NRGBA{G: 0x80, B: 0xFF, A: 0xFF}
	var got []Target
	drawer := drawerFunc(func(_ *gg.Context, tg Target) error {
		got = append(got, tg)
		return nil
	})
	r, err := New(Options{
		Slots:  allSlots(complication.Data{Type: complication.RangedValue, Value: 5, Max: 10}),
		Drawer: drawer,
		Accent: func() color.NRGBA { return accent },
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	render(t, r, 400, tenTen, Interactive)
	require.Len(t, got, 4)
	assert.Equal(t, accent, got[0].Style.Border)
	assert.Equal(t, uint8(0x4D), got[0].Style.RangedSecondary.A)
	assert.Equal(t, image.Rect(134, 34, 266, 166), got[0].Rect)
	assert.NotNil(t, got[0].Background)
}

type drawerFunc func(*gg.Context, Target) error

func (f drawerFunc) Draw(dc *gg.Context, t Target) error { return f(dc, t) }

func TestSession_RecomputedOnResize(t *testing.T) {
	r, err := New(Options{Logger: zerolog.Nop()})
	require.NoError(t, err)

	s1 := r.sessionFor(image.Rect(0, 0, 400, 400))
	s2 := r.sessionFor(image.Rect(0, 0, 400, 400))
	assert.Same(t, s1, s2)
	assert.Greater(t, s1.dialRadius, 150.0)
	assert.Less(t, s1.dialRadius, 200.0)
	assert.Greater(t, s1.sizes[0], s1.sizes[1])

	s3 := r.sessionFor(image.Rect(0, 0, 200, 200))
	assert.NotSame(t, s1, s3)
	assert.Less(t, s3.dialRadius, s1.dialRadius)
}

func TestRenderHighlightLayer(t *testing.T) {
	r, err := New(Options{Logger: zerolog.Nop()})
	require.NoError(t, err)

	tint := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	bg := color.NRGBA{A: 0xFF}
	top := complication.Top

	dc := gg.NewContext(400, 400)
	defer dc.Close()
	r.RenderHighlightLayer(dc, image.Rect(0, 0, 400, 400), tenTen, HighlightLayer{
		Slot:           &top,
		Tint:           tint,
		BackgroundTint: bg,
	})
	img := dc.Image()

	assert.Equal(t, tint, nrgbaAt(img, 200, 100))
	// left slot and the face centre stay plain
	assert.Equal(t, bg, nrgbaAt(img, 100, 200))
	assert.Equal(t, bg, nrgbaAt(img, 200, 200))

	dc2 := gg.NewContext(400, 400)
	defer dc2.Close()
	r.RenderHighlightLayer(dc2, image.Rect(0, 0, 400, 400), tenTen, HighlightLayer{Tint: tint, BackgroundTint: bg})
	img = dc2.Image()
	for _, p := range []image.Point{{200, 100}, {100, 200}, {300, 200}, {200, 300}} {
		assert.Equal(t, tint, nrgbaAt(img, p.X, p.Y), "slot at %v", p)
	}
	assert.Equal(t, bg, nrgbaAt(img, 200, 200))
}

func TestParseDrawMode(t *testing.T) {
	m, err := ParseDrawMode("ambient")
	require.NoError(t, err)
	assert.Equal(t, Ambient, m)
	assert.False(t, m.IsInteractive())

	_, err = ParseDrawMode("sleep")
	assert.Error(t, err)
}
