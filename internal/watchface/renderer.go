package watchface

import (
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/gogpu/gg"
	"github.com/rs/zerolog"

	"simple-watchface/internal/asset"
	"simple-watchface/internal/complication"
	"simple-watchface/internal/geometry"
	"simple-watchface/internal/typeface"
)

// SlotSource reports the state of every complication slot for a frame.
type SlotSource interface {
	Snapshot(now time.Time) []complication.SlotState
}

// Target is one complication to be drawn.
type Target struct {
	Slot       complication.Slot
	Rect       image.Rectangle
	Background *image.NRGBA
	Data       complication.Data
	Style      ComplicationStyle
	Mode       DrawMode
	Now        time.Time
}

// ComplicationDrawer composes a complication's pixels inside its slot.
type ComplicationDrawer interface {
	Draw(dc *gg.Context, t Target) error
}

// Options configures a Renderer.
type Options struct {
	Typeface *typeface.Typeface
	Assets   asset.Resolver
	Slots    SlotSource         // nil draws no complications
	Drawer   ComplicationDrawer // nil draws no complications
	Accent   func() color.NRGBA // nil uses DefaultAccent
	Style    Style              // zero value uses DefaultStyle
	Logger   zerolog.Logger
}

// Renderer draws the analog face. Render calls must not overlap.
type Renderer struct {
	tf     *typeface.Typeface
	assets asset.Resolver
	slots  SlotSource
	drawer ComplicationDrawer
	accent func() color.NRGBA
	style  Style
	log    zerolog.Logger

	mu      sync.Mutex
	session *session
}

// session holds metrics that only change with the face size.
type session struct {
	size       image.Point
	sizes      [geometry.NumeralCount]float64
	heights    [geometry.NumeralCount]float64
	advances   [geometry.NumeralCount]float64
	dialRadius float64
}

// New creates a Renderer. A nil typeface falls back to the bundled font.
func New(opts Options) (*Renderer, error) {
	tf := opts.Typeface
	if tf == nil {
		var err error
		if tf, err = typeface.Default(); err != nil {
			return nil, err
		}
	}
	assets := opts.Assets
	if assets == nil {
		assets = asset.NewCache(nil)
	}
	style := opts.Style
	if style == (Style{}) {
		style = DefaultStyle()
	}
	accent := opts.Accent
	if accent == nil {
		accent = func() color.NRGBA { return DefaultAccent }
	}

	return &Renderer{
		tf:     tf,
		assets: assets,
		slots:  opts.Slots,
		drawer: opts.Drawer,
		accent: accent,
		style:  style,
		log:    opts.Logger.With().Str("component", "watchface").Logger(),
	}, nil
}

// Render draws one frame into bounds: background, dial, complications, then hands.
func (r *Renderer) Render(dc *gg.Context, bounds image.Rectangle, now time.Time, mode DrawMode) {
	s := r.sessionFor(bounds)

	r.drawBackground(dc, mode)
	r.drawDial(dc, bounds, s)
	r.drawComplications(dc, bounds, now, mode)
	r.drawHands(dc, bounds, now, mode)
}

// sessionFor returns the metrics for a face of this size, measuring glyphs
// only when the size changes.
func (r *Renderer) sessionFor(bounds image.Rectangle) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := bounds.Size()
	if r.session != nil && r.session.size == size {
		return r.session
	}

	s := &session{size: size}
	width := float64(size.X)
	for i := 0; i < geometry.NumeralCount; i++ {
		text := geometry.NumeralText(i)
		s.sizes[i] = geometry.NumeralSize(i, width)
		s.advances[i] = r.tf.Advance(text, s.sizes[i])
		h, err := r.tf.GlyphHeight(text, s.sizes[i])
		if err != nil {
			r.log.Warn().Err(err).Str("numeral", text).Msg("Glyph measurement failed")
			h = s.sizes[i]
		}
		s.heights[i] = h
	}
	margin := r.style.DigitsMarginRatio * width
	s.dialRadius = geometry.DialRadius(width/2, s.heights, margin)

	r.log.Debug().
		Int("width", size.X).
		Int("height", size.Y).
		Float64("dial_radius", s.dialRadius).
		Msg("Face metrics computed")

	r.session = s
	return s
}

func center(b image.Rectangle) geometry.Point {
	return geometry.Point{
		X: float64(b.Min.X) + float64(b.Dx())/2,
		Y: float64(b.Min.Y) + float64(b.Dy())/2,
	}
}

func (r *Renderer) drawBackground(dc *gg.Context, mode DrawMode) {
	bg := r.style.Background
	if !mode.IsInteractive() {
		bg = r.style.AmbientBackground
	}
	dc.ClearWithColor(gg.FromColor(bg))
}

func (r *Renderer) drawDial(dc *gg.Context, bounds image.Rectangle, s *session) {
	anchors := geometry.NumeralAnchors(center(bounds), s.dialRadius)

	dc.SetColor(r.style.Dial)
	for i, p := range anchors {
		dc.SetFont(r.tf.Face(s.sizes[i]))
		dc.DrawString(geometry.NumeralText(i), p.X-s.advances[i]/2, p.Y+s.heights[i]/2)
	}
}

func (r *Renderer) drawComplications(dc *gg.Context, bounds image.Rectangle, now time.Time, mode DrawMode) {
	if r.slots == nil || r.drawer == nil {
		return
	}
	style := complicationStyle(r.accent())

	for _, st := range r.slots.Snapshot(now) {
		if !st.Enabled || !st.Slot.ShouldDraw(mode.IsInteractive()) || !st.Data.IsDrawable() {
			continue
		}

		unit := st.Slot.Bounds(st.Data.Type)
		if unit.IsEmpty() {
			continue
		}

		bg, err := r.assets.Resolve(st.Data.Type.AssetName())
		if err != nil {
			r.log.Debug().Err(err).Stringer("slot", st.Slot).Msg("Complication skipped")
			continue
		}

		err = r.drawer.Draw(dc, Target{
			Slot:       st.Slot,
			Rect:       unit.Scale(bounds),
			Background: bg,
			Data:       st.Data,
			Style:      style,
			Mode:       mode,
			Now:        now,
		})
		if err != nil {
			r.log.Debug().Err(err).Stringer("slot", st.Slot).Msg("Complication skipped")
		}
	}
}

func (r *Renderer) handColor(h geometry.Hand) color.NRGBA {
	switch h {
	case geometry.HourHand:
		return r.style.HourHand
	case geometry.MinuteHand:
		return r.style.MinuteHand
	}
	return r.style.SecondHand
}

// drawHands places each hand at its own absolute angle; the second hand is
// left out in ambient mode.
func (r *Renderer) drawHands(dc *gg.Context, bounds image.Rectangle, now time.Time, mode DrawMode) {
	angles := geometry.HandAngles(now)
	c := center(bounds)
	height := float64(bounds.Dy())

	dc.SetLineCap(gg.LineCapRound)
	for _, spec := range geometry.Hands {
		if spec.Hand == geometry.SecondHand && !mode.IsInteractive() {
			continue
		}
		seg := spec.Segment(c, height, spec.Angle(angles))

		if blur := r.style.ShadowRatio * height; blur > 0 {
			shadow := r.style.Shadow
			shadow.A = uint8(float64(shadow.A) * 0.35)
			r.stroke(dc, seg, seg.Width+2*blur, shadow)
		}
		r.stroke(dc, seg, seg.Width, r.handColor(spec.Hand))
	}
}

func (r *Renderer) stroke(dc *gg.Context, seg geometry.Segment, width float64, c color.NRGBA) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawLine(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y)
	if err := dc.Stroke(); err != nil {
		r.log.Debug().Err(err).Msg("Stroke failed")
	}
}
