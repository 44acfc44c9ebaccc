// Package drawable is the stock complication look: a translucent background
// asset framed by an accent border, with text, a value arc or an icon inside.
package drawable

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg"

	"simple-watchface/internal/complication"
	"simple-watchface/internal/typeface"
	"simple-watchface/internal/watchface"
)

// Proportions relative to the slot height.
const (
	borderRatio    = 0.03
	arcRatio       = 0.07
	textRatio      = 0.26
	titleRatio     = 0.16
	iconRatio      = 0.5
	maxTextWidth   = 0.8
	maxListEntries = 3
)

// ambientGray replaces the accent colours while the face is dimmed.
var ambientGray = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}

// Drawer draws complications. Safe for concurrent use by Renderers that
// each own their gg.Context.
type Drawer struct {
	tf *typeface.Typeface

	mu   sync.Mutex
	bufs map[image.Image]*gg.ImageBuf
}

// New creates a drawer that writes text with tf.
func New(tf *typeface.Typeface) *Drawer {
	return &Drawer{tf: tf, bufs: make(map[image.Image]*gg.ImageBuf)}
}

// Draw implements watchface.ComplicationDrawer.
func (d *Drawer) Draw(dc *gg.Context, t watchface.Target) error {
	if t.Rect.Empty() {
		return fmt.Errorf("drawable: %s: empty bounds", t.Slot)
	}

	if err := validate(t); err != nil {
		return err
	}

	style := t.Style
	if !t.Mode.IsInteractive() {
		style = ambientStyle(style)
	}

	dc.Push()
	defer dc.Pop()

	if t.Background != nil && t.Mode.IsInteractive() {
		d.drawImage(dc, t.Background, t.Rect)
	}
	if err := d.drawBorder(dc, t.Rect, style.Border); err != nil {
		return err
	}

	switch t.Data.Type {
	case complication.ShortText, complication.LongText:
		d.drawText(dc, t.Rect, t.Data.Title, t.Data.Text, style)
	case complication.RangedValue, complication.GoalProgress, complication.WeightedElements:
		if err := d.drawRanged(dc, t.Rect, t.Data, style); err != nil {
			return err
		}
	case complication.MonochromaticImage, complication.SmallImage, complication.PhotoImage:
		d.drawIcon(dc, t.Rect, t.Data.Icon)
	case complication.List:
		d.drawText(dc, t.Rect, t.Data.Title, listText(t.Data.Items), style)
	}
	return nil
}

// validate rejects payloads Draw cannot render, before anything is painted.
func validate(t watchface.Target) error {
	switch t.Data.Type {
	case complication.ShortText, complication.LongText, complication.List,
		complication.RangedValue, complication.GoalProgress, complication.WeightedElements:
		return nil
	case complication.MonochromaticImage, complication.SmallImage, complication.PhotoImage:
		if t.Data.Icon == nil {
			return fmt.Errorf("drawable: %s: %s without icon", t.Slot, t.Data.Type)
		}
		return nil
	}
	return fmt.Errorf("drawable: %s: cannot draw %s", t.Slot, t.Data.Type)
}

func ambientStyle(s watchface.ComplicationStyle) watchface.ComplicationStyle {
	secondary := ambientGray
	secondary.A = s.RangedSecondary.A
	return watchface.ComplicationStyle{
		Border:          ambientGray,
		RangedPrimary:   ambientGray,
		RangedSecondary: secondary,
		Text:            ambientGray,
		Title:           ambientGray,
	}
}

func (d *Drawer) imageBuf(img image.Image) *gg.ImageBuf {
	d.mu.Lock()
	defer d.mu.Unlock()

	if b, ok := d.bufs[img]; ok {
		return b
	}
	b := gg.ImageBufFromImage(img)
	d.bufs[img] = b
	return b
}

func (d *Drawer) drawImage(dc *gg.Context, img image.Image, r image.Rectangle) {
	dc.DrawImageEx(d.imageBuf(img), gg.DrawImageOptions{
		X:             float64(r.Min.X),
		Y:             float64(r.Min.Y),
		DstWidth:      float64(r.Dx()),
		DstHeight:     float64(r.Dy()),
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
	})
}

func (d *Drawer) drawBorder(dc *gg.Context, r image.Rectangle, c color.NRGBA) error {
	w, h := float64(r.Dx()), float64(r.Dy())
	lw := math.Max(1, borderRatio*h)
	inset := lw / 2

	dc.SetColor(c)
	dc.SetLineWidth(lw)
	dc.DrawRoundedRectangle(float64(r.Min.X)+inset, float64(r.Min.Y)+inset, w-lw, h-lw, (math.Min(w, h)-lw)/2)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("drawable: border: %w", err)
	}
	return nil
}

// fitSize shrinks size until s fits in width.
func (d *Drawer) fitSize(s string, size, width float64) float64 {
	for size > 4 && d.tf.Advance(s, size) > width {
		size *= 0.9
	}
	return size
}

func (d *Drawer) drawText(dc *gg.Context, r image.Rectangle, title, text string, style watchface.ComplicationStyle) {
	h := float64(r.Dy())
	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + h/2
	width := maxTextWidth * float64(r.Dx())

	textY := cy
	if title != "" {
		textY = cy - h*0.08
		dc.SetColor(style.Title)
		dc.SetFont(d.tf.Face(d.fitSize(title, titleRatio*h, width)))
		dc.DrawStringAnchored(title, cx, cy+h*0.18, 0.5, 0.5)
	}
	if text == "" {
		return
	}
	dc.SetColor(style.Text)
	dc.SetFont(d.tf.Face(d.fitSize(text, textRatio*h, width)))
	dc.DrawStringAnchored(text, cx, textY, 0.5, 0.5)
}

// drawRanged draws the full track in the secondary colour and the value arc
// clockwise from twelve o'clock in the primary colour.
func (d *Drawer) drawRanged(dc *gg.Context, r image.Rectangle, data complication.Data, style watchface.ComplicationStyle) error {
	size := math.Min(float64(r.Dx()), float64(r.Dy()))
	lw := math.Max(1, arcRatio*size)
	radius := size/2 - borderRatio*size - lw
	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2

	dc.SetLineCap(gg.LineCapButt)
	dc.SetLineWidth(lw)

	dc.SetColor(style.RangedSecondary)
	dc.ClearPath()
	dc.DrawCircle(cx, cy, radius)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("drawable: track: %w", err)
	}

	if p := data.Progress(); p > 0 {
		start := -math.Pi / 2
		dc.SetColor(style.RangedPrimary)
		dc.ClearPath()
		dc.DrawArc(cx, cy, radius, start, start+p*2*math.Pi)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("drawable: arc: %w", err)
		}
	}

	text := data.Text
	if text == "" {
		text = fmt.Sprintf("%.0f", data.Value)
	}
	inner := image.Rect(
		int(cx-radius), int(cy-radius),
		int(cx+radius), int(cy+radius),
	)
	if data.Icon != nil {
		d.drawIcon(dc, inner, data.Icon)
		return nil
	}
	d.drawText(dc, inner, data.Title, text, style)
	return nil
}

func (d *Drawer) drawIcon(dc *gg.Context, r image.Rectangle, icon image.Image) {
	side := iconRatio * math.Min(float64(r.Dx()), float64(r.Dy()))
	b := icon.Bounds()
	scale := side / math.Max(float64(b.Dx()), float64(b.Dy()))
	w, h := float64(b.Dx())*scale, float64(b.Dy())*scale
	x := float64(r.Min.X) + (float64(r.Dx())-w)/2
	y := float64(r.Min.Y) + (float64(r.Dy())-h)/2

	dc.DrawImageEx(d.imageBuf(icon), gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
	})
}

func listText(items []complication.Data) string {
	var parts []string
	for _, it := range items {
		if it.Text == "" {
			continue
		}
		parts = append(parts, it.Text)
		if len(parts) == maxListEntries {
			break
		}
	}
	return strings.Join(parts, " · ")
}
