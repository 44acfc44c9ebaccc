// Package typeface loads the dial font and measures glyphs.
package typeface

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
)

// Typeface is a parsed font usable at any size. Safe for concurrent use.
type Typeface struct {
	name   string
	source *text.FontSource
	sfnt   *opentype.Font

	mu    sync.Mutex
	faces map[float64]text.Face
}

// Default returns the bundled medium-weight sans font.
func Default() (*Typeface, error) {
	return Parse("Go Medium", gomedium.TTF)
}

// Load reads a TTF/OTF file. An empty path returns Default.
func Load(path string) (*Typeface, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("typeface: read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse builds a typeface from font file bytes.
func Parse(name string, data []byte) (*Typeface, error) {
	source, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("typeface: parse %s: %w", name, err)
	}
	sfnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("typeface: parse %s: %w", name, err)
	}
	return &Typeface{
		name:   name,
		source: source,
		sfnt:   sfnt,
		faces:  make(map[float64]text.Face),
	}, nil
}

// Name returns the font name or file path it was loaded from.
func (tf *Typeface) Name() string {
	return tf.name
}

// Face returns a drawing face at size pixels.
func (tf *Typeface) Face(size float64) text.Face {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	if f, ok := tf.faces[size]; ok {
		return f
	}
	f := tf.source.Face(size)
	tf.faces[size] = f
	return f
}

// Advance returns the horizontal advance of s at size pixels.
func (tf *Typeface) Advance(s string, size float64) float64 {
	return tf.Face(size).Advance(s)
}

// GlyphHeight returns the height of the ink bounds of s at size pixels,
// rounded out to whole pixels.
func (tf *Typeface) GlyphHeight(s string, size float64) (float64, error) {
	face, err := opentype.NewFace(tf.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return 0, fmt.Errorf("typeface: face %.1f: %w", size, err)
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, s)
	top := math.Floor(float64(bounds.Min.Y) / 64)
	bottom := math.Ceil(float64(bounds.Max.Y) / 64)
	return bottom - top, nil
}

// Close releases the font source.
func (tf *Typeface) Close() error {
	return tf.source.Close()
}
