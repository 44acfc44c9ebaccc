package asset

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-watchface/internal/complication"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "Complication_Small.png"), color.NRGBA{R: 255, A: 255})
	writePNG(t, filepath.Join(dir, "nested", "complication_big.png"), color.NRGBA{G: 255, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "complication_big.jpg"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	idx := BuildIndex(dir)
	assert.Equal(t, 2, idx.Len())

	p, ok := idx.ResolvePath("complication_small")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Complication_Small.png"), p)

	p, ok = idx.ResolvePath(`drawable\complication_big.webp`)
	require.True(t, ok)
	assert.Equal(t, ".png", filepath.Ext(p), "png outranks jpeg")

	_, ok = idx.ResolvePath("missing")
	assert.False(t, ok)

	assert.Zero(t, BuildIndex("").Len())
	assert.Zero(t, BuildIndex(filepath.Join(dir, "nope")).Len())
}

func TestLoad_TGA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complication_ranged.tga")
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tga.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, img.NRGBAAt(1, 1))
}

func TestLoad_PNGAndJPEG(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "complication_small.png")
	writePNG(t, pngPath, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	img, err := Load(pngPath)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 128}, img.NRGBAAt(2, 2))

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 0, 0, 255, 255
	}
	jpgPath := filepath.Join(dir, "complication_big.JPG")
	f, err := os.Create(jpgPath)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, src, &jpeg.Options{Quality: 100}))
	require.NoError(t, f.Close())

	img, err = Load(jpgPath)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	px := img.NRGBAAt(4, 4)
	assert.Equal(t, uint8(255), px.A)
	assert.Greater(t, px.B, uint8(240))
	assert.Less(t, px.R, uint8(16))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0644))
	_, err = Load(junk)
	assert.Error(t, err)

	bmp := filepath.Join(dir, "icon.bmp")
	require.NoError(t, os.WriteFile(bmp, []byte("BM"), 0644))
	_, err = Load(bmp)
	assert.ErrorContains(t, err, "unsupported format")
}

func TestCache_FileOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "complication_small.png"), color.NRGBA{R: 255, A: 255})

	c := NewCache(BuildIndex(dir))
	img, err := c.Resolve(complication.AssetSmall)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())

	big, err := c.Resolve(complication.AssetBig)
	require.NoError(t, err)
	assert.Equal(t, BuiltinBigWidth, big.Bounds().Dx())

	again, err := c.Resolve(complication.AssetBig)
	require.NoError(t, err)
	assert.Same(t, big, again)
}

func TestCache_Builtins(t *testing.T) {
	c := NewCache(nil)
	require.NoError(t, c.Preload(BuiltinNames()...))

	small, err := c.Resolve(complication.AssetSmall)
	require.NoError(t, err)
	mid := small.NRGBAAt(BuiltinSmallSize/2, BuiltinSmallSize/2)
	corner := small.NRGBAAt(0, 0)
	assert.NotZero(t, mid.A, "disc is filled")
	assert.Zero(t, corner.A, "corners stay transparent")

	_, err = c.Resolve("complication_unknown")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, c.Preload("complication_unknown"), ErrNotFound)
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache(nil)
	var wg sync.WaitGroup
	results := make([]*image.NRGBA, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Resolve(complication.AssetRanged)
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}

func TestToNRGBA(t *testing.T) {
	n := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	assert.Same(t, n, ToNRGBA(n))

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.Set(0, 0, color.RGBA{R: 255, A: 255})
	out := ToNRGBA(rgba)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(0, 0))
}

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{
		complication.AssetBig,
		complication.AssetRanged,
		complication.AssetSmall,
	}, BuiltinNames())
}
