package batch

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"simple-watchface/internal/config"
	"simple-watchface/internal/watchface"
)

var noon = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newRenderer() (*watchface.Renderer, error) {
	return watchface.New(watchface.Options{Logger: zerolog.Nop()})
}

func testConfig(t *testing.T, format string) Config {
	return Config{
		OutputDir:   t.TempDir(),
		Format:      format,
		RenderSize:  64,
		Supersample: 1,
		Workers:     2,
		NewRenderer: newRenderer,
		Logger:      zerolog.Nop(),
	}
}

func TestTimeline_Frames(t *testing.T) {
	tl := Timeline{
		Start: noon,
		Step:  time.Minute,
		Count: 3,
		Modes: []watchface.DrawMode{watchface.Interactive, watchface.Ambient},
	}
	frames, err := tl.Frames()
	require.NoError(t, err)
	require.Len(t, frames, 6)

	assert.Equal(t, Frame{Index: 0, Time: noon, Mode: watchface.Interactive}, frames[0])
	assert.Equal(t, Frame{Index: 5, Time: noon.Add(2 * time.Minute), Mode: watchface.Ambient}, frames[5])
	assert.Equal(t, "00005_ambient.webp", frames[5].FileName("webp"))

	_, err = Timeline{Count: 0}.Frames()
	assert.Error(t, err)
	_, err = Timeline{Count: 2}.Frames()
	assert.Error(t, err)

	single, err := Timeline{Start: noon, Count: 1}.Frames()
	require.NoError(t, err)
	assert.Equal(t, watchface.Interactive, single[0].Mode)
}

func TestRun_WritesFramesAndManifest(t *testing.T) {
	cfg := testConfig(t, config.FormatPNG)
	frames := []Frame{
		{Index: 0, Time: noon, Mode: watchface.Interactive},
		{Index: 1, Time: noon, Mode: watchface.Ambient},
		{Index: 2, Time: noon, Mode: watchface.Interactive},
	}

	results, err := Run(context.Background(), cfg, frames)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Zero(t, Failed(results))

	// same instant and mode render the same pixels
	assert.Equal(t, results[0].Digest, results[2].Digest)
	assert.NotEqual(t, results[0].Digest, results[1].Digest)

	f, err := os.Open(filepath.Join(cfg.OutputDir, results[1].File))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	require.NoError(t, WriteManifest(manifestPath, cfg, results))
	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	require.Len(t, m.Frames, 3)
	assert.Equal(t, "ambient", m.Frames[1].Mode)
	assert.Equal(t, "2024-06-01T12:00:00Z", m.Frames[1].Time)
	assert.Equal(t, "png", m.Format)
}

func TestRun_WebP(t *testing.T) {
	cfg := testConfig(t, config.FormatWebP)
	cfg.RoundMask = true
	cfg.Supersample = 2

	results, err := Run(context.Background(), cfg, []Frame{{Time: noon}})
	require.NoError(t, err)
	require.True(t, results[0].Success, results[0].Error)

	f, err := os.Open(filepath.Join(cfg.OutputDir, results[0].File))
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a, "corner is masked")
}

func TestRun_RecordsFrameFailures(t *testing.T) {
	cfg := testConfig(t, "gif")
	results, err := Run(context.Background(), cfg, []Frame{{Time: noon}})
	require.NoError(t, err)
	assert.Equal(t, 1, Failed(results))
	assert.Contains(t, results[0].Error, "unknown format")
}

func TestRun_RendererError(t *testing.T) {
	cfg := testConfig(t, config.FormatPNG)
	boom := errors.New("no font")
	cfg.NewRenderer = func() (*watchface.Renderer, error) { return nil, boom }

	frames, err := Timeline{Start: noon, Step: time.Second, Count: 10}.Frames()
	require.NoError(t, err)

	_, err = Run(context.Background(), cfg, frames)
	assert.ErrorIs(t, err, boom)
}

func TestRun_Cancelled(t *testing.T) {
	cfg := testConfig(t, config.FormatPNG)
	cfg.Workers = 1
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames, err := Timeline{Start: noon, Step: time.Second, Count: 50}.Frames()
	require.NoError(t, err)

	_, err = Run(ctx, cfg, frames)
	assert.ErrorIs(t, err, context.Canceled)
}
