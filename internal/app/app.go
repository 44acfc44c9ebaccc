// Package app assembles a watch face from configuration: font, assets,
// complication sources and the persisted accent colour.
package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"simple-watchface/internal/asset"
	"simple-watchface/internal/complication"
	"simple-watchface/internal/complication/drawable"
	"simple-watchface/internal/complication/source"
	"simple-watchface/internal/config"
	"simple-watchface/internal/settings"
	"simple-watchface/internal/typeface"
	"simple-watchface/internal/watchface"
)

// Face holds the shared, concurrency-safe parts of a watch face. Renderers
// created from it share everything but their per-size metrics.
type Face struct {
	Config   config.Config
	Typeface *typeface.Typeface
	Assets   *asset.Cache
	Slots    *complication.Manager
	Sources  source.Registry
	Settings *settings.Store
	Drawer   *drawable.Drawer

	log zerolog.Logger
}

// Build loads every resource named by cfg.
func Build(cfg config.Config, log zerolog.Logger) (*Face, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	tf, err := typeface.Load(cfg.FontPath)
	if err != nil {
		return nil, err
	}

	var index *asset.Index
	if cfg.AssetDir != "" {
		index = asset.BuildIndex(cfg.AssetDir)
		log.Info().Str("dir", cfg.AssetDir).Int("assets", index.Len()).Msg("Assets indexed")
	}
	assets := asset.NewCache(index)
	if err := assets.Preload(complication.AssetSmall, complication.AssetRanged, complication.AssetBig); err != nil {
		// the renderer skips complications whose background is missing
		log.Warn().Err(err).Msg("Some complication backgrounds failed to load")
	}

	reg := source.Registry{
		Battery: source.FixedBattery(cfg.Battery),
		Steps:   source.FixedSteps(cfg.Steps, cfg.StepGoal),
	}
	if cfg.CalendarPath != "" {
		if reg.Calendar, err = source.LoadCalendar(cfg.CalendarPath, loc); err != nil {
			tf.Close()
			return nil, err
		}
		log.Info().Str("path", cfg.CalendarPath).Int("events", reg.Calendar.Len()).Msg("Calendar loaded")
	}

	slots := complication.NewManager()
	if err := reg.BindDefaults(slots); err != nil {
		tf.Close()
		return nil, err
	}
	if cfg.FixturesPath != "" {
		fx, err := complication.LoadFixtures(cfg.FixturesPath)
		if err == nil {
			err = fx.Apply(slots, reg.Resolve)
		}
		if err != nil {
			tf.Close()
			return nil, fmt.Errorf("app: fixtures: %w", err)
		}
	}

	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	return &Face{
		Config:   cfg,
		Typeface: tf,
		Assets:   assets,
		Slots:    slots,
		Sources:  reg,
		Settings: store,
		Drawer:   drawable.New(tf),
		log:      log,
	}, nil
}

// NewRenderer creates a renderer drawing this face.
func (f *Face) NewRenderer() (*watchface.Renderer, error) {
	return watchface.New(watchface.Options{
		Typeface: f.Typeface,
		Assets:   f.Assets,
		Slots:    f.Slots,
		Drawer:   f.Drawer,
		Accent:   f.Settings.Accent,
		Style:    watchface.DefaultStyle(),
		Logger:   f.log,
	})
}

// Close releases the font.
func (f *Face) Close() error {
	return f.Typeface.Close()
}
