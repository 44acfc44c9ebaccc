package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WATCHFACE_"

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	AssetDir     string `json:"asset_dir" yaml:"asset_dir"`
	FontPath     string `json:"font_path" yaml:"font_path"`
	CalendarPath string `json:"calendar_path" yaml:"calendar_path"`
	FixturesPath string `json:"fixtures_path" yaml:"fixtures_path"`
	SettingsPath string `json:"settings_path" yaml:"settings_path"`
	OutputDir    string `json:"output_dir" yaml:"output_dir"`

	// Render settings
	RenderSize  int    `json:"render_size" yaml:"render_size"`
	Supersample int    `json:"supersample" yaml:"supersample"`
	Workers     int    `json:"workers" yaml:"workers"`
	Format      string `json:"format" yaml:"format"`
	RoundMask   bool   `json:"round_mask" yaml:"round_mask"`

	// Simulated device state
	Language string  `json:"language" yaml:"language"`
	Timezone string  `json:"timezone" yaml:"timezone"`
	Battery  float64 `json:"battery" yaml:"battery"`
	Steps    int     `json:"steps" yaml:"steps"`
	StepGoal int     `json:"step_goal" yaml:"step_goal"`

	// Logging
	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogPretty bool   `json:"log_pretty" yaml:"log_pretty"`
}

// Load reads a JSON or YAML config file, picked by extension. An empty path
// returns a zero Config. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv loads .env if present and overrides fields from WATCHFACE_*
// variables. Variables already set in the process win over .env.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	strs := map[string]*string{
		"ASSET_DIR":     &c.AssetDir,
		"FONT_PATH":     &c.FontPath,
		"CALENDAR_PATH": &c.CalendarPath,
		"FIXTURES_PATH": &c.FixturesPath,
		"SETTINGS_PATH": &c.SettingsPath,
		"OUTPUT_DIR":    &c.OutputDir,
		"FORMAT":        &c.Format,
		"LANGUAGE":      &c.Language,
		"TIMEZONE":      &c.Timezone,
		"LOG_LEVEL":     &c.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"RENDER_SIZE": &c.RenderSize,
		"SUPERSAMPLE": &c.Supersample,
		"WORKERS":     &c.Workers,
		"STEPS":       &c.Steps,
		"STEP_GOAL":   &c.StepGoal,
	}
	for key, dst := range ints {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"ROUND_MASK": &c.RoundMask,
		"LOG_PRETTY": &c.LogPretty,
	}
	for key, dst := range bools {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
	}

	if v := os.Getenv(EnvPrefix + "BATTERY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %sBATTERY: %w", EnvPrefix, err)
		}
		c.Battery = f
	}
	return nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file and environment
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Language != "" {
		c.Language = flags.Language
	}
	if flags.Round {
		c.RoundMask = true
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 454
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = FormatWebP
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.SettingsPath == "" {
		c.SettingsPath = "watchface-settings.json"
	}

	// Defaults for simulated data
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Battery <= 0 {
		c.Battery = 80
	}
	if c.Steps <= 0 {
		c.Steps = 4321
	}
	if c.StepGoal <= 0 {
		c.StepGoal = 10000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate rejects settings the renderer cannot honour.
func (c *Config) Validate() error {
	if c.RenderSize < 64 {
		return fmt.Errorf("config: render_size %d is below 64", c.RenderSize)
	}
	if c.Supersample > 4 {
		return fmt.Errorf("config: supersample %d is above 4", c.Supersample)
	}
	if c.Format != FormatWebP && c.Format != FormatPNG {
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if c.Battery > 100 {
		return fmt.Errorf("config: battery %.0f is above 100", c.Battery)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the configured time zone, or the local zone when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %s: %w", c.Timezone, err)
	}
	return loc, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir  string
	OutputDir string
	Size      int
	Workers   int
	Format    string
	Language  string
	Round     bool
}

// FromFile is the usual CLI sequence: load the file, apply the environment,
// apply flags and defaults, then validate.
func FromFile(path string, flags Flags) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
