// Package settings persists the user's accent colour and notifies listeners
// when it changes.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// DefaultAccent is opaque red in ARGB.
const DefaultAccent uint32 = 0xFFFF0000

// ErrInvalidColor is returned for colour strings that are not #RRGGBB or #AARRGGBB.
var ErrInvalidColor = errors.New("settings: invalid color")

type file struct {
	Accent string `json:"accent_color"`
}

// Store holds the accent colour. A Store with an empty path keeps the value
// in memory only.
type Store struct {
	path string

	// writeMu orders updates so the file always holds the latest colour.
	writeMu sync.Mutex

	mu        sync.RWMutex
	accent    uint32
	listeners map[int]func(uint32)
	nextID    int
}

// Open loads the store from path. A missing file yields the default colour.
func Open(path string) (*Store, error) {
	s := &Store{
		path:      path,
		accent:    DefaultAccent,
		listeners: make(map[int]func(uint32)),
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if f.Accent != "" {
		if s.accent, err = ParseColor(f.Accent); err != nil {
			return nil, fmt.Errorf("settings: %s: %w", path, err)
		}
	}
	return s, nil
}

// Get returns the accent colour as ARGB.
func (s *Store) Get() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accent
}

// Accent returns the accent colour for drawing.
func (s *Store) Accent() color.NRGBA {
	return ToNRGBA(s.Get())
}

// Set stores a new accent colour, writes it to disk and notifies
// subscribers if it changed.
func (s *Store) Set(argb uint32) error {
	s.writeMu.Lock()
	s.mu.Lock()
	if s.accent == argb {
		s.mu.Unlock()
		s.writeMu.Unlock()
		return nil
	}
	s.accent = argb
	listeners := make([]func(uint32), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	err := s.save(argb)
	s.writeMu.Unlock()
	if err != nil {
		return err
	}
	for _, fn := range listeners {
		fn(argb)
	}
	return nil
}

// Subscribe registers fn to be called after every change. The returned
// function removes it.
func (s *Store) Subscribe(fn func(uint32)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) save(argb uint32) error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(file{Accent: FormatColor(argb)}, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("settings: create dir %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("settings: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}
	return nil
}

// ParseColor parses "#RRGGBB" (opaque) or "#AARRGGBB" into ARGB.
func ParseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return uint32(v), nil
}

// FormatColor renders ARGB as "#AARRGGBB".
func FormatColor(argb uint32) string {
	return fmt.Sprintf("#%08X", argb)
}

// ToNRGBA splits ARGB into channels.
func ToNRGBA(argb uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(argb >> 24),
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
	}
}
