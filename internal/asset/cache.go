package asset

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

// ErrNotFound is returned when an asset is neither on disk nor built in.
var ErrNotFound = errors.New("asset: not found")

// Resolver resolves an asset name to a decoded image.
type Resolver interface {
	Resolve(name string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe asset cache. Files in the index take priority
// over the built-in assets of the same name.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a new asset cache backed by the given index.
// A nil index serves built-ins only.
func NewCache(index *Index) *Cache {
	if index == nil {
		index = &Index{entries: map[string]string{}}
	}
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches an asset by name. Failures are cached too, so a
// broken file is read once per cache.
func (c *Cache) Resolve(name string) (*image.NRGBA, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[name]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk or draw the built-in
	img, err := c.load(name)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[name]; exists {
		return entry.img, entry.err
	}
	c.items[name] = &cacheEntry{img: img, err: err}
	return img, err
}

func (c *Cache) load(name string) (*image.NRGBA, error) {
	if path, ok := c.index.ResolvePath(name); ok {
		return Load(path)
	}
	if draw, ok := builtins[name]; ok {
		return draw(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Preload resolves every name up front so rendering never touches the disk.
func (c *Cache) Preload(names ...string) error {
	var errs []error
	for _, n := range names {
		if _, err := c.Resolve(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
