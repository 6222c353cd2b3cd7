package texture

import (
	"image"
	"sync"

	"glib-shading/internal/logging"
)

// Cache is a concurrency-safe texture cache. Failed loads are cached as nil
// so a broken file is decoded and reported once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
}

// NewCache creates a cache backed by index.
func NewCache(index *Index) *Cache {
	if index == nil {
		index = &Index{entries: map[string]string{}}
	}
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
	}
}

// Resolve loads and caches a texture. Returns nil if it cannot be found or
// decoded.
func (c *Cache) Resolve(name string) *image.NRGBA {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		if name != "" {
			logging.Logger().Warn("texture not found", "name", name)
		}
		return nil
	}

	c.mu.RLock()
	if img, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	img, err := Load(path)
	if err != nil {
		logging.Logger().Warn("texture load failed", "path", path, "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, exists := c.items[path]; exists {
		return cached
	}
	c.items[path] = img
	logging.Logger().Debug("texture cached", "path", path)
	return img
}

// Sampler resolves name and wraps it with filter. Returns nil when the
// texture is unavailable, which callers treat as "no map".
func (c *Cache) Sampler(name string, filter Filter) Sampler {
	img := c.Resolve(name)
	if img == nil {
		return nil
	}
	return &Image{Img: img, Filter: filter}
}
