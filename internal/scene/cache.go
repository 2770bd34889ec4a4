package scene

import (
	"sync"

	"github.com/Faultbox/vatbake/pkg/obj"
)

// Cached wraps a Scene and memoizes evaluated meshes by frame. The bake
// pipeline evaluates the rest frame twice (once to preprocess, once to
// sample), so even a small cache saves a full re-evaluation. Cached
// meshes are shared: callers must treat them as read-only.
type Cached struct {
	inner Scene
	cache *meshCache
}

// NewCached wraps a scene with a mesh cache holding up to size frames.
func NewCached(inner Scene, size int) *Cached {
	return &Cached{inner: inner, cache: newMeshCache(size)}
}

// Frame returns the current frame cursor.
func (c *Cached) Frame() int { return c.inner.Frame() }

// SetFrame moves the frame cursor.
func (c *Cached) SetFrame(frame int) error { return c.inner.SetFrame(frame) }

// Evaluate returns the mesh at the current frame, from cache when possible.
func (c *Cached) Evaluate() (*obj.Mesh, error) {
	frame := c.inner.Frame()
	if m, ok := c.cache.get(frame); ok {
		return m, nil
	}
	m, err := c.inner.Evaluate()
	if err != nil {
		return nil, err
	}
	c.cache.set(frame, m)
	return m, nil
}

// Stats returns cache hit and miss counts.
func (c *Cached) Stats() (hits, misses int) {
	return c.cache.stats()
}

// meshCache is a bounded in-memory cache of evaluated meshes.
type meshCache struct {
	data  map[int]*obj.Mesh
	order []int
	size  int
	mu    sync.RWMutex

	hits   int
	misses int
}

func newMeshCache(size int) *meshCache {
	if size < 1 {
		size = 1
	}
	return &meshCache{
		data: make(map[int]*obj.Mesh),
		size: size,
	}
}

func (c *meshCache) get(frame int) (*obj.Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.data[frame]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return m, ok
}

// set stores a mesh, evicting the oldest entry once full.
func (c *meshCache) set(frame int, m *obj.Mesh) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[frame]; ok {
		c.data[frame] = m
		return
	}
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
	c.data[frame] = m
	c.order = append(c.order, frame)
}

func (c *meshCache) stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
