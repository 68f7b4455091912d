// Package resolve defines the resource resolver collaborator boundary of
// spec §6: for each image/svg src, the core asks for bytes and natural
// dimensions rather than fetching or decoding itself. Resolution happens
// before layout starts, or synchronously during measure via a pre-warmed
// callback (spec §5) — the core never blocks waiting on network or disk.
package resolve

import "context"

// Kind identifies what was found at src.
type Kind string

const (
	KindImage Kind = "image"
	KindSvg   Kind = "svg"
)

// Resource is what a Resolver hands back for one src.
type Resource struct {
	Bytes         []byte
	Kind          Kind
	NaturalWidth  float64
	NaturalHeight float64
}

// Resolver resolves an image/svg src to its bytes and natural dimensions.
// Implementations handle http(s), data URIs, and file paths (spec §6).
type Resolver interface {
	Resolve(ctx context.Context, src string) (Resource, error)
}

// Cache wraps a Resolver so each src is fetched at most once per render
// (spec §5: "Image and SVG data are fetched at most once per src within a
// single render"). Cache is not safe for concurrent use across renders
// sharing the same instance — build one per render.
type Cache struct {
	inner   Resolver
	results map[string]cacheEntry
}

type cacheEntry struct {
	resource Resource
	err      error
}

// NewCache wraps inner with a per-render resolve-once cache.
func NewCache(inner Resolver) *Cache {
	return &Cache{inner: inner, results: make(map[string]cacheEntry)}
}

// Resolve returns the cached result for src, resolving via inner on first
// request.
func (c *Cache) Resolve(ctx context.Context, src string) (Resource, error) {
	if e, ok := c.results[src]; ok {
		return e.resource, e.err
	}
	res, err := c.inner.Resolve(ctx, src)
	c.results[src] = cacheEntry{resource: res, err: err}
	return res, err
}
