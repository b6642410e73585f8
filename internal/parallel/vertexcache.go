package parallel

import "github.com/tylerraster/tyler/internal/geom"

// VertexCacheCapacity is the largest size a vertex cache can be configured
// with. A linear-search direct-mapped cache is cheaper than a hash map at
// this scale, per the engine's design notes; this ceiling keeps the linear
// search cheap regardless of the caller-requested capacity.
const VertexCacheCapacity = 16

// CachedVertex holds a vertex shader's output: the clip-space position it
// returned plus its written attribute values, indexed the same way the
// shader metadata indexes active attributes (vec4s, then vec3s, then
// vec2s).
type CachedVertex struct {
	Clip  geom.Vec4
	Vec4s []geom.Vec4
	Vec3s []geom.Vec3
	Vec2s []geom.Vec2
}

// VertexCache is a per-worker fixed-size lookup from raw input index to a
// cached CachedVertex. Cleared at the start of every drawcall, not every
// iteration, since a drawcall is expected to reuse indices across
// primitives (e.g. a triangle strip or an indexed mesh).
type VertexCache struct {
	enabled  bool
	capacity int
	keys     []int32
	values   []CachedVertex
	used     int
}

// NewVertexCache constructs a cache holding up to capacity entries, clamped
// to [1, VertexCacheCapacity] (a capacity <= 0 is raised to the ceiling).
// When enabled is false, Lookup always misses and Insert is a no-op,
// matching the engine's "caching disabled by configuration" mode where
// three scratch attribute slots are reused instead.
func NewVertexCache(enabled bool, capacity int) *VertexCache {
	if capacity <= 0 || capacity > VertexCacheCapacity {
		capacity = VertexCacheCapacity
	}
	return &VertexCache{
		enabled:  enabled,
		capacity: capacity,
		keys:     make([]int32, capacity),
		values:   make([]CachedVertex, capacity),
	}
}

// Clear empties the cache, called once per drawcall.
func (c *VertexCache) Clear() { c.used = 0 }

// Lookup does a linear search for inputIdx, returning the cached vertex and
// true on a hit.
func (c *VertexCache) Lookup(inputIdx int32) (CachedVertex, bool) {
	if !c.enabled {
		return CachedVertex{}, false
	}
	for i := 0; i < c.used; i++ {
		if c.keys[i] == inputIdx {
			return c.values[i], true
		}
	}
	return CachedVertex{}, false
}

// Insert stores a vertex under inputIdx if capacity remains. Once the
// cache is full within a drawcall, further misses are not cached — this
// is a correctness-neutral capacity limit, not an eviction policy.
func (c *VertexCache) Insert(inputIdx int32, v CachedVertex) {
	if !c.enabled || c.used >= c.capacity {
		return
	}
	c.keys[c.used] = inputIdx
	c.values[c.used] = v
	c.used++
}

// Enabled reports whether this cache participates in lookups/inserts.
func (c *VertexCache) Enabled() bool { return c.enabled }
