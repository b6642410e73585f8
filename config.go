package tyler

import "runtime"

// Defaults for engine configuration, used when the corresponding
// EngineOption is not supplied.
const (
	DefaultTileSize      = 64
	DefaultIterationCap  = 4096
	DefaultCacheCapacity = 16
)

// RasterizerConfig holds the engine's immutable construction-time
// parameters: tile size, worker count, and the per-iteration primitive
// cap that sizes every preallocated scratch buffer.
type RasterizerConfig struct {
	TileSize      int
	WorkerCount   int
	IterationCap  int
	CacheCapacity int
	CacheEnabled  bool
}

func defaultConfig() RasterizerConfig {
	return RasterizerConfig{
		TileSize:      DefaultTileSize,
		WorkerCount:   runtime.GOMAXPROCS(0),
		IterationCap:  DefaultIterationCap,
		CacheCapacity: DefaultCacheCapacity,
		CacheEnabled:  true,
	}
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*RasterizerConfig)

// WithTileSize overrides the tile edge length in pixels. Must be a power
// of two; NewEngine asserts this.
func WithTileSize(size int) EngineOption {
	return func(c *RasterizerConfig) { c.TileSize = size }
}

// WithWorkerCount overrides the number of pipeline worker goroutines. If
// n <= 0, runtime.GOMAXPROCS(0) is used (the default).
func WithWorkerCount(n int) EngineOption {
	return func(c *RasterizerConfig) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.WorkerCount = n
	}
}

// WithIterationCap overrides the maximum number of primitives processed
// per draw iteration, sizing the Setup Buffers and Bin Table.
func WithIterationCap(m int) EngineOption {
	return func(c *RasterizerConfig) { c.IterationCap = m }
}

// WithVertexCache overrides the per-worker vertex cache capacity and
// whether caching is enabled at all. The vertex cache itself caps capacity
// at parallel.VertexCacheCapacity; a capacity <= 0 selects that ceiling.
func WithVertexCache(enabled bool, capacity int) EngineOption {
	return func(c *RasterizerConfig) {
		c.CacheEnabled = enabled
		c.CacheCapacity = capacity
	}
}
