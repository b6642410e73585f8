// Package parallel provides the tile-based work-partitioning infrastructure
// shared by all rasterizer workers: the tile table, the rasterizer queue,
// the per-worker bin and coverage-mask storage, the vertex cache, and the
// worker-state barrier machinery used to order the three pipeline stages.
//
// Thread safety: types in this package are designed for a fixed set of
// worker goroutines cooperating on a single draw iteration. Fields written
// by one worker and read by others are documented per type; callers must
// respect the ownership rules described there rather than relying on
// incidental synchronization.
package parallel

import "sync/atomic"

// Tile is one fixed-size screen region owned by the Tile Table. Its origin
// is immutable once allocated; only the Queued flag changes per iteration.
type Tile struct {
	// OriginX, OriginY are the tile's top-left pixel coordinates.
	OriginX, OriginY int

	// Queued is a test-and-set flag: a worker that flips it from false to
	// true is the one responsible for inserting the tile into the
	// RasterQueue. Reset to false at the start of every draw iteration.
	Queued atomic.Bool
}

// TestAndSetQueued atomically marks the tile as queued and reports whether
// this call was the one that made the transition (i.e. the caller owns the
// single required RasterQueue.Insert for this tile this iteration).
func (t *Tile) TestAndSetQueued() (transitioned bool) {
	return t.Queued.CompareAndSwap(false, true)
}

// TileTable is a row-major grid of fixed-size tiles covering the current
// framebuffer. It is rebuilt whenever SetRenderTargets changes dimensions.
type TileTable struct {
	tiles      []Tile
	tilesX     int
	tilesY     int
	tileSize   int
	fbWidth    int
	fbHeight   int
}

// NewTileTable builds a tile table covering width x height pixels using
// square tiles of the given size (must be a power of two per the engine's
// configuration contract; NewTileTable does not itself enforce that).
func NewTileTable(width, height, tileSize int) *TileTable {
	tt := &TileTable{tileSize: tileSize}
	tt.resize(width, height)
	return tt
}

func (tt *TileTable) resize(width, height int) {
	tt.fbWidth, tt.fbHeight = width, height
	tt.tilesX = (width + tt.tileSize - 1) / tt.tileSize
	tt.tilesY = (height + tt.tileSize - 1) / tt.tileSize
	tt.tiles = make([]Tile, tt.tilesX*tt.tilesY)
	for ty := 0; ty < tt.tilesY; ty++ {
		for tx := 0; tx < tt.tilesX; tx++ {
			tt.tiles[ty*tt.tilesX+tx] = Tile{
				OriginX: tx * tt.tileSize,
				OriginY: ty * tt.tileSize,
			}
		}
	}
}

// Resize rebuilds the table for new framebuffer dimensions. A no-op if the
// dimensions are unchanged.
func (tt *TileTable) Resize(width, height int) {
	if width == tt.fbWidth && height == tt.fbHeight {
		return
	}
	tt.resize(width, height)
}

// ResetQueuedFlags clears every tile's Queued flag. Called once per draw
// iteration before the geometry stage starts.
func (tt *TileTable) ResetQueuedFlags() {
	for i := range tt.tiles {
		tt.tiles[i].Queued.Store(false)
	}
}

// TilesX, TilesY report the grid dimensions in tiles.
func (tt *TileTable) TilesX() int { return tt.tilesX }
func (tt *TileTable) TilesY() int { return tt.tilesY }

// TileSize reports the configured tile edge length in pixels.
func (tt *TileTable) TileSize() int { return tt.tileSize }

// Count returns the total number of tiles in the table.
func (tt *TileTable) Count() int { return len(tt.tiles) }

// At returns the tile at the given row-major index.
func (tt *TileTable) At(idx int) *Tile { return &tt.tiles[idx] }

// TileIndexRange returns the half-open [minIdx, maxIdx) tile-coordinate
// range, clamped to the grid, covering a bounding box in pixel space.
func (tt *TileTable) TileIndexRange(minX, minY, maxX, maxY float32) (minTX, minTY, maxTX, maxTY int) {
	ts := float32(tt.tileSize)
	minTX = clampInt(int(minX/ts), 0, tt.tilesX)
	minTY = clampInt(int(minY/ts), 0, tt.tilesY)
	maxTX = clampInt(ceilDiv(maxX, ts), 0, tt.tilesX)
	maxTY = clampInt(ceilDiv(maxY, ts), 0, tt.tilesY)
	return
}

func ceilDiv(v, d float32) int {
	q := int(v / d)
	if float32(q)*d < v {
		q++
	}
	return q
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
