package parallel

import "sync/atomic"

// InvalidTile is the sentinel returned by FetchNext/RemoveNext once a
// cursor has caught up with the insert cursor.
const InvalidTile = -1

// RasterQueue is a single-producer-multi-consumer tile-index queue backed
// by a fixed array and three atomic cursors. All workers insert during
// binning; all workers fetch during raster; all workers remove during
// fragment shading. Separating fetch and remove lets the same queue
// contents drain twice, in the same order, without rebuilding the queue.
type RasterQueue struct {
	slots         []int32
	insertCursor  atomic.Int64
	fetchCursor   atomic.Int64
	removeCursor  atomic.Int64
}

// NewRasterQueue allocates a queue with room for every tile plus one slack
// slot per worker, absorbing racing fetch-then-compare attempts at the tail.
func NewRasterQueue(tileCount, workerCount int) *RasterQueue {
	return &RasterQueue{
		slots: make([]int32, tileCount+workerCount),
	}
}

// Insert appends a tile index at the producer cursor. Callers must ensure
// this is invoked at most once per tile per iteration (via
// Tile.TestAndSetQueued); concurrent inserts from different workers for
// different tiles are safe because the cursor advances with an atomic
// fetch-add.
func (q *RasterQueue) Insert(tileIdx int) {
	slot := q.insertCursor.Add(1) - 1
	q.slots[slot] = int32(tileIdx)
}

// FetchNext claims the next tile for rasterization. Returns InvalidTile
// once every inserted tile has been claimed. The fetch cursor advances on
// every call, including one that returns InvalidTile.
func (q *RasterQueue) FetchNext() int {
	slot := q.fetchCursor.Add(1) - 1
	if slot >= q.insertCursor.Load() {
		return InvalidTile
	}
	return int(q.slots[slot])
}

// RemoveNext claims the next tile for fragment shading, in the same order
// FetchNext delivered it. Returns InvalidTile once exhausted.
func (q *RasterQueue) RemoveNext() int {
	slot := q.removeCursor.Add(1) - 1
	if slot >= q.insertCursor.Load() {
		return InvalidTile
	}
	return int(q.slots[slot])
}

// Len reports how many tiles were inserted this iteration.
func (q *RasterQueue) Len() int {
	n := q.insertCursor.Load()
	if n > int64(len(q.slots)) {
		n = int64(len(q.slots))
	}
	return int(n)
}

// Reset zeroes all three cursors, preparing the queue for the next
// iteration. The backing array is retained and overwritten in place.
func (q *RasterQueue) Reset() {
	q.insertCursor.Store(0)
	q.fetchCursor.Store(0)
	q.removeCursor.Store(0)
}
