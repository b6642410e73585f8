package parallel

// MaskKind distinguishes the three coverage-mask granularities produced by
// the rasterization stage.
type MaskKind uint8

const (
	MaskTile MaskKind = iota
	MaskBlock
	MaskQuad
)

// CoverageMask is one record in a Coverage Mask Buffer: a claim that a
// primitive covers all or part of a tile, block, or quad.
type CoverageMask struct {
	Kind     MaskKind
	OriginX  int32
	OriginY  int32
	PrimSlot int32
	// Bits holds the 4-bit per-pixel inside mask for MaskQuad records;
	// unused for MaskTile and MaskBlock, which are unconditional coverage.
	Bits uint8
}

// coverageChunkSize bounds each chunk of the append log; chunks are
// allocated lazily and then retained across iterations, so a tile whose
// worst-case iteration needs K chunks never reallocates after the Kth
// iteration that needed it.
const coverageChunkSize = 64

// CoverageMaskBuffer is the per-(tile,worker) chunked append log described
// by the engine: a list of fixed-size blocks with an append cursor. Resets
// its cursor each iteration but retains every chunk it has ever allocated,
// so steady-state operation performs no allocation.
type CoverageMaskBuffer struct {
	chunks [][]CoverageMask
	count  int
}

// Append adds a record to the buffer, growing the chunk list if the
// current chunk is full. The returned chunks are never moved once
// allocated, only appended to, because a quad-level raster call holds no
// pointer across chunk boundaries — it always re-derives a fresh index.
func (b *CoverageMaskBuffer) Append(m CoverageMask) {
	chunkIdx := b.count / coverageChunkSize
	slot := b.count % coverageChunkSize
	if chunkIdx == len(b.chunks) {
		b.chunks = append(b.chunks, make([]CoverageMask, coverageChunkSize))
	}
	b.chunks[chunkIdx][slot] = m
	b.count++
}

// Len reports how many records were appended this iteration.
func (b *CoverageMaskBuffer) Len() int { return b.count }

// At returns the i-th record appended this iteration, in insertion order.
func (b *CoverageMaskBuffer) At(i int) CoverageMask {
	return b.chunks[i/coverageChunkSize][i%coverageChunkSize]
}

// Reset zeroes the append cursor for the next iteration without releasing
// any chunk.
func (b *CoverageMaskBuffer) Reset() { b.count = 0 }

// CoverageMaskTable holds one CoverageMaskBuffer per (tile, worker) pair.
type CoverageMaskTable struct {
	workers int
	tiles   int
	buffers []CoverageMaskBuffer
}

// NewCoverageMaskTable allocates a coverage table for the given tile and
// worker counts. Individual buffers grow their chunk lists lazily.
func NewCoverageMaskTable(tileCount, workers int) *CoverageMaskTable {
	return &CoverageMaskTable{
		workers: workers,
		tiles:   tileCount,
		buffers: make([]CoverageMaskBuffer, tileCount*workers),
	}
}

// Buffer returns the buffer for (tile, worker).
func (ct *CoverageMaskTable) Buffer(tileIdx, workerIdx int) *CoverageMaskBuffer {
	return &ct.buffers[tileIdx*ct.workers+workerIdx]
}

// Reset clears every buffer's append cursor for the next iteration.
func (ct *CoverageMaskTable) Reset() {
	for i := range ct.buffers {
		ct.buffers[i].Reset()
	}
}

// Resize rebuilds the table for a new tile count, discarding prior chunks.
func (ct *CoverageMaskTable) Resize(tileCount int) {
	if tileCount == ct.tiles {
		return
	}
	ct.tiles = tileCount
	ct.buffers = make([]CoverageMaskBuffer, tileCount*ct.workers)
}
