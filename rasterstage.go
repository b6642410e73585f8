package tyler

import (
	"github.com/tylerraster/tyler/internal/geom"
	"github.com/tylerraster/tyler/internal/parallel"
	"github.com/tylerraster/tyler/internal/raster"
)

// blockSize is the fixed edge length, in pixels, of the intermediate
// classification granularity between a tile and a quad row.
const blockSize = 8

// rasterWorker drains the Rasterizer Queue, refining every primitive
// binned against a tile into block- and quad-level coverage masks. Tiles
// are fetched, never removed, here: the same queue contents are removed
// again during fragment shading.
func (e *Engine) rasterWorker(workerIdx int) {
	for {
		tileIdx := e.queue.FetchNext()
		if tileIdx == parallel.InvalidTile {
			return
		}
		e.rasterTile(workerIdx, tileIdx)
	}
}

func (e *Engine) rasterTile(workerIdx, tileIdx int) {
	tile := e.tileTable.At(tileIdx)
	tileSize := e.tileTable.TileSize()
	out := e.coverageTable.Buffer(tileIdx, workerIdx)

	for srcWorker := 0; srcWorker < e.cfg.WorkerCount; srcWorker++ {
		n := e.binTable.Len(tileIdx, srcWorker)
		for i := 0; i < n; i++ {
			slot := e.binTable.At(tileIdx, srcWorker, i)
			e.rasterPrimitiveInTile(out, slot, tile.OriginX, tile.OriginY, tileSize)
		}
	}
}

func (e *Engine) rasterPrimitiveInTile(out *parallel.CoverageMaskBuffer, slot, tileOriginX, tileOriginY, tileSize int) {
	e0 := e.setup.Edges0[slot]
	e1 := e.setup.Edges1[slot]
	e2 := e.setup.Edges2[slot]
	bbox := e.setup.BBoxes[slot]

	blockMinX := clampTo(int(bbox.MinX), tileOriginX, tileOriginX+tileSize, blockSize)
	blockMinY := clampTo(int(bbox.MinY), tileOriginY, tileOriginY+tileSize, blockSize)
	blockMaxX := minInt(tileOriginX+tileSize, ceilToBlock(int(bbox.MaxX)))
	blockMaxY := minInt(tileOriginY+tileSize, ceilToBlock(int(bbox.MaxY)))

	for by := blockMinY; by < blockMaxY; by += blockSize {
		for bx := blockMinX; bx < blockMaxX; bx += blockSize {
			switch raster.ClassifyRegion(e0, e1, e2, float32(bx), float32(by), blockSize, blockSize) {
			case raster.Reject:
				continue
			case raster.Accept:
				out.Append(parallel.CoverageMask{
					Kind: parallel.MaskBlock, OriginX: int32(bx), OriginY: int32(by), PrimSlot: int32(slot),
				})
			case raster.Overlap:
				e.rasterBlockQuads(out, slot, e0, e1, e2, bx, by)
			}
		}
	}
}

func (e *Engine) rasterBlockQuads(out *parallel.CoverageMaskBuffer, slot int, e0, e1, e2 geom.EdgeCoeffs, bx, by int) {
	for row := 0; row < blockSize; row++ {
		y := by + row
		for col := 0; col < blockSize; col += 4 {
			x := bx + col
			mask := raster.EvaluateQuadMask(e0, e1, e2, float32(x), float32(y)+0.5)
			if mask == 0 {
				continue
			}
			out.Append(parallel.CoverageMask{
				Kind: parallel.MaskQuad, OriginX: int32(x), OriginY: int32(y), PrimSlot: int32(slot), Bits: mask,
			})
		}
	}
}

func clampTo(v, lo, hi, step int) int {
	v -= v % step
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

func ceilToBlock(v int) int {
	if v%blockSize == 0 {
		return v
	}
	return v + blockSize - v%blockSize
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
