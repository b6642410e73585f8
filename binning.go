package tyler

import (
	"github.com/tylerraster/tyler/gpucore"
	"github.com/tylerraster/tyler/internal/parallel"
	"github.com/tylerraster/tyler/internal/raster"
)

// binSetupSlot walks every tile overlapping slot's bounding box (already
// computed by shadeAndSetup) and, for each tile the triangle isn't
// trivially rejected against, records the primitive in that tile's
// (tile, worker) bin and ensures the tile is queued for rasterization.
// A slot left with a degenerate bounding box by shadeAndSetup (trivially
// clipped or culled for backface/zero area) is skipped entirely.
//
// A tile-level Accept is not binned: it appends a TILE coverage mask to
// this worker's coverage buffer for the tile right away. Only Overlap
// tiles go into the bin, where the rasterization stage repeats the
// classification at block granularity.
func (e *Engine) binSetupSlot(workerIdx, slot int, local *gpucore.PipelineStats) {
	bbox := e.setup.BBoxes[slot]
	if bbox.MinX >= bbox.MaxX || bbox.MinY >= bbox.MaxY {
		return
	}
	e0, e1, e2 := e.setup.Edges0[slot], e.setup.Edges1[slot], e.setup.Edges2[slot]

	minTX, minTY, maxTX, maxTY := e.tileTable.TileIndexRange(bbox.MinX, bbox.MinY, bbox.MaxX, bbox.MaxY)
	tilesX := e.tileTable.TilesX()
	tileSize := float32(e.tileTable.TileSize())

	for ty := minTY; ty < maxTY; ty++ {
		for tx := minTX; tx < maxTX; tx++ {
			tileIdx := ty*tilesX + tx
			tile := e.tileTable.At(tileIdx)
			ox, oy := float32(tile.OriginX), float32(tile.OriginY)

			class := raster.ClassifyRegion(e0, e1, e2, ox, oy, tileSize, tileSize)
			if class == raster.Reject {
				continue
			}

			if class == raster.Accept {
				e.coverageTable.Buffer(tileIdx, workerIdx).Append(parallel.CoverageMask{
					Kind: parallel.MaskTile, OriginX: int32(tile.OriginX), OriginY: int32(tile.OriginY), PrimSlot: int32(slot),
				})
			} else {
				e.binTable.Append(tileIdx, workerIdx, slot)
			}

			if tile.TestAndSetQueued() {
				e.queue.Insert(tileIdx)
				local.TilesQueued++
			}
		}
	}
}
