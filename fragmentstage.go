package tyler

import (
	"github.com/tylerraster/tyler/gpucore"
	"github.com/tylerraster/tyler/internal/parallel"
	"github.com/tylerraster/tyler/internal/raster"
)

// fragmentWorker drains the Rasterizer Queue a second time, through
// RemoveNext, and shades every coverage mask recorded against each tile
// across all workers' rasterization output.
func (e *Engine) fragmentWorker(workerIdx int, local *gpucore.PipelineStats) {
	for {
		tileIdx := e.queue.RemoveNext()
		if tileIdx == parallel.InvalidTile {
			return
		}
		for srcWorker := 0; srcWorker < e.cfg.WorkerCount; srcWorker++ {
			buf := e.coverageTable.Buffer(tileIdx, srcWorker)
			n := buf.Len()
			for i := 0; i < n; i++ {
				e.shadeMask(buf.At(i), local)
			}
		}
	}
}

// shadeMask dispatches a coverage mask to the quad-granularity shader,
// matching spec.md §4.5: a TILE or BLOCK mask is unconditional coverage at
// its own granularity, but is still decomposed into 4-pixel quads and
// depth-tested per quad, exactly like a genuine QUAD mask whose coverage
// bits happen to be all set.
func (e *Engine) shadeMask(m parallel.CoverageMask, local *gpucore.PipelineStats) {
	switch m.Kind {
	case parallel.MaskTile:
		size := e.tileTable.TileSize()
		for by := 0; by < size; by += blockSize {
			for bx := 0; bx < size; bx += blockSize {
				e.shadeBlock(int(m.OriginX)+bx, int(m.OriginY)+by, int(m.PrimSlot), local)
			}
		}
	case parallel.MaskBlock:
		e.shadeBlock(int(m.OriginX), int(m.OriginY), int(m.PrimSlot), local)
	case parallel.MaskQuad:
		e.shadeQuad(int(m.OriginX), int(m.OriginY), int(m.PrimSlot), m.Bits, local)
	}
}

func (e *Engine) shadeBlock(originX, originY, slot int, local *gpucore.PipelineStats) {
	for row := 0; row < blockSize; row++ {
		y := originY + row
		for col := 0; col < blockSize; col += 4 {
			e.shadeQuad(originX+col, y, slot, 0b1111, local)
		}
	}
}

// shadeQuad depth-tests, shades, and writes one quad row of up to 4
// pixels starting at (x, y). coverageBits additionally write-masks a
// genuine QUAD mask's stored per-pixel inside test; TILE/BLOCK callers
// pass 0b1111 since their coverage is unconditional. The fragment shader
// is invoked at most once per quad, skipped entirely when no lane passes
// both the depth test and coverageBits, per spec.md §4.5 step 2.
func (e *Engine) shadeQuad(x, y, slot int, coverageBits uint8, local *gpucore.PipelineStats) {
	if y < 0 || y >= e.fb.Height {
		return
	}

	fx, fy := float32(x), float32(y)+0.5
	f0, f1 := raster.BasisQuad(e.setup.Edges0[slot], e.setup.Edges1[slot], e.setup.Edges2[slot], fx, fy)
	depth := e.setup.ZDeltas[slot].EvalQuad(f0, f1)

	var writeMask uint8
	for lane := 0; lane < 4; lane++ {
		if coverageBits&(1<<lane) == 0 {
			continue
		}
		px := x + lane
		if px < 0 || px >= e.fb.Width {
			continue
		}
		if depth[lane] <= e.fb.Depth[e.fb.DepthOffset(px, y)] {
			writeMask |= 1 << lane
		}
	}
	if writeMask == 0 {
		return
	}

	attrs := gpucore.NewQuadAttributes(e.meta)
	for a := 0; a < e.meta.NumVec4; a++ {
		attrs.Vec4[a] = quadVec4From(e.setup.Vec4Deltas[slot][a], f0, f1)
	}
	for a := 0; a < e.meta.NumVec3; a++ {
		attrs.Vec3[a] = quadVec3From(e.setup.Vec3Deltas[slot][a], f0, f1)
	}
	for a := 0; a < e.meta.NumVec2; a++ {
		attrs.Vec2[a] = quadVec2From(e.setup.Vec2Deltas[slot][a], f0, f1)
	}

	var colors [4][4]float32
	e.fs(&attrs, e.constants, &colors)
	local.FragmentShaderInvocations++

	for lane := 0; lane < 4; lane++ {
		if writeMask&(1<<lane) == 0 {
			continue
		}
		px := x + lane
		off := e.fb.ColorOffset(px, y)
		r, g, b, a := packRGBA8(colors[lane])
		e.fb.Color[off+0] = r
		e.fb.Color[off+1] = g
		e.fb.Color[off+2] = b
		e.fb.Color[off+3] = a
		e.fb.Depth[e.fb.DepthOffset(px, y)] = depth[lane]
	}
}
