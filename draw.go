package tyler

import (
	"runtime"

	"github.com/tylerraster/tyler/gpucore"
	"github.com/tylerraster/tyler/internal/parallel"
)

// workerLoop is the body of one pipeline worker goroutine. It spins on its
// own state, doing useful work at each non-idle state and helping peers
// across the two ordered barriers, until Close stores Terminated.
func (e *Engine) workerLoop(workerIdx int) {
	defer close(e.done[workerIdx])
	for {
		switch e.states.Load(workerIdx) {
		case parallel.Idle:
			runtime.Gosched()
		case parallel.DrawcallTop:
			e.runIteration(workerIdx)
		case parallel.Terminated:
			return
		default:
			runtime.Gosched()
		}
	}
}

// runIteration carries one worker through Geometry, Binning, the
// post-binning barrier, Raster, the post-raster barrier, Fragment, and
// finally Bottom, where it waits for the draw driver to reset it to Idle.
func (e *Engine) runIteration(workerIdx int) {
	local := &e.workerStats[workerIdx]

	start, end := e.iteration.workerPrimStart[workerIdx], e.iteration.workerPrimEnd[workerIdx]
	// Slot ids count from the iteration's first primitive, which is the
	// first primitive of worker 0's range.
	base := e.iteration.workerPrimStart[0]

	e.states.Store(workerIdx, parallel.Geometry)
	for primIdx := start; primIdx < end; primIdx++ {
		e.shadeAndSetup(workerIdx, primIdx, primIdx-base, local)
	}

	e.states.Store(workerIdx, parallel.Binning)
	for primIdx := start; primIdx < end; primIdx++ {
		e.binSetupSlot(workerIdx, primIdx-base, local)
	}

	e.states.Store(workerIdx, parallel.PostBinner)
	e.states.HelpPastBarrier(parallel.PostBinner, parallel.Raster)

	e.rasterWorker(workerIdx)

	e.states.Store(workerIdx, parallel.PostRaster)
	e.states.HelpPastBarrier(parallel.PostRaster, parallel.Fragment)

	e.fragmentWorker(workerIdx, local)

	e.states.Store(workerIdx, parallel.Bottom)
}

// Draw shades and rasterizes primCount triangles whose indices start at
// position vertexOffset of the bound index buffer (for a non-indexed draw,
// whose vertices start at vertex vertexOffset), splitting them into
// iterations no larger than
// the engine's configured iteration cap and fanning each iteration's
// primitives out across the worker pool in contiguous per-worker ranges.
func (e *Engine) Draw(primCount, vertexOffset int, isIndexed bool) error {
	if e.fb == nil {
		return ErrNoRenderTargets
	}
	if e.vs == nil {
		return ErrNilVertexShader
	}
	if e.fs == nil {
		return ErrNilFragmentShader
	}
	if isIndexed && (len(e.indexBuffer16) == 0 && len(e.indexBuffer32) == 0) {
		return ErrInvalidIndexBuffer
	}
	if primCount <= 0 {
		return nil
	}

	e.iteration.vertexOffset = vertexOffset
	e.iteration.isIndexed = isIndexed
	for i := range e.vcaches {
		e.vcaches[i].Clear()
	}
	for i := range e.workerStats {
		e.workerStats[i] = gpucore.PipelineStats{}
	}
	e.stats = gpucore.PipelineStats{}

	remaining := primCount
	primBase := 0
	for remaining > 0 {
		iterSize := remaining
		if iterSize > e.cfg.IterationCap {
			iterSize = e.cfg.IterationCap
		}
		e.runDrawIteration(primBase, iterSize)
		primBase += iterSize
		remaining -= iterSize
	}

	for i := range e.workerStats {
		e.stats.Add(e.workerStats[i])
	}
	return nil
}

func (e *Engine) runDrawIteration(primBase, iterSize int) {
	e.tileTable.ResetQueuedFlags()
	e.queue.Reset()
	e.binTable.Reset()
	e.coverageTable.Reset()

	n := e.cfg.WorkerCount
	per := iterSize / n
	start := primBase
	for i := 0; i < n; i++ {
		size := per
		if i == n-1 {
			size = iterSize - per*(n-1) // last worker absorbs the remainder
		}
		e.iteration.workerPrimStart[i] = start
		e.iteration.workerPrimEnd[i] = start + size
		start += size
	}

	for i := 0; i < n; i++ {
		e.states.Store(i, parallel.DrawcallTop)
	}
	e.states.WaitForAll(parallel.Bottom)
	for i := 0; i < n; i++ {
		e.states.Store(i, parallel.Idle)
	}
}
