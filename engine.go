package tyler

import (
	"github.com/tylerraster/tyler/gpucore"
	"github.com/tylerraster/tyler/internal/parallel"
)

// WorkerState mirrors a pipeline worker's current pipeline stage, exposed
// read-only for introspection and tests.
type WorkerState string

const (
	StateIdle        WorkerState = "IDLE"
	StateDrawcallTop WorkerState = "DRAWCALL_TOP"
	StateGeometry    WorkerState = "GEOMETRY"
	StateBinning     WorkerState = "BINNING"
	StatePostBinner  WorkerState = "POST_BINNER"
	StateRaster      WorkerState = "RASTER"
	StatePostRaster  WorkerState = "POST_RASTER"
	StateFragment    WorkerState = "FRAGMENT"
	StateBottom      WorkerState = "BOTTOM"
	StateTerminated  WorkerState = "TERMINATED"
)

// Engine owns every shared table the pipeline workers touch and drives
// draw iterations across them. Create one with NewEngine, configure it
// with the Set* methods, then call Draw.
type Engine struct {
	cfg RasterizerConfig

	fb            *Framebuffer
	tileTable     *parallel.TileTable
	queue         *parallel.RasterQueue
	binTable      *parallel.BinTable
	coverageTable *parallel.CoverageMaskTable
	setup         *parallel.SetupBuffers
	vcaches       []*parallel.VertexCache
	states        *parallel.WorkerStates

	vertexBuffer []byte
	vertexStride int

	indexBuffer16 []uint16
	indexBuffer32 []uint32
	index32       bool

	constants []byte

	vs   VertexShader
	fs   FragmentShader
	meta gpucore.ShaderMetadata

	stats       gpucore.PipelineStats
	workerStats []gpucore.PipelineStats

	// iteration describes the current draw iteration's shared parameters,
	// published by Draw and read by every worker without further
	// synchronization: it is only mutated between a BOTTOM/IDLE round-trip
	// the main thread already waits on.
	iteration iterationParams

	done []chan struct{}
}

type iterationParams struct {
	vertexOffset    int
	isIndexed       bool
	workerPrimStart []int
	workerPrimEnd   []int
}

// NewEngine constructs an Engine and starts its worker goroutines. Call
// Close when done to terminate them.
func NewEngine(opts ...EngineOption) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	assert(cfg.TileSize > 0 && cfg.TileSize&(cfg.TileSize-1) == 0, "tyler: tile size must be a power of two")
	assert(cfg.WorkerCount > 0, "tyler: worker count must be positive")
	assert(cfg.IterationCap > 0, "tyler: iteration cap must be positive")

	e := &Engine{
		cfg:    cfg,
		states: parallel.NewWorkerStates(cfg.WorkerCount),
	}
	e.vcaches = make([]*parallel.VertexCache, cfg.WorkerCount)
	for i := range e.vcaches {
		e.vcaches[i] = parallel.NewVertexCache(cfg.CacheEnabled, cfg.CacheCapacity)
	}
	e.iteration.workerPrimStart = make([]int, cfg.WorkerCount)
	e.iteration.workerPrimEnd = make([]int, cfg.WorkerCount)
	e.workerStats = make([]gpucore.PipelineStats, cfg.WorkerCount)

	e.setup = parallel.NewSetupBuffers(cfg.IterationCap, 0, 0, 0)

	e.done = make([]chan struct{}, cfg.WorkerCount)
	for i := range e.done {
		e.done[i] = make(chan struct{})
		go e.workerLoop(i)
	}

	Logger().Info("engine constructed", "workers", cfg.WorkerCount, "tileSize", cfg.TileSize, "iterationCap", cfg.IterationCap)
	return e
}

// SetRenderTargets installs the caller-owned framebuffer, rebuilding the
// tile table, bin table, coverage mask table, and rasterizer queue if the
// dimensions changed.
func (e *Engine) SetRenderTargets(fb *Framebuffer) error {
	if fb == nil || fb.Width <= 0 || fb.Height <= 0 {
		return ErrInvalidDimensions
	}
	if !fb.Valid() {
		return ErrFramebufferTooSmall
	}
	resized := e.fb == nil || e.fb.Width != fb.Width || e.fb.Height != fb.Height
	e.fb = fb
	if resized {
		if e.tileTable == nil {
			e.tileTable = parallel.NewTileTable(fb.Width, fb.Height, e.cfg.TileSize)
			e.queue = parallel.NewRasterQueue(e.tileTable.Count(), e.cfg.WorkerCount)
			// The last worker's range holds at most M/N + N - 1 primitives.
			e.binTable = parallel.NewBinTable(e.tileTable.Count(), e.cfg.WorkerCount, e.cfg.IterationCap/e.cfg.WorkerCount+e.cfg.WorkerCount)
			e.coverageTable = parallel.NewCoverageMaskTable(e.tileTable.Count(), e.cfg.WorkerCount)
		} else {
			e.tileTable.Resize(fb.Width, fb.Height)
			e.queue = parallel.NewRasterQueue(e.tileTable.Count(), e.cfg.WorkerCount)
			e.binTable.Resize(e.tileTable.Count())
			e.coverageTable.Resize(e.tileTable.Count())
		}
		Logger().Info("render targets resized", "width", fb.Width, "height", fb.Height, "tiles", e.tileTable.Count())
	}
	return nil
}

// ClearRenderTargets clears the bound color and/or depth buffer.
func (e *Engine) ClearRenderTargets(clearColor bool, color [4]float32, clearDepth bool, depth float32) {
	assert(e.fb != nil, "tyler: ClearRenderTargets called before SetRenderTargets")
	e.fb.Clear(clearColor, color, clearDepth, depth)
}

// SetVertexBuffer installs the raw vertex data and its per-vertex stride
// in bytes.
func (e *Engine) SetVertexBuffer(data []byte, strideBytes int) {
	e.vertexBuffer = data
	e.vertexStride = strideBytes
}

// SetVertexInputStride overrides the vertex stride without replacing the
// buffer, for callers that build the stride separately from the data.
func (e *Engine) SetVertexInputStride(strideBytes int) {
	e.vertexStride = strideBytes
}

// SetIndexBuffer16 installs a 16-bit contiguous triangle-list index buffer.
func (e *Engine) SetIndexBuffer16(indices []uint16) {
	e.indexBuffer16 = indices
	e.indexBuffer32 = nil
	e.index32 = false
}

// SetIndexBuffer32 installs a 32-bit contiguous triangle-list index buffer.
func (e *Engine) SetIndexBuffer32(indices []uint32) {
	e.indexBuffer32 = indices
	e.indexBuffer16 = nil
	e.index32 = true
}

// SetConstantBuffer installs the opaque per-drawcall constant blob passed
// to both shader stages unmodified.
func (e *Engine) SetConstantBuffer(data []byte) {
	e.constants = data
}

// SetVertexShader installs the vertex shader function pointer.
func (e *Engine) SetVertexShader(vs VertexShader) {
	e.vs = vs
}

// SetFragmentShader installs the fragment shader function pointer.
func (e *Engine) SetFragmentShader(fs FragmentShader) {
	e.fs = fs
}

// SetShaderMetadata declares how many vec4/vec3/vec2 attributes are
// active, resizing the Setup Buffers' per-attribute delta arrays.
func (e *Engine) SetShaderMetadata(meta gpucore.ShaderMetadata) error {
	if !meta.Valid() {
		return ErrInvalidShaderMetadata
	}
	e.meta = meta
	e.setup = parallel.NewSetupBuffers(e.cfg.IterationCap, meta.NumVec4, meta.NumVec3, meta.NumVec2)
	return nil
}

// Stats returns a snapshot of the pipeline statistics of the most recent
// drawcall (see gpucore.PipelineStats).
func (e *Engine) Stats() gpucore.PipelineStats { return e.stats }

// WorkerState reports worker i's current pipeline stage. Intended for
// tests and diagnostics, not for steering application logic.
func (e *Engine) WorkerState(i int) WorkerState {
	switch e.states.Load(i) {
	case parallel.Idle:
		return StateIdle
	case parallel.DrawcallTop:
		return StateDrawcallTop
	case parallel.Geometry:
		return StateGeometry
	case parallel.Binning:
		return StateBinning
	case parallel.PostBinner:
		return StatePostBinner
	case parallel.Raster:
		return StateRaster
	case parallel.PostRaster:
		return StatePostRaster
	case parallel.Fragment:
		return StateFragment
	case parallel.Bottom:
		return StateBottom
	default:
		return StateTerminated
	}
}

// WorkerCount reports the configured number of pipeline workers.
func (e *Engine) WorkerCount() int { return e.cfg.WorkerCount }

// Close terminates every worker goroutine and waits for them to exit. The
// engine must not be used after Close.
func (e *Engine) Close() {
	for i := 0; i < e.cfg.WorkerCount; i++ {
		e.states.Store(i, parallel.Terminated)
	}
	for _, d := range e.done {
		<-d
	}
}
