package gpucore

// PipelineStats accumulates counters useful for diagnosing a drawcall:
// how much work the geometry, binning, and fragment stages actually did.
// The engine resets these at the start of every drawcall and updates them
// as each worker finishes its range.
type PipelineStats struct {
	PrimitivesSubmitted int
	PrimitivesRejected  int
	PrimitivesCulled    int
	VertexShaderInvocations int
	VertexCacheHits         int
	TilesQueued             int
	FragmentShaderInvocations int
}

// Add merges another stats snapshot into this one, used when folding each
// worker's per-range counters into the drawcall total.
func (s *PipelineStats) Add(other PipelineStats) {
	s.PrimitivesSubmitted += other.PrimitivesSubmitted
	s.PrimitivesRejected += other.PrimitivesRejected
	s.PrimitivesCulled += other.PrimitivesCulled
	s.VertexShaderInvocations += other.VertexShaderInvocations
	s.VertexCacheHits += other.VertexCacheHits
	s.TilesQueued += other.TilesQueued
	s.FragmentShaderInvocations += other.FragmentShaderInvocations
}
