package tyler

import (
	"github.com/tylerraster/tyler/gpucore"
	"github.com/tylerraster/tyler/internal/geom"
	"github.com/tylerraster/tyler/internal/parallel"
)

// clipPlane tests whether a clip-space position lies outside one of the
// six view-frustum planes: -w <= x <= w, -w <= y <= w, 0 <= z <= w.
type clipPlane func(v geom.Vec4) bool

var clipPlanes = [6]clipPlane{
	func(v geom.Vec4) bool { return v.X > v.W },
	func(v geom.Vec4) bool { return v.X < -v.W },
	func(v geom.Vec4) bool { return v.Y > v.W },
	func(v geom.Vec4) bool { return v.Y < -v.W },
	func(v geom.Vec4) bool { return v.Z > v.W },
	func(v geom.Vec4) bool { return v.Z < 0 },
}

// triviallyOutside reports whether all three vertices of a triangle lie
// outside the same clip plane, in which case the whole triangle can be
// rejected without subdividing it. This is a trivial-reject test only:
// triangles straddling the near plane are rasterized using their
// unclipped homogeneous coordinates, per the device mapping's tolerance
// for w < 0 handled downstream by the edge functions.
func triviallyOutside(v0, v1, v2 geom.Vec4) bool {
	for _, plane := range clipPlanes {
		if plane(v0) && plane(v1) && plane(v2) {
			return true
		}
	}
	return false
}

// deviceMap converts a clip-space position to the homogeneous device
// coordinates geom.SetupTriangle expects.
func deviceMap(v geom.Vec4, width, height int) (x, y, w float32) {
	w = v.W
	x = w * (v.X + w) * float32(width) / 2
	y = w * (v.Y + w) * float32(height) / 2
	return x, y, w
}

// ndcToRaster projects a clip-space position to its raster-space pixel
// location via the ordinary perspective divide, used only to build each
// triangle's bounding box for tile binning (the edge functions themselves
// stay in the homogeneous device space deviceMap produces).
func ndcToRaster(v geom.Vec4, width, height int) (x, y float32) {
	invW := 1 / v.W
	x = (v.X*invW + 1) * 0.5 * float32(width)
	y = (v.Y*invW + 1) * 0.5 * float32(height)
	return x, y
}

// shadeVertex runs the vertex shader for one raw input index, consulting
// and populating the worker's vertex cache. The returned CachedVertex's
// slices are owned by the cache and must not be retained past the next
// Insert for the same slot.
func (e *Engine) shadeVertex(workerIdx int, inputIdx int32, local *gpucore.PipelineStats) parallel.CachedVertex {
	cache := e.vcaches[workerIdx]
	if cached, ok := cache.Lookup(inputIdx); ok {
		local.VertexCacheHits++
		return cached
	}

	offset := int(inputIdx) * e.vertexStride
	input := e.vertexBuffer[offset : offset+e.vertexStride]

	attrs := gpucore.NewAttributes(e.meta)
	clip := e.vs(input, &attrs, e.constants)
	local.VertexShaderInvocations++

	cv := parallel.CachedVertex{Clip: clip, Vec4s: attrs.Vec4, Vec3s: attrs.Vec3, Vec2s: attrs.Vec2}
	cache.Insert(inputIdx, cv)
	return cv
}

// vertexIndex resolves the raw input index for triangle primIdx's corner
// (0, 1, or 2): read from the bound index buffer at position
// vertexOffset + 3*primIdx + corner for an indexed draw, or that position
// itself taken as the vertex number otherwise.
func (e *Engine) vertexIndex(primIdx, corner int) int32 {
	i := e.iteration.vertexOffset + primIdx*3 + corner
	if !e.iteration.isIndexed {
		return int32(i)
	}
	if e.index32 {
		return int32(e.indexBuffer32[i])
	}
	return int32(e.indexBuffer16[i])
}

// shadeAndSetup runs the geometry stage proper for one triangle: vertex
// shading, interpolation-delta computation, trivial-reject clipping, and
// triangle setup with area cull. slot is this triangle's index into the
// shared Setup Buffers for the current iteration; binSetupSlot performs
// the tile binning pass over the same slot afterward.
//
// A culled or trivially rejected triangle is marked by leaving its
// BBoxes[slot] degenerate (MinX >= MaxX), which binSetupSlot checks
// before doing any tile work.
func (e *Engine) shadeAndSetup(workerIdx, primIdx, slot int, local *gpucore.PipelineStats) {
	local.PrimitivesSubmitted++

	i0 := e.vertexIndex(primIdx, 0)
	i1 := e.vertexIndex(primIdx, 1)
	i2 := e.vertexIndex(primIdx, 2)

	v0 := e.shadeVertex(workerIdx, i0, local)
	v1 := e.shadeVertex(workerIdx, i1, local)
	// Vertex 2 is cached and looked up under its own index, not merged
	// with vertex 0's slot even when a strip/fan shares geometry with the
	// triangle's first corner: the cache keys strictly on raw input index.
	v2 := e.shadeVertex(workerIdx, i2, local)

	if triviallyOutside(v0.Clip, v1.Clip, v2.Clip) {
		local.PrimitivesRejected++
		e.setup.BBoxes[slot] = parallel.BBox{}
		return
	}

	dx0, dy0, dw0 := deviceMap(v0.Clip, e.fb.Width, e.fb.Height)
	dx1, dy1, dw1 := deviceMap(v1.Clip, e.fb.Width, e.fb.Height)
	dx2, dy2, dw2 := deviceMap(v2.Clip, e.fb.Width, e.fb.Height)

	e0, e1, e2, area := geom.SetupTriangle(dx0, dy0, dw0, dx1, dy1, dw1, dx2, dy2, dw2)
	if area <= 0 {
		local.PrimitivesCulled++
		e.setup.BBoxes[slot] = parallel.BBox{}
		return
	}

	e.setup.Edges0[slot] = e0
	e.setup.Edges1[slot] = e1
	e.setup.Edges2[slot] = e2
	e.setup.ZDeltas[slot] = geom.NewAttrTriple(v0.Clip.Z, v1.Clip.Z, v2.Clip.Z)

	for a := 0; a < e.meta.NumVec4; a++ {
		var c0, c1, c2 geom.Vec4
		if a < len(v0.Vec4s) {
			c0, c1, c2 = v0.Vec4s[a], v1.Vec4s[a], v2.Vec4s[a]
		}
		e.setup.Vec4Deltas[slot][a] = [4]geom.AttrTriple{
			geom.NewAttrTriple(c0.X, c1.X, c2.X),
			geom.NewAttrTriple(c0.Y, c1.Y, c2.Y),
			geom.NewAttrTriple(c0.Z, c1.Z, c2.Z),
			geom.NewAttrTriple(c0.W, c1.W, c2.W),
		}
	}
	for a := 0; a < e.meta.NumVec3; a++ {
		var c0, c1, c2 geom.Vec3
		if a < len(v0.Vec3s) {
			c0, c1, c2 = v0.Vec3s[a], v1.Vec3s[a], v2.Vec3s[a]
		}
		e.setup.Vec3Deltas[slot][a] = [3]geom.AttrTriple{
			geom.NewAttrTriple(c0.X, c1.X, c2.X),
			geom.NewAttrTriple(c0.Y, c1.Y, c2.Y),
			geom.NewAttrTriple(c0.Z, c1.Z, c2.Z),
		}
	}
	for a := 0; a < e.meta.NumVec2; a++ {
		var c0, c1, c2 geom.Vec2
		if a < len(v0.Vec2s) {
			c0, c1, c2 = v0.Vec2s[a], v1.Vec2s[a], v2.Vec2s[a]
		}
		e.setup.Vec2Deltas[slot][a] = [2]geom.AttrTriple{
			geom.NewAttrTriple(c0.X, c1.X, c2.X),
			geom.NewAttrTriple(c0.Y, c1.Y, c2.Y),
		}
	}

	minX, minY := ndcToRaster(v0.Clip, e.fb.Width, e.fb.Height)
	maxX, maxY := minX, minY
	for _, v := range [2]geom.Vec4{v1.Clip, v2.Clip} {
		x, y := ndcToRaster(v, e.fb.Width, e.fb.Height)
		minX, maxX = minf(minX, x), maxf(maxX, x)
		minY, maxY = minf(minY, y), maxf(maxY, y)
	}
	minX, minY = maxf(minX, 0), maxf(minY, 0)
	maxX, maxY = minf(maxX, float32(e.fb.Width)), minf(maxY, float32(e.fb.Height))
	if minX >= maxX || minY >= maxY {
		e.setup.BBoxes[slot] = parallel.BBox{}
		return
	}
	e.setup.BBoxes[slot] = parallel.BBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
