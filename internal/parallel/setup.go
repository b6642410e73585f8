package parallel

import "github.com/tylerraster/tyler/internal/geom"

// BBox is an axis-aligned bounding box in raster (pixel) space, already
// clamped to the framebuffer.
type BBox struct {
	MinX, MinY, MaxX, MaxY float32
}

// SetupBuffers are the shared scratch arrays addressed by primitive slot
// id within the current draw iteration: edge coefficients, bounding box,
// depth-interpolation deltas, and per-attribute interpolation-delta
// arrays. Every slot is written by exactly one worker (the owner of that
// primitive's slice) during the geometry stage and is read-only by every
// worker thereafter within the iteration — no locking is required.
//
// All arrays are preallocated for the engine's configured iteration cap M
// and never reallocated mid-iteration: growing them would invalidate
// indices other workers compute concurrently.
type SetupBuffers struct {
	Edges0, Edges1, Edges2 []geom.EdgeCoeffs
	BBoxes                 []BBox
	ZDeltas                []geom.AttrTriple

	// Vec4Deltas, Vec3Deltas, Vec2Deltas are laid out [slot][attrIndex][component]:
	// attrIndex selects which of the up to 4 active attributes of that width,
	// component selects which of its 4/3/2 components, per
	// geom.NewAttrTriple. Only the first numVec4/numVec3/numVec2 attrIndex
	// entries are written each iteration; the rest are stale and unread.
	Vec4Deltas [][4][4]geom.AttrTriple
	Vec3Deltas [][4][3]geom.AttrTriple
	Vec2Deltas [][4][2]geom.AttrTriple

	numVec4, numVec3, numVec2 int
}

// NewSetupBuffers preallocates storage for up to iterCap primitives per
// iteration, with numVec4/numVec3/numVec2 active attributes of each kind.
func NewSetupBuffers(iterCap, numVec4, numVec3, numVec2 int) *SetupBuffers {
	return &SetupBuffers{
		Edges0:     make([]geom.EdgeCoeffs, iterCap),
		Edges1:     make([]geom.EdgeCoeffs, iterCap),
		Edges2:     make([]geom.EdgeCoeffs, iterCap),
		BBoxes:     make([]BBox, iterCap),
		ZDeltas:    make([]geom.AttrTriple, iterCap),
		Vec4Deltas: make([][4][4]geom.AttrTriple, iterCap),
		Vec3Deltas: make([][4][3]geom.AttrTriple, iterCap),
		Vec2Deltas: make([][4][2]geom.AttrTriple, iterCap),
		numVec4:    numVec4,
		numVec3:    numVec3,
		numVec2:    numVec2,
	}
}

// Cap reports the preallocated iteration capacity.
func (sb *SetupBuffers) Cap() int { return len(sb.Edges0) }

// NumVec4, NumVec3, NumVec2 report the active attribute counts of each
// component width, per the engine's shader metadata.
func (sb *SetupBuffers) NumVec4() int { return sb.numVec4 }
func (sb *SetupBuffers) NumVec3() int { return sb.numVec3 }
func (sb *SetupBuffers) NumVec2() int { return sb.numVec2 }
