// Package gpucore holds the small shader-facing descriptor types the
// engine and the caller's shader functions share: active attribute
// counts, and the per-vertex / per-fragment attribute storage passed
// across the shader function-pointer boundary.
package gpucore

import (
	"github.com/tylerraster/tyler/internal/geom"
	"github.com/tylerraster/tyler/internal/wide"
)

// ShaderMetadata describes how many attributes of each vector width are
// active for the current drawcall's vertex layout. The core supports only
// 2/3/4-component float attributes; anything else is a caller error.
type ShaderMetadata struct {
	NumVec4 int
	NumVec3 int
	NumVec2 int
}

// Valid reports whether the metadata describes a layout the core can
// address with its fixed-width Setup Buffers.
func (m ShaderMetadata) Valid() bool {
	return m.NumVec4 >= 0 && m.NumVec3 >= 0 && m.NumVec2 >= 0 &&
		m.NumVec4 <= 4 && m.NumVec3 <= 4 && m.NumVec2 <= 4
}

// Attributes is the per-vertex or per-fragment attribute bundle passed to
// user shader functions: one slice per active component width, indexed in
// the order ShaderMetadata declares them.
type Attributes struct {
	Vec4 []geom.Vec4
	Vec3 []geom.Vec3
	Vec2 []geom.Vec2
}

// NewAttributes allocates an Attributes bundle sized for the given
// metadata.
func NewAttributes(meta ShaderMetadata) Attributes {
	return Attributes{
		Vec4: make([]geom.Vec4, meta.NumVec4),
		Vec3: make([]geom.Vec3, meta.NumVec3),
		Vec2: make([]geom.Vec2, meta.NumVec2),
	}
}

// QuadVec4 holds one vec4 attribute's interpolated value across all four
// lanes of a quad, one wide.F32x4 per component.
type QuadVec4 struct{ X, Y, Z, W wide.F32x4 }

// QuadVec3 is QuadVec4's 3-component counterpart.
type QuadVec3 struct{ X, Y, Z wide.F32x4 }

// QuadVec2 is QuadVec4's 2-component counterpart.
type QuadVec2 struct{ X, Y wide.F32x4 }

// QuadAttributes is the per-quad attribute bundle passed to fragment
// shaders: one slice per active component width, each entry holding all
// four of the quad's samples for that attribute.
type QuadAttributes struct {
	Vec4 []QuadVec4
	Vec3 []QuadVec3
	Vec2 []QuadVec2
}

// NewQuadAttributes allocates a QuadAttributes bundle sized for the given
// metadata.
func NewQuadAttributes(meta ShaderMetadata) QuadAttributes {
	return QuadAttributes{
		Vec4: make([]QuadVec4, meta.NumVec4),
		Vec3: make([]QuadVec3, meta.NumVec3),
		Vec2: make([]QuadVec2, meta.NumVec2),
	}
}

// VertexAttribute names one active attribute slot by width and index.
// The engine does not consume it: the vertex stride a caller configures
// is not checked against the shader metadata.
type VertexAttribute struct {
	Width int // 2, 3, or 4
	Index int
}
