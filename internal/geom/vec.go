// Package geom provides the small vector and matrix value types shared by
// the rasterization core: clip-space positions, interpolated vertex
// attributes, and the 3x3 adjoint used for triangle edge setup.
package geom

import "github.com/tylerraster/tyler/internal/wide"

// Vec2 is a 2-component float32 vector, used for vec2 vertex attributes
// (e.g. texture coordinates).
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Vec3 is a 3-component float32 vector, used for vec3 vertex attributes
// (e.g. normals) and for RGB color.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Vec4 is a 4-component float32 vector: clip-space positions
// (x, y, z, w) and vec4 vertex attributes.
type Vec4 struct {
	X, Y, Z, W float32
}

// Add returns the sum of two vectors.
func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{v.X + w.X, v.Y + w.Y, v.Z + w.Z, v.W + w.W}
}

// Sub returns the difference of two vectors.
func (v Vec4) Sub(w Vec4) Vec4 {
	return Vec4{v.X - w.X, v.Y - w.Y, v.Z - w.Z, v.W - w.W}
}

// Mul returns the vector scaled by a scalar.
func (v Vec4) Mul(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// AttrTriple holds the three per-component interpolation deltas that the
// geometry stage stores for a single attribute component:
// (a0-a2, a1-a2, a2), matching the z-delta layout used for depth.
// Evaluated at a sample as f0*D0 + f1*D1 + D2, with f2 implicit.
type AttrTriple struct {
	D0, D1, D2 float32
}

// Eval reconstructs the interpolated value f0*D0 + f1*D1 + D2.
func (t AttrTriple) Eval(f0, f1 float32) float32 {
	return f0*t.D0 + f1*t.D1 + t.D2
}

// EvalQuad is Eval's 4-wide counterpart, reconstructing one value per lane
// of a quad's basis functions at once.
func (t AttrTriple) EvalQuad(f0, f1 wide.F32x4) wide.F32x4 {
	return f0.Mul(wide.SplatF32(t.D0)).Add(f1.Mul(wide.SplatF32(t.D1))).Add(wide.SplatF32(t.D2))
}

// NewAttrTriple builds the (a0-a2, a1-a2, a2) triple from three samples of
// one attribute component across a triangle's three vertices.
func NewAttrTriple(a0, a1, a2 float32) AttrTriple {
	return AttrTriple{D0: a0 - a2, D1: a1 - a2, D2: a2}
}
