package tyler

import (
	"github.com/tylerraster/tyler/gpucore"
	"github.com/tylerraster/tyler/internal/geom"
)

// VertexShader transforms one vertex's raw input bytes (stride bytes
// starting at byte index*stride of the bound vertex buffer, where index is
// the vertex's input index) into clip-space position, writing any active
// attributes into
// out. The constant buffer is the caller's opaque per-drawcall blob.
type VertexShader func(vertexInput []byte, out *gpucore.Attributes, constants []byte) geom.Vec4

// FragmentShader computes one quad's worth of output colors — up to 4
// pixels in a horizontal row — from its perspective-interpolated
// attributes and the constant buffer, writing linear RGBA in [0,1] per
// lane into outColors. The engine invokes this once per covered quad, not
// once per pixel: lanes that did not pass the depth test or the quad's
// coverage mask are never written back, so a shader is free to compute
// garbage for them.
type FragmentShader func(attrs *gpucore.QuadAttributes, constants []byte, outColors *[4][4]float32)
