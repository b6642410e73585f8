package tyler

import (
	"github.com/tylerraster/tyler/gpucore"
	"github.com/tylerraster/tyler/internal/geom"
	"github.com/tylerraster/tyler/internal/wide"
)

// quadVec4From, quadVec3From, quadVec2From reconstruct one attribute's
// interpolated value across all four lanes of a quad from its
// per-component delta triples and the quad's basis functions.

func quadVec4From(d [4]geom.AttrTriple, f0, f1 wide.F32x4) gpucore.QuadVec4 {
	return gpucore.QuadVec4{
		X: d[0].EvalQuad(f0, f1),
		Y: d[1].EvalQuad(f0, f1),
		Z: d[2].EvalQuad(f0, f1),
		W: d[3].EvalQuad(f0, f1),
	}
}

func quadVec3From(d [3]geom.AttrTriple, f0, f1 wide.F32x4) gpucore.QuadVec3 {
	return gpucore.QuadVec3{
		X: d[0].EvalQuad(f0, f1),
		Y: d[1].EvalQuad(f0, f1),
		Z: d[2].EvalQuad(f0, f1),
	}
}

func quadVec2From(d [2]geom.AttrTriple, f0, f1 wide.F32x4) gpucore.QuadVec2 {
	return gpucore.QuadVec2{
		X: d[0].EvalQuad(f0, f1),
		Y: d[1].EvalQuad(f0, f1),
	}
}
