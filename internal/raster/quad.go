package raster

import (
	"github.com/tylerraster/tyler/internal/geom"
	"github.com/tylerraster/tyler/internal/wide"
)

// quadOffsets holds the four sample-center x offsets within a quad row.
var quadOffsets = wide.F32x4{0.5, 1.5, 2.5, 3.5}

// ownsTie reports whether an edge wins the shared-edge tie-break: a
// sample exactly on the edge (E == 0) counts as covered only for the edge
// for which a > 0, or a == 0 and b >= 0. This is the standard top-left
// fill rule generalized to an arbitrary edge orientation, so two
// triangles sharing an edge never double-cover or leave a gap on it.
func ownsTie(e geom.EdgeCoeffs) bool {
	return e.A > 0 || (e.A == 0 && e.B >= 0)
}

// EvaluateQuadMask evaluates the three triangle edge functions at the four
// pixel centers of one quad row, (baseX+0.5, baseX+1.5, baseX+2.5,
// baseX+3.5) at the shared sample row baseY (already the pixel-center y,
// i.e. row origin + 0.5), and returns the 4-bit inside mask (bit i set
// when pixel i is covered).
func EvaluateQuadMask(e0, e1, e2 geom.EdgeCoeffs, baseX, baseY float32) uint8 {
	xs := quadOffsets.Add(wide.SplatF32(baseX))
	mask := uint8(0b1111)
	for _, e := range [3]geom.EdgeCoeffs{e0, e1, e2} {
		vals := xs.Mul(wide.SplatF32(e.A)).Add(wide.SplatF32(e.B*baseY + e.C))
		zero := wide.SplatF32(0)
		var edgeMask uint8
		if ownsTie(e) {
			edgeMask = vals.GreaterEqualMask(zero)
		} else {
			edgeMask = vals.GreaterMask(zero)
		}
		mask &= edgeMask
	}
	return mask
}

// Basis computes the perspective-correct basis functions f0, f1 at a
// single sample, per F_k(x,y) = a_k*x + b_k*y + c_k; r = 1/(F0+F1+F2);
// f_k = r*F_k. f2 = 1 - f0 - f1 is implicit.
func Basis(e0, e1, e2 geom.EdgeCoeffs, x, y float32) (f0, f1 float32) {
	F0 := e0.Eval(x, y)
	F1 := e1.Eval(x, y)
	F2 := e2.Eval(x, y)
	r := 1 / (F0 + F1 + F2)
	return r * F0, r * F1
}

// BasisQuad computes f0, f1 for all four samples of a quad row at once.
func BasisQuad(e0, e1, e2 geom.EdgeCoeffs, baseX, baseY float32) (f0, f1 wide.F32x4) {
	xs := quadOffsets.Add(wide.SplatF32(baseX))
	eval := func(e geom.EdgeCoeffs) wide.F32x4 {
		return xs.Mul(wide.SplatF32(e.A)).Add(wide.SplatF32(e.B*baseY + e.C))
	}
	F0 := eval(e0)
	F1 := eval(e1)
	F2 := eval(e2)
	r := F0.Add(F1).Add(F2).Recip()
	return F0.Mul(r), F1.Mul(r)
}
