package geom

// EdgeCoeffs holds one triangle edge function's coefficients,
// E(x,y) = A*x + B*y + C, in homogeneous device space.
type EdgeCoeffs struct {
	A, B, C float32
}

// Eval evaluates the edge function at a device-space sample.
func (e EdgeCoeffs) Eval(x, y float32) float32 {
	return e.A*x + e.B*y + e.C
}

// SetupTriangle computes the three adjoint-derived edge coefficient
// triples for a triangle given in 2-D homogeneous device coordinates
// (x', y', w') per vertex, following spec.md's device mapping:
//
//	x' = w*(x+w)*width/2
//	y' = w*(y+w)*height/2
//	w' = w
//
// The adjoint of the 3x3 vertex matrix
//
//	| x0 x1 x2 |
//	| y0 y1 y2 |
//	| w0 w1 w2 |
//
// yields, column by column, the edge opposite each vertex. Column k of the
// adjoint is the cross product of the other two columns, which is exactly
// the coefficients of the edge function that is zero along the line
// through those two vertices and positive on the side of vertex k.
//
// SetupTriangle returns the three edges in vertex order (edge0 opposite
// vertex 0, and so on) and the signed area = C0*w0 + C1*w1 + C2*w2.
func SetupTriangle(x0, y0, w0, x1, y1, w1, x2, y2, w2 float32) (e0, e1, e2 EdgeCoeffs, area float32) {
	e0 = cross3(x1, y1, w1, x2, y2, w2)
	e1 = cross3(x2, y2, w2, x0, y0, w0)
	e2 = cross3(x0, y0, w0, x1, y1, w1)

	area = e0.C*w0 + e1.C*w1 + e2.C*w2
	return e0, e1, e2, area
}

// cross3 computes the cross product of two homogeneous 2-D points,
// producing the line-coefficient triple (A, B, C) of the line through them.
func cross3(x0, y0, w0, x1, y1, w1 float32) EdgeCoeffs {
	return EdgeCoeffs{
		A: y0*w1 - w0*y1,
		B: w0*x1 - x0*w1,
		C: x0*y1 - y0*x1,
	}
}
