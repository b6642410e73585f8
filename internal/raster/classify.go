// Package raster implements the hierarchical tile/block/quad coverage
// classification and the perspective-correct interpolation basis used by
// the rasterization stage. Edge coefficients come from
// internal/geom.SetupTriangle; quad-level sample evaluation uses
// internal/wide.F32x4 so the compiler can auto-vectorize the inner loop.
package raster

import "github.com/tylerraster/tyler/internal/geom"

// Classification is the outcome of testing one edge triple against a
// rectangular region (tile or 8x8 block).
type Classification int

const (
	Reject Classification = iota
	Accept
	Overlap
)

// trCorner returns the corner of [ox,ox+sx] x [oy,oy+sy] furthest along
// the edge's normal (a, b) — the corner most likely to have the largest
// E(x,y). If even this corner is outside, the whole region is outside.
func trCorner(e geom.EdgeCoeffs, ox, oy, sx, sy float32) (x, y float32) {
	x = ox
	if e.A > 0 {
		x = ox + sx
	}
	y = oy
	if e.B > 0 {
		y = oy + sy
	}
	return x, y
}

// taCorner is trCorner's diagonal partner: the corner furthest opposite
// the edge's normal, the one most likely to have the smallest E(x,y). If
// even this corner is inside, the whole region is inside.
func taCorner(e geom.EdgeCoeffs, ox, oy, sx, sy float32) (x, y float32) {
	x = ox + sx
	if e.A > 0 {
		x = ox
	}
	y = oy + sy
	if e.B > 0 {
		y = oy
	}
	return x, y
}

// ClassifyRegion performs the hierarchical trivial-reject / trivial-accept
// / overlap test for a rectangular region against the three triangle edge
// functions.
func ClassifyRegion(e0, e1, e2 geom.EdgeCoeffs, ox, oy, sx, sy float32) Classification {
	edges := [3]geom.EdgeCoeffs{e0, e1, e2}

	for _, e := range edges {
		trx, try := trCorner(e, ox, oy, sx, sy)
		if e.Eval(trx, try) < 0 {
			return Reject
		}
	}

	allInside := true
	for _, e := range edges {
		tax, tay := taCorner(e, ox, oy, sx, sy)
		if e.Eval(tax, tay) < 0 {
			allInside = false
			break
		}
	}
	if allInside {
		return Accept
	}
	return Overlap
}
