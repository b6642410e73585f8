package raster

import (
	"testing"

	"github.com/tylerraster/tyler/internal/geom"
)

func TestEvaluateQuadMask_FullyCovered(t *testing.T) {
	e0, e1, e2, _ := geom.SetupTriangle(
		-100, -100, 1,
		200, -100, 1,
		-100, 200, 1,
	)

	got := EvaluateQuadMask(e0, e1, e2, 0, 0.5)
	if got != 0b1111 {
		t.Errorf("EvaluateQuadMask() = %04b, want 1111", got)
	}
}

func TestEvaluateQuadMask_FullyOutside(t *testing.T) {
	e0, e1, e2, _ := geom.SetupTriangle(
		-100, -100, 1,
		200, -100, 1,
		-100, 200, 1,
	)

	got := EvaluateQuadMask(e0, e1, e2, 100000, 0.5)
	if got != 0 {
		t.Errorf("EvaluateQuadMask() = %04b, want 0000", got)
	}
}

// TestEvaluateQuadMask_SharedEdgeNoDoubleCoverage verifies the fill-rule
// tie-break: complementary triangles tessellating a shared edge never
// both claim the same on-edge sample.
func TestEvaluateQuadMask_SharedEdgeNoDoubleCoverage(t *testing.T) {
	// Triangle A: lower-left half of the unit square, hypotenuse x+y=16.
	a0, a1, a2, _ := geom.SetupTriangle(
		0, 0, 1,
		16, 0, 1,
		0, 16, 1,
	)
	// Triangle B: upper-right half, sharing the same hypotenuse.
	b0, b1, b2, _ := geom.SetupTriangle(
		16, 16, 1,
		0, 16, 1,
		16, 0, 1,
	)

	// Quad row at y-center 8.5: the fourth sample (x=7.5) lands exactly
	// on the shared hypotenuse x+y=16.
	baseX, baseY := float32(4), float32(8.5)

	maskA := EvaluateQuadMask(a0, a1, a2, baseX, baseY)
	maskB := EvaluateQuadMask(b0, b1, b2, baseX, baseY)

	if maskA&maskB != 0 {
		t.Errorf("shared-edge double coverage: A=%04b B=%04b overlap=%04b", maskA, maskB, maskA&maskB)
	}
}

func TestBasis_SumsToOneWithImplicitF2(t *testing.T) {
	e0, e1, e2, _ := geom.SetupTriangle(
		0, 0, 1,
		16, 0, 1,
		0, 16, 1,
	)

	f0, f1 := Basis(e0, e1, e2, 4, 4)
	f2 := 1 - f0 - f1

	// At the centroid-ish sample the barycentric-like weights should all
	// be positive and each less than 1.
	if f0 <= 0 || f1 <= 0 || f2 <= 0 {
		t.Errorf("Basis() = (%v,%v), implicit f2=%v; want all positive", f0, f1, f2)
	}
}

func TestBasisQuad_MatchesScalarBasis(t *testing.T) {
	e0, e1, e2, _ := geom.SetupTriangle(
		0, 0, 1,
		16, 0, 1,
		0, 16, 1,
	)

	baseX, baseY := float32(2), float32(3.5)
	f0v, f1v := BasisQuad(e0, e1, e2, baseX, baseY)

	for i := 0; i < 4; i++ {
		wantF0, wantF1 := Basis(e0, e1, e2, baseX+float32(i)+0.5, baseY)
		if abs32(f0v[i]-wantF0) > 1e-4 || abs32(f1v[i]-wantF1) > 1e-4 {
			t.Errorf("lane %d: BasisQuad = (%v,%v), want (%v,%v)", i, f0v[i], f1v[i], wantF0, wantF1)
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
