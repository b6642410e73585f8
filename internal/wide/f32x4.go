package wide

import "math"

// F32x4 represents 4 float32 values for SIMD-style operations. Designed
// for Go compiler auto-vectorization with fixed-size arrays: the
// rasterizer's quad-level edge evaluation operates a row of 4 horizontally
// adjacent pixel centers at a time using exactly this width.
type F32x4 [4]float32

// SplatF32 creates an F32x4 with all elements set to n.
func SplatF32(n float32) F32x4 {
	var result F32x4
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs element-wise addition.
func (v F32x4) Add(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F32x4) Sub(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F32x4) Mul(other F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// MulAdd computes v*other + add element-wise, the hot-path shape for
// stepping an edge function across a quad's four x samples.
func (v F32x4) MulAdd(other, add F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i]*other[i] + add[i]
	}
	return result
}

// Recip computes the per-element reciprocal, used to turn a sum of edge
// functions into the perspective basis normalizer.
func (v F32x4) Recip() F32x4 {
	var result F32x4
	for i := range v {
		result[i] = 1 / v[i]
	}
	return result
}

// Sqrt computes square root of each element.
func (v F32x4) Sqrt() F32x4 {
	var result F32x4
	for i := range v {
		result[i] = float32(math.Sqrt(float64(v[i])))
	}
	return result
}

// Clamp clamps each element to [minVal, maxVal].
func (v F32x4) Clamp(minVal, maxVal float32) F32x4 {
	var result F32x4
	for i := range v {
		switch {
		case v[i] < minVal:
			result[i] = minVal
		case v[i] > maxVal:
			result[i] = maxVal
		default:
			result[i] = v[i]
		}
	}
	return result
}

// Lerp performs linear interpolation: v + (other - v) * t.
func (v F32x4) Lerp(other F32x4, t F32x4) F32x4 {
	var result F32x4
	for i := range v {
		result[i] = v[i] + (other[i]-v[i])*t[i]
	}
	return result
}

// GreaterEqualMask compares v[i] >= other[i] element-wise and packs the
// four boolean results into the low 4 bits of the returned mask, bit i set
// when element i compares true. This is the movemask-equivalent the
// corpus does not otherwise provide: edge-function "inside" classification
// needs the packed bits, not the boolean vector.
func (v F32x4) GreaterEqualMask(other F32x4) uint8 {
	var mask uint8
	for i := range v {
		if v[i] >= other[i] {
			mask |= 1 << i
		}
	}
	return mask
}

// GreaterMask is GreaterEqualMask's strict counterpart, v[i] > other[i].
func (v F32x4) GreaterMask(other F32x4) uint8 {
	var mask uint8
	for i := range v {
		if v[i] > other[i] {
			mask |= 1 << i
		}
	}
	return mask
}
