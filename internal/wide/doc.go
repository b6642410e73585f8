// Package wide provides SIMD-friendly wide types for batch pixel and
// sample processing.
//
// This package implements F32x4, a fixed-size-array type designed to
// enable Go compiler auto-vectorization. By using a fixed-size array and
// simple loops, F32x4 allows the compiler to generate SIMD instructions on
// supported architectures (SSE, AVX, NEON) without resorting to unsafe or
// assembly.
//
// # F32x4
//
// F32x4 holds 4 float32 values, matching the rasterizer's quad width: one
// row of 4 horizontally adjacent pixel centers evaluated together against
// an edge function. GreaterEqualMask and GreaterMask pack the per-element
// comparison result into a 4-bit mask, the movemask step a hardware SIMD
// ISA would provide natively.
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
package wide
