package tyler

import (
	"image"
)

// Framebuffer is a caller-owned pair of render targets: an 8-bit-per-channel
// color buffer (R8G8B8A8_UNORM) and a 32-bit float depth buffer (D32_FLOAT).
// Both buffers are row-major with top-left origin and no row padding, so
// each buffer's stride is derivable from Width (4*Width bytes for Color,
// Width float32s for Depth). The engine never allocates or frees these
// buffers; it only reads and writes the slices referenced here while a draw
// is in flight, per spec.md §3/§6.
type Framebuffer struct {
	Width, Height int

	// Color holds Width*Height*4 bytes, 4 per pixel (R, G, B, A).
	Color []byte

	// Depth holds Width*Height float32 values.
	Depth []float32
}

// NewFramebuffer allocates a Framebuffer of the given dimensions.
// This is a convenience constructor; callers that already own suitably
// sized buffers can build a Framebuffer literal directly.
func NewFramebuffer(width, height int) *Framebuffer {
	assert(width > 0 && height > 0, "tyler: framebuffer dimensions must be positive")
	return &Framebuffer{
		Width:  width,
		Height: height,
		Color:  make([]byte, width*height*4),
		Depth:  make([]float32, width*height),
	}
}

// Valid reports whether the framebuffer's buffers are large enough for its
// declared dimensions. SetRenderTargets calls this before accepting a
// framebuffer.
func (fb *Framebuffer) Valid() bool {
	if fb == nil || fb.Width <= 0 || fb.Height <= 0 {
		return false
	}
	return len(fb.Color) >= fb.Width*fb.Height*4 && len(fb.Depth) >= fb.Width*fb.Height
}

// ColorStride returns the byte stride of one row of the color buffer.
func (fb *Framebuffer) ColorStride() int { return fb.Width * 4 }

// DepthStride returns the element stride of one row of the depth buffer.
func (fb *Framebuffer) DepthStride() int { return fb.Width }

// ColorOffset returns the byte offset of pixel (x, y) in Color.
func (fb *Framebuffer) ColorOffset(x, y int) int { return y*fb.ColorStride() + x*4 }

// DepthOffset returns the element offset of pixel (x, y) in Depth.
func (fb *Framebuffer) DepthOffset(x, y int) int { return y*fb.DepthStride() + x }

// Clear fills the requested targets, mirroring the engine's
// clear_render_targets entry point (spec.md §6).
func (fb *Framebuffer) Clear(clearColor bool, color [4]float32, clearDepth bool, depth float32) {
	if clearColor {
		r, g, b, a := packRGBA8(color)
		for i := 0; i < len(fb.Color); i += 4 {
			fb.Color[i+0] = r
			fb.Color[i+1] = g
			fb.Color[i+2] = b
			fb.Color[i+3] = a
		}
	}
	if clearDepth {
		for i := range fb.Depth {
			fb.Depth[i] = depth
		}
	}
}

// ToImage copies the color buffer into a standard library image.RGBA for
// inspection or encoding; it does not alias the framebuffer's storage.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

// packRGBA8 converts linear [0,1] RGBA floats to R8G8B8A8_UNORM bytes using
// clamp-then-round, matching spec.md §4.5 step 5's write path.
func packRGBA8(c [4]float32) (r, g, b, a byte) {
	return packChannel(c[0]), packChannel(c[1]), packChannel(c[2]), packChannel(c[3])
}

func packChannel(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
