package tyler

import "errors"

// Sentinel errors returned from the engine's configuration surface. Per
// the core's error-handling design, these cover caller-facing setup
// mistakes; conditions encountered mid-draw (clip rejection, off-screen
// bounding boxes, zero primitives) are silent no-ops, not errors.
var (
	ErrInvalidDimensions     = errors.New("tyler: framebuffer dimensions must be positive")
	ErrFramebufferTooSmall   = errors.New("tyler: framebuffer buffers are smaller than width*height")
	ErrNilVertexShader       = errors.New("tyler: vertex shader must not be nil")
	ErrNilFragmentShader     = errors.New("tyler: fragment shader must not be nil")
	ErrNoRenderTargets       = errors.New("tyler: Draw called before SetRenderTargets")
	ErrInvalidIndexBuffer    = errors.New("tyler: index buffer is empty or malformed")
	ErrInvalidShaderMetadata = errors.New("tyler: shader metadata exceeds the supported attribute counts")
)

// assert aborts the process when a programmer error is detected — a hard
// misconfiguration such as a zero-dimension framebuffer reaching code that
// has already validated its caller-facing arguments. Per the core's
// error-handling design, there is no recovery path for these; they
// indicate a bug in the caller or in tyler itself, not a runtime
// condition.
func assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
