// Package tyler implements a tile-based, multithreaded software
// rasterizer: indexed triangle geometry plus programmable vertex and
// fragment shader function pointers go in, a shaded color and depth
// image comes out.
//
// An Engine owns a fixed pool of worker goroutines and every shared table
// they use across a draw: the tile grid, the rasterizer queue, per-tile
// bins, coverage masks, and per-primitive setup scratch. Workers advance
// through a per-iteration state machine (geometry → binning → raster →
// fragment) coordinated by two barriers built from compare-and-swap
// rather than a condition variable, so that the whole pipeline can be
// driven without blocking locks on the hot path.
//
// A typical caller constructs an Engine, installs a Framebuffer with
// SetRenderTargets, configures vertex/index/constant buffers and shaders,
// and calls Draw once per drawcall.
package tyler
