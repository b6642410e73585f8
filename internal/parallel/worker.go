package parallel

import (
	"runtime"
	"sync/atomic"
)

// WorkerState is one stage in a pipeline worker's per-iteration state
// machine. Workers advance strictly in this order; the two barriers are
// implemented as coordinated CAS transitions rather than a condvar, so
// that tests can assert on the transitions themselves.
type WorkerState int32

const (
	Idle WorkerState = iota
	DrawcallTop
	Geometry
	Binning
	PostBinner
	Raster
	PostRaster
	Fragment
	Bottom
	Terminated
)

// String renders a WorkerState for logs and test failures.
func (s WorkerState) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case DrawcallTop:
		return "DRAWCALL_TOP"
	case Geometry:
		return "GEOMETRY"
	case Binning:
		return "BINNING"
	case PostBinner:
		return "POST_BINNER"
	case Raster:
		return "RASTER"
	case PostRaster:
		return "POST_RASTER"
	case Fragment:
		return "FRAGMENT"
	case Bottom:
		return "BOTTOM"
	case Terminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// WorkerStates tracks every worker's current state atomically. Reads used
// for barrier polling may be relaxed; the transition itself is a CAS with
// full acquire/release semantics.
type WorkerStates struct {
	states []atomic.Int32
}

// NewWorkerStates allocates state tracking for n workers, all starting
// Idle.
func NewWorkerStates(n int) *WorkerStates {
	return &WorkerStates{states: make([]atomic.Int32, n)}
}

// Count returns the number of tracked workers.
func (w *WorkerStates) Count() int { return len(w.states) }

// Load returns worker i's current state.
func (w *WorkerStates) Load(i int) WorkerState {
	return WorkerState(w.states[i].Load())
}

// Store sets worker i's state with release ordering, publishing everything
// that worker wrote before the call.
func (w *WorkerStates) Store(i int, s WorkerState) {
	w.states[i].Store(int32(s))
}

// CompareAndSwap attempts to advance worker i from old to next.
func (w *WorkerStates) CompareAndSwap(i int, old, next WorkerState) bool {
	return w.states[i].CompareAndSwap(int32(old), int32(next))
}

// HelpPastBarrier is the barrier helper invoked by a worker once it has
// stored `from`: it spins over every peer, attempting to CAS each one from
// `from` to `to`, and treats a peer already observed at or past `to` as
// satisfied. It returns once every peer has been advanced past `from`.
//
// This turns waiting into useful forward-progress work advancing peers,
// and avoids a centralized condvar — the same barrier shape is used after
// binning (POST_BINNER -> RASTER) and after raster (POST_RASTER ->
// FRAGMENT).
func (w *WorkerStates) HelpPastBarrier(from, to WorkerState) {
	pending := len(w.states)
	done := make([]bool, pending)
	for pending > 0 {
		for i := range w.states {
			if done[i] {
				continue
			}
			if w.CompareAndSwap(i, from, to) {
				done[i] = true
				pending--
				continue
			}
			if w.Load(i) >= to {
				done[i] = true
				pending--
			}
		}
		if pending > 0 {
			runtime.Gosched()
		}
	}
}

// WaitForAll spin-yields on the caller's thread until every worker reaches
// target, used by the engine's draw driver to wait for BOTTOM.
func (w *WorkerStates) WaitForAll(target WorkerState) {
	for {
		all := true
		for i := range w.states {
			if w.Load(i) != target {
				all = false
				break
			}
		}
		if all {
			return
		}
		runtime.Gosched()
	}
}
