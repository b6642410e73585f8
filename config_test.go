package tyler

import (
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()
	if c.TileSize != DefaultTileSize {
		t.Errorf("TileSize = %d, want %d", c.TileSize, DefaultTileSize)
	}
	if c.WorkerCount != runtime.GOMAXPROCS(0) {
		t.Errorf("WorkerCount = %d, want %d", c.WorkerCount, runtime.GOMAXPROCS(0))
	}
	if !c.CacheEnabled {
		t.Errorf("CacheEnabled should default to true")
	}
}

func TestWithWorkerCountFallsBackOnNonPositive(t *testing.T) {
	c := defaultConfig()
	WithWorkerCount(0)(&c)
	if c.WorkerCount != runtime.GOMAXPROCS(0) {
		t.Errorf("WorkerCount = %d, want GOMAXPROCS fallback", c.WorkerCount)
	}
	WithWorkerCount(7)(&c)
	if c.WorkerCount != 7 {
		t.Errorf("WorkerCount = %d, want 7", c.WorkerCount)
	}
}

func TestWithTileSizeAndIterationCap(t *testing.T) {
	c := defaultConfig()
	WithTileSize(32)(&c)
	WithIterationCap(256)(&c)
	if c.TileSize != 32 || c.IterationCap != 256 {
		t.Errorf("got TileSize=%d IterationCap=%d", c.TileSize, c.IterationCap)
	}
}

func TestWithVertexCache(t *testing.T) {
	c := defaultConfig()
	WithVertexCache(false, 8)(&c)
	if c.CacheEnabled || c.CacheCapacity != 8 {
		t.Errorf("got CacheEnabled=%v CacheCapacity=%d", c.CacheEnabled, c.CacheCapacity)
	}
}
