package engine

import "testing"

func TestEvalCacheProbeStore(t *testing.T) {
	c := NewEvalCache(8)

	if _, ok := c.Probe(42, 2); ok {
		t.Fatalf("probe of empty cache hit")
	}
	c.Store(42, 2, 1.5)
	got, ok := c.Probe(42, 2)
	if !ok || got != 1.5 {
		t.Fatalf("Probe = %v, %v, want 1.5, true", got, ok)
	}
}

func TestEvalCacheDepthMismatch(t *testing.T) {
	c := NewEvalCache(8)
	c.Store(42, 2, 1.5)

	if _, ok := c.Probe(42, 1); ok {
		t.Fatalf("shallower probe answered from a depth-2 entry")
	}
	if _, ok := c.Probe(42, 3); ok {
		t.Fatalf("deeper probe answered from a depth-2 entry")
	}
}

func TestEvalCacheKeepsDeeperEntry(t *testing.T) {
	c := NewEvalCache(4)

	// Two keys that land on the same slot. The deeper entry wins the
	// collision and the shallower one is discarded.
	a, b := uint64(3), uint64(3+16)
	c.Store(a, 4, 1.0)
	c.Store(b, 1, 2.0)

	if got, ok := c.Probe(a, 4); !ok || got != 1.0 {
		t.Fatalf("deep entry evicted by shallow one")
	}
	if _, ok := c.Probe(b, 1); ok {
		t.Fatalf("shallow entry survived a contested slot")
	}

	// A deeper store does replace.
	c.Store(b, 6, 2.0)
	if got, ok := c.Probe(b, 6); !ok || got != 2.0 {
		t.Fatalf("deeper store failed to replace")
	}
}

func TestEvalCacheClear(t *testing.T) {
	c := NewEvalCache(8)
	c.Store(7, 1, 3.0)
	c.Clear()
	if _, ok := c.Probe(7, 1); ok {
		t.Fatalf("entry survived Clear")
	}
	if c.HitRate() != 0 {
		t.Fatalf("HitRate = %v after Clear, want 0", c.HitRate())
	}
}
