package engine

// EvalCache memoizes chance-node expectations within one search
// generation. It is a fixed-size, mask-indexed table with hash-verified
// probes and simple overwrite-on-store replacement. Entries answer only
// for the exact depth they were stored at, so cached and uncached
// searches agree on the same weights.
//
// The cache must be cleared whenever the weight tables change (after
// every learning step), otherwise it would serve values of the previous
// network.
type EvalCache struct {
	entries []evalEntry
	mask    uint64
	hits    uint64
	probes  uint64
}

type evalEntry struct {
	key   uint64
	value float64
	depth int8
	used  bool
}

// NewEvalCache builds a cache of 2^pow entries.
func NewEvalCache(pow uint8) *EvalCache {
	if pow == 0 {
		pow = 20
	}
	n := 1 << pow
	return &EvalCache{
		entries: make([]evalEntry, n),
		mask:    uint64(n - 1),
	}
}

// Probe looks up the expectation for (key, depth).
func (c *EvalCache) Probe(key uint64, depth int) (float64, bool) {
	c.probes++
	e := &c.entries[key&c.mask]
	if e.used && e.key == key && e.depth == int8(depth) {
		c.hits++
		return e.value, true
	}
	return 0, false
}

// Store records the expectation for (key, depth), preferring deeper
// entries when a slot is contested.
func (c *EvalCache) Store(key uint64, depth int, value float64) {
	e := &c.entries[key&c.mask]
	if e.used && e.key != key && e.depth > int8(depth) {
		return
	}
	*e = evalEntry{key: key, value: value, depth: int8(depth), used: true}
}

// Clear drops every entry but keeps the allocation.
func (c *EvalCache) Clear() {
	for i := range c.entries {
		c.entries[i] = evalEntry{}
	}
	c.hits, c.probes = 0, 0
}

// HitRate reports the fraction of probes answered since the last clear.
func (c *EvalCache) HitRate() float64 {
	if c.probes == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.probes)
}
