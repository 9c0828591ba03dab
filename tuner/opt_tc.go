package tuner

import (
	"fmt"
	"math"

	"tile-engine/engine"
)

// tcEpsilon seeds both accumulators. Any positive value works: it only
// has to keep the ratio defined, and it makes the very first touch of a
// feature run at effective rate |eps|/eps == 1.
const tcEpsilon = 0.1

// updateDivisor normalizes every per-slot update; it equals the tuple
// length plus two and is shared by all patterns.
const updateDivisor = engine.TupleLength + 2

// TC holds the temporal-coherence state: per group, a signed exponential
// accumulator of update deltas and an unsigned one of their magnitudes.
// Their ratio is a per-feature learning rate: features whose deltas
// keep agreeing in sign learn at full speed, noisy ones are damped.
// The accumulators are never read as value estimates.
type TC struct {
	E [engine.TableCount][]float32
	A [engine.TableCount][]float32
}

// NewTC seeds accumulators for tables of the given size.
func NewTC(tableSize int) *TC {
	tc := &TC{}
	for g := 0; g < engine.TableCount; g++ {
		tc.E[g] = make([]float32, tableSize)
		tc.A[g] = make([]float32, tableSize)
		for i := 0; i < tableSize; i++ {
			tc.E[g][i] = tcEpsilon
			tc.A[g][i] = tcEpsilon
		}
	}
	return tc
}

// Rate returns |E|/A for one slot. A stays positive by construction, so
// the ratio is always defined and lies in [0, 1].
func (tc *TC) Rate(g, idx int) float64 {
	return math.Abs(float64(tc.E[g][idx])) / float64(tc.A[g][idx])
}

// Absorb folds a raw TD error into one slot's statistics. This runs on
// every update, however small the blended correction was, because the
// accumulators track delta statistics on their own.
func (tc *TC) Absorb(g, idx int, delta float64) {
	tc.E[g][idx] += float32(delta / updateDivisor)
	tc.A[g][idx] += float32(math.Abs(delta) / updateDivisor)
}

// Snapshot returns the accumulator tables in blob order: the signed
// tables, then the absolute ones.
func (tc *TC) Snapshot() [][]float32 {
	out := make([][]float32, 0, 2*engine.TableCount)
	for g := 0; g < engine.TableCount; g++ {
		out = append(out, tc.E[g])
	}
	for g := 0; g < engine.TableCount; g++ {
		out = append(out, tc.A[g])
	}
	return out
}

// Restore adopts accumulator tables in Snapshot order.
func (tc *TC) Restore(tables [][]float32, tableSize int) error {
	if len(tables) != 2*engine.TableCount {
		return fmt.Errorf("TC snapshot holds %d tables, want %d", len(tables), 2*engine.TableCount)
	}
	for i, tab := range tables {
		if len(tab) != tableSize {
			return fmt.Errorf("TC snapshot table %d has %d entries, want %d", i, len(tab), tableSize)
		}
	}
	for g := 0; g < engine.TableCount; g++ {
		tc.E[g] = tables[g]
		tc.A[g] = tables[engine.TableCount+g]
	}
	return nil
}
