package engine

import (
	"fmt"

	gm "tile-engine/tilemg"
)

// DefaultMaxIndex is the clamp bound on tile exponents used by the
// reference player. Tiles at or above it become indistinguishable to the
// feature encoding; that is the intended approximation, not a defect.
const DefaultMaxIndex = 21

// InitPolicy presets freshly allocated weight tables before any learning
// has happened.
type InitPolicy func(n *Network)

// Network is an n-tuple value function: one dense weight table per
// pattern group, indexed by the base-MaxIndex fold of the tuple's cells.
// Tables live for the agent's lifetime and are the only state mutated
// across episodes.
type Network struct {
	MaxIndex int
	Tables   [TableCount][]float32
}

// NewNetwork allocates zeroed tables of size maxIndex^TupleLength and
// applies the init policy, if any.
func NewNetwork(maxIndex int, init InitPolicy) *Network {
	if maxIndex < 2 {
		maxIndex = DefaultMaxIndex
	}
	n := &Network{MaxIndex: maxIndex}
	size := n.TableSize()
	for g := range n.Tables {
		n.Tables[g] = make([]float32, size)
	}
	if init != nil {
		init(n)
	}
	return n
}

// TableSize returns MaxIndex^TupleLength, the length of every table.
func (n *Network) TableSize() int {
	size := 1
	for i := 0; i < TupleLength; i++ {
		size *= n.MaxIndex
	}
	return size
}

// Feature folds the pattern's cells into a table index: each exponent is
// clamped to [0, MaxIndex-1] and appended as one base-MaxIndex digit,
// most significant first. Total and deterministic for any board.
func (n *Network) Feature(b *gm.Board, pattern *[TupleLength]int) int {
	idx := 0
	for _, cell := range pattern {
		tile := Clamp(int(b.At(cell)), 0, n.MaxIndex-1)
		idx = idx*n.MaxIndex + tile
	}
	return idx
}

// Value sums the table entries of all 32 patterns. It is the sole
// estimate of a board's expected future score and never mutates tables.
func (n *Network) Value(b *gm.Board) float64 {
	var v float64
	for p := range Patterns {
		v += float64(n.Tables[GroupOf(p)][n.Feature(b, &Patterns[p])])
	}
	return v
}

// InitZero leaves the tables zeroed; the default policy.
func InitZero(n *Network) {}

// OptimisticBonus is the preset written by InitOptimistic.
const OptimisticBonus = 5000

// InitOptimistic biases the untrained network toward boards that already
// carry a near-maximal tile: every entry whose most significant digit is
// MaxIndex-1 starts at OptimisticBonus. Because each table is shared by
// the 8 symmetric placements of its shape, the bias covers the tile in
// every symmetric anchor cell at once.
func InitOptimistic(n *Network) {
	stride := n.TableSize() / n.MaxIndex
	lead := (n.MaxIndex - 1) * stride
	for g := range n.Tables {
		for i := lead; i < lead+stride; i++ {
			n.Tables[g][i] = OptimisticBonus
		}
	}
}

// InitPolicyByName resolves the "init" configuration key. Unknown names
// are a configuration error.
func InitPolicyByName(name string) (InitPolicy, error) {
	switch name {
	case "", "zero", "default":
		return InitZero, nil
	case "optimistic":
		return InitOptimistic, nil
	}
	return nil, fmt.Errorf("unknown init policy %q", name)
}
