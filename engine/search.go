package engine

import (
	gm "tile-engine/tilemg"
)

// Tile placement odds of the chance player: a 2-tile (exponent 1) with
// probability 0.9, a 4-tile (exponent 2) with probability 0.1. The two
// axes of a chance node weigh differently: tiles by probability, cells
// uniformly.
const (
	ProbTile1 = 0.9
	ProbTile2 = 0.1
)

// MoveChoice is the outcome of a root decision node.
type MoveChoice struct {
	Dir    gm.Direction
	After  gm.Board
	Reward int
	Value  float64
}

// Searcher walks the expectimax tree over alternating decision and
// chance layers. Depth counts plies: depth 1 expands one chance layer
// before static evaluation, depth 2 adds another decision+chance layer,
// and so on. Every node works on its own board copy.
type Searcher struct {
	Net   *Network
	Depth int
	Cache *EvalCache

	nodes uint64
}

// NewSearcher builds a searcher of the given lookahead depth (minimum 1).
func NewSearcher(net *Network, depth int) *Searcher {
	if depth < 1 {
		depth = 1
	}
	return &Searcher{Net: net, Depth: depth}
}

// BestMove runs the root decision node. The four moves are tried in
// fixed order up, right, down, left; ties keep the earlier move. It
// reports ok == false when no move is legal, which is the terminal
// signal: the caller must not record a history entry for this turn.
func (s *Searcher) BestMove(b *gm.Board) (best MoveChoice, ok bool) {
	for dir := gm.Up; dir <= gm.Left; dir++ {
		after := *b
		reward, moved := after.Slide(dir)
		if !moved {
			continue
		}
		value := float64(reward) + s.expected(&after, s.Depth)
		if !ok || value > best.Value {
			best = MoveChoice{Dir: dir, After: after, Reward: reward, Value: value}
			ok = true
		}
	}
	return best, ok
}

// Expectation evaluates an afterstate at the given remaining depth, the
// way the search sees it after a move: the environment drops a tile
// first. Exposed for analysis tools.
func (s *Searcher) Expectation(after *gm.Board, depth int) float64 {
	return s.expected(after, depth)
}

// expected evaluates an afterstate: static value at depth 0, otherwise
// one chance layer.
func (s *Searcher) expected(after *gm.Board, depth int) float64 {
	if depth == 0 {
		return s.Net.Value(after)
	}
	return s.chance(after, depth)
}

// chance averages over every tile the environment could drop: each empty
// cell is equally likely, and within a cell the two tile values carry
// their placement probabilities. A board with no empty cell cannot occur
// under bounded depth, but falls back to static evaluation rather than
// divide by zero.
func (s *Searcher) chance(b *gm.Board, depth int) float64 {
	s.nodes++

	var key uint64
	if s.Cache != nil {
		key = Hash(b)
		if v, hit := s.Cache.Probe(key, depth); hit {
			return v
		}
	}

	var sum float64
	empty := 0
	for pos := 0; pos < 16; pos++ {
		if b.At(pos) != 0 {
			continue
		}
		empty++
		for _, t := range [2]struct {
			tile uint8
			prob float64
		}{{1, ProbTile1}, {2, ProbTile2}} {
			next := *b
			next.Set(pos, t.tile)
			value, alive := s.decision(&next, depth-1)
			if !alive {
				// An immediate loss contributes zero, not a penalty.
				continue
			}
			sum += t.prob * value
		}
	}
	if empty == 0 {
		return s.Net.Value(b)
	}
	result := sum / float64(empty)

	if s.Cache != nil {
		s.Cache.Store(key, depth, result)
	}
	return result
}

// decision returns the best reward-plus-expectation over the legal
// moves, or ok == false on a dead board. Strictly-greater comparison
// keeps the first move encountered on ties.
func (s *Searcher) decision(b *gm.Board, depth int) (best float64, ok bool) {
	s.nodes++
	for dir := gm.Up; dir <= gm.Left; dir++ {
		after := *b
		reward, moved := after.Slide(dir)
		if !moved {
			continue
		}
		value := float64(reward) + s.expected(&after, depth)
		if !ok || value > best {
			best = value
			ok = true
		}
	}
	return best, ok
}

// Nodes returns the number of tree nodes expanded since the last reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// ResetNodes clears the node counter.
func (s *Searcher) ResetNodes() {
	s.nodes = 0
}
