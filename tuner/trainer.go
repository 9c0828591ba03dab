package tuner

import (
	"fmt"

	"tile-engine/engine"
	gm "tile-engine/tilemg"
)

// Learner replays finished episodes against an n-tuple network. It owns
// no episode state itself; the caller hands it the full history once per
// game.
type Learner struct {
	Net *engine.Network
	Cfg Config
	TC  *TC
}

// NewLearner wires a learner to the network it will mutate. The TC
// policy allocates its accumulator tables here.
func NewLearner(net *engine.Network, cfg Config) (*Learner, error) {
	if cfg.Lambda == 0 {
		cfg.Lambda = DefaultLambda
	}
	l := &Learner{Net: net, Cfg: cfg}
	switch cfg.Policy {
	case "", PolicyTD:
		l.Cfg.Policy = PolicyTD
	case PolicyTC:
		l.TC = NewTC(net.TableSize())
	default:
		return nil, fmt.Errorf("unknown update policy %q", cfg.Policy)
	}
	return l, nil
}

// Replay consumes one episode oldest-first and applies the backward TD
// sweep. The final afterstate trains toward a target of 0: nothing can
// be earned past the end of the episode. Earlier entries train toward
// reward plus the value of the following afterstate. An empty history is
// a no-op.
//
// The smoothed correction is threaded through the sweep as an explicit
// value rather than shared state, so a single step stays testable in
// isolation.
func (l *Learner) Replay(history []Transition) {
	if len(history) == 0 {
		return
	}
	last := &history[len(history)-1]
	hv := l.Step(&last.After, -l.Net.Value(&last.After), 0)
	for i := len(history) - 2; i >= 0; i-- {
		prev, next := &history[i], &history[i+1]
		delta := next.Reward + l.Net.Value(&next.After) - l.Net.Value(&prev.After)
		hv = l.Step(&prev.After, delta, hv)
	}
}

// Step applies one replay update to every pattern slot of the board and
// returns the carried correction for the next (earlier) step:
// hv' = alpha*delta + hv*lambda.
func (l *Learner) Step(b *gm.Board, delta, hv float64) float64 {
	hv = l.Cfg.Alpha*delta + hv*l.Cfg.Lambda
	if l.TC != nil {
		l.applyTC(b, delta, hv)
	} else {
		l.applyPlain(b, delta)
	}
	return hv
}

// applyTC scales the blended correction by each slot's coherence ratio,
// then folds the raw delta into the slot's statistics. Statistics move
// even when the correction itself is tiny.
func (l *Learner) applyTC(b *gm.Board, delta, hv float64) {
	for p := range engine.Patterns {
		g := engine.GroupOf(p)
		idx := l.Net.Feature(b, &engine.Patterns[p])
		l.Net.Tables[g][idx] += float32(hv * l.TC.Rate(g, idx) / updateDivisor)
		l.TC.Absorb(g, idx, delta)
	}
}
