package agent

import (
	"fmt"

	"tile-engine/engine"
	gm "tile-engine/tilemg"
	"tile-engine/tuner"
)

// Player is the reference agent: an n-tuple network evaluated through
// expectimax lookahead, trained by backward TD replay at episode end.
//
// Recognized configuration keys:
//
//	name, role    identification (free text)
//	alpha         learning rate (0 disables learning)
//	lambda        correction blend factor (default 0.5)
//	policy        "td" or "tc" (default tc)
//	depth         lookahead plies (default 2)
//	index         feature clamp bound MaxIndex (default 21)
//	init          weight preset: zero (default) or optimistic
//	load, save    weight blob paths
//	cache         eval-cache size as a power of two (0 = off)
//
// Unrecognized keys are stored and ignored.
type Player struct {
	base
	net      *engine.Network
	searcher *engine.Searcher
	learner  *tuner.Learner
	history  []tuner.Transition
	savePath string
}

// NewPlayer builds the player from its configuration string. A load path
// that cannot be read or parsed is a fatal configuration error.
func NewPlayer(args string) (*Player, error) {
	p := &Player{base: newBase("name=ntuple role=player", args)}

	maxIndex, ok := p.props.Int("index")
	if !ok {
		maxIndex = engine.DefaultMaxIndex
	}
	initPolicy, err := engine.InitPolicyByName(p.props["init"])
	if err != nil {
		return nil, err
	}
	p.net = engine.NewNetwork(maxIndex, initPolicy)

	cfg := tuner.Config{Policy: tuner.PolicyTC}
	if v, ok := p.props.Float("alpha"); ok {
		cfg.Alpha = v
	}
	if v, ok := p.props.Float("lambda"); ok {
		cfg.Lambda = v
	}
	if s, ok := p.props["policy"]; ok {
		cfg.Policy = tuner.Policy(s)
	}
	p.learner, err = tuner.NewLearner(p.net, cfg)
	if err != nil {
		return nil, err
	}

	if path, ok := p.props["load"]; ok && path != "" {
		if err := p.learner.LoadSnapshot(path); err != nil {
			return nil, fmt.Errorf("load weights: %w", err)
		}
	}
	p.savePath = p.props["save"]

	depth, ok := p.props.Int("depth")
	if !ok {
		depth = 2
	}
	p.searcher = engine.NewSearcher(p.net, depth)
	if pow, ok := p.props.Int("cache"); ok && pow > 0 {
		p.searcher.Cache = engine.NewEvalCache(uint8(pow))
	}
	return p, nil
}

// OpenEpisode clears the episode history and the eval cache.
func (p *Player) OpenEpisode(flag string) {
	p.history = p.history[:0]
	if p.searcher.Cache != nil {
		p.searcher.Cache.Clear()
	}
}

// TakeAction searches for the best move and records its afterstate and
// reward. On a dead board it reports ok == false and records nothing.
func (p *Player) TakeAction(b *gm.Board) (gm.Action, bool) {
	best, ok := p.searcher.BestMove(b)
	if !ok {
		return nil, false
	}
	p.history = append(p.history, tuner.Transition{After: best.After, Reward: float64(best.Reward)})
	return gm.SlideAction{Dir: best.Dir}, true
}

// CloseEpisode trains on the finished game and drains the history. The
// eval cache is stale after any weight change and is dropped here too.
func (p *Player) CloseEpisode(flag string) {
	p.learner.Replay(p.history)
	p.history = p.history[:0]
	if p.searcher.Cache != nil {
		p.searcher.Cache.Clear()
	}
}

// Close persists the weights when a save path was configured.
func (p *Player) Close() error {
	if p.savePath == "" {
		return nil
	}
	if err := p.learner.SaveSnapshot(p.savePath); err != nil {
		return fmt.Errorf("save weights: %w", err)
	}
	return nil
}

// Network exposes the value function, mainly to tools and tests.
func (p *Player) Network() *engine.Network {
	return p.net
}

// Searcher exposes the search engine, mainly to tools and tests.
func (p *Player) Searcher() *engine.Searcher {
	return p.searcher
}

// HistoryLen reports the number of recorded transitions this episode.
func (p *Player) HistoryLen() int {
	return len(p.history)
}
