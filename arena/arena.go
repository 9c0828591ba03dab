/*
Package arena runs self-play episodes between a player agent and the
random-tile environment. Episodes are sequential on purpose: all of them
mutate one shared set of weight tables, and the single-writer model is
the documented contract. Parallel training would need per-worker table
copies with merging, or serialized mutation; that is an extension point,
not something this package provides.
*/
package arena

import (
	"tile-engine/agent"
	gm "tile-engine/tilemg"
)

// Result summarizes one finished episode.
type Result struct {
	Episode int
	Score   int
	Moves   int
	MaxTile int // face value of the largest tile, e.g. 2048
}

// Listener observes the run. Callbacks fire on the training goroutine;
// implementations that need to stay off the hot path should hand off.
type Listener interface {
	OnEpisodeEnd(Result)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Result)

func (f ListenerFunc) OnEpisodeEnd(r Result) { f(r) }

// RunEpisode plays one full game: the environment opens with two tiles,
// then placement answers every player move until the player reports no
// legal move. Both agents get their open/close lifecycle calls.
func RunEpisode(player, env agent.Agent, episode int) Result {
	var b gm.Board
	player.OpenEpisode("begin")
	env.OpenEpisode("begin")

	for i := 0; i < 2; i++ {
		if a, ok := env.TakeAction(&b); ok {
			a.Apply(&b)
		}
	}

	res := Result{Episode: episode}
	for {
		a, ok := player.TakeAction(&b)
		if !ok {
			break
		}
		reward, applied := a.Apply(&b)
		if !applied {
			break
		}
		res.Score += reward
		res.Moves++

		drop, ok := env.TakeAction(&b)
		if !ok {
			break
		}
		drop.Apply(&b)
	}
	if m := b.MaxTile(); m > 0 {
		res.MaxTile = 1 << m
	}

	player.CloseEpisode("end")
	env.CloseEpisode("end")
	return res
}

// Run plays episodes numbered 1..n, reporting each to the listener if
// one is set.
func Run(player, env agent.Agent, n int, l Listener) Stats {
	var stats Stats
	for ep := 1; ep <= n; ep++ {
		r := RunEpisode(player, env, ep)
		stats.Add(r)
		if l != nil {
			l.OnEpisodeEnd(r)
		}
	}
	return stats
}
