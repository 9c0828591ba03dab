// cmd/play/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tile-engine/agent"
	"tile-engine/arena"
)

var (
	games    = flag.Int("games", 100, "Evaluation games to play")
	loadPath = flag.String("load", "", "Weight blob to evaluate (empty plays the untrained network)")
	depth    = flag.Int("depth", 2, "Expectimax lookahead plies")
	index    = flag.Int("index", 21, "Feature clamp bound MaxIndex")
	seed     = flag.Int("seed", 1, "Environment RNG seed")
	cachePow = flag.Int("cache", 0, "Eval cache size as a power of two (0 = off)")
	verbose  = flag.Bool("v", false, "Print every game result")
)

func main() {
	flag.Parse()

	// Plain policy with a zero rate: no learning, and no accumulator
	// tables allocated alongside the value tables.
	args := fmt.Sprintf("alpha=0 policy=td depth=%d index=%d", *depth, *index)
	if *loadPath != "" {
		args += " load=" + *loadPath
	}
	if *cachePow > 0 {
		args += fmt.Sprintf(" cache=%d", *cachePow)
	}
	player, err := agent.NewPlayer(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "play: %v\n", err)
		os.Exit(1)
	}
	env := agent.NewRandomEnvironment(fmt.Sprintf("seed=%d", *seed))

	start := time.Now()
	stats := arena.Run(player, env, *games, arena.ListenerFunc(func(r arena.Result) {
		if *verbose {
			fmt.Printf("game %-5d score %-7d max tile %-5d moves %d\n", r.Episode, r.Score, r.MaxTile, r.Moves)
		}
	}))

	fmt.Printf("games:     %d (%s)\n", stats.Episodes, time.Since(start).Round(time.Millisecond))
	fmt.Printf("mean:      %.1f\n", stats.MeanScore())
	fmt.Printf("best:      %d\n", stats.BestScore)
	fmt.Printf("2048 rate: %.1f%%\n", 100*stats.TileReachRate(2048))
	fmt.Printf("max tiles: %s\n", stats.TileHistogram())
}
