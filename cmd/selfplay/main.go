// cmd/selfplay/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"tile-engine/agent"
	"tile-engine/arena"
	"tile-engine/engine"
)

var (
	episodes = flag.Int("episodes", 100000, "Self-play episodes to run")
	block    = flag.Int("block", 1000, "Episodes per statistics block")
	alpha    = flag.Float64("alpha", 0.003125, "Learning rate (0 disables learning)")
	lambda   = flag.Float64("lambda", 0.5, "Blend factor of the carried TD correction")
	policy   = flag.String("policy", "tc", `Update policy: "td" or "tc"`)
	depth    = flag.Int("depth", 2, "Expectimax lookahead plies")
	index    = flag.Int("index", 21, "Feature clamp bound MaxIndex")
	initName = flag.String("init", "", `Weight preset: "" (zero) or "optimistic"`)
	loadPath = flag.String("load", "", "Weight blob to resume from")
	savePath = flag.String("save", "weights.bin", "Weight blob to write at the end")
	seed     = flag.Int("seed", 1, "Environment RNG seed")
	cachePow = flag.Int("cache", 0, "Eval cache size as a power of two (0 = off)")
	httpAddr = flag.String("http", "", "Optional listen address for the live stats endpoint")
)

func main() {
	flag.Parse()

	player, err := agent.NewPlayer(playerArgs())
	if err != nil {
		fmt.Fprintf(os.Stderr, "selfplay: %v\n", err)
		os.Exit(1)
	}
	env := agent.NewRandomEnvironment(fmt.Sprintf("seed=%d", *seed))

	var hub *statsHub
	if *httpAddr != "" {
		hub = newStatsHub()
		go serveStats(*httpAddr, hub)
	}

	out := termenv.NewOutput(os.Stdout)
	fmt.Printf("selfplay: %d episodes, alpha=%g policy=%s depth=%d\n", *episodes, *alpha, *policy, *depth)

	start := time.Now()
	var blockStats arena.Stats
	total := arena.Run(player, env, *episodes, arena.ListenerFunc(func(r arena.Result) {
		blockStats.Add(r)
		if hub != nil {
			hub.Publish(statusFrom(r.Episode, &blockStats))
		}
		if r.Episode%*block == 0 {
			printBlock(out, r.Episode, &blockStats, start)
			blockStats.Reset()
		}
	}))

	if blockStats.Episodes > 0 {
		printBlock(out, *episodes, &blockStats, start)
	}
	fmt.Printf("done: %d episodes, mean score %.1f, best %d, %s\n",
		total.Episodes, total.MeanScore(), total.BestScore, time.Since(start).Round(time.Second))

	if err := player.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "selfplay: %v\n", err)
		os.Exit(1)
	}
	if *savePath != "" {
		fmt.Printf("weights saved to %s\n", *savePath)
	}
}

// playerArgs folds the flags into the agent's key=value form.
func playerArgs() string {
	args := []string{
		fmt.Sprintf("alpha=%g", *alpha),
		fmt.Sprintf("lambda=%g", *lambda),
		fmt.Sprintf("policy=%s", *policy),
		fmt.Sprintf("depth=%d", *depth),
		fmt.Sprintf("index=%d", *index),
	}
	if *initName != "" {
		args = append(args, "init="+*initName)
	}
	if *loadPath != "" {
		args = append(args, "load="+*loadPath)
	}
	if *savePath != "" {
		args = append(args, "save="+*savePath)
	}
	if *cachePow > 0 {
		args = append(args, fmt.Sprintf("cache=%d", *cachePow))
	}
	return strings.Join(args, " ")
}

func printBlock(out *termenv.Output, episode int, s *arena.Stats, start time.Time) {
	line := fmt.Sprintf("ep %-8d mean %-9.1f best %-7d 2048-rate %5.1f%%  moves/ep %.0f  [%s]",
		episode, s.MeanScore(), s.BestScore, 100*s.TileReachRate(2048),
		float64(s.TotalMoves)/float64(engine.Max(s.Episodes, 1)), time.Since(start).Round(time.Second))
	fmt.Println(out.String(line).Foreground(out.Color("14")).String())
}
