// cmd/searchbench/main.go
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"tile-engine/engine"
	gm "tile-engine/tilemg"
)

var (
	depth     = flag.Int("depth", 2, "Expectimax lookahead plies")
	index     = flag.Int("index", 8, "Feature clamp bound MaxIndex (small keeps the bench light)")
	positions = flag.Int("positions", 200, "Random midgame positions to search")
	cachePow  = flag.Int("cache", 0, "Eval cache size as a power of two (0 = off)")
	seed      = flag.Int64("seed", 42, "Position generator seed")
)

func main() {
	flag.Parse()

	net := engine.NewNetwork(*index, nil)
	s := engine.NewSearcher(net, *depth)
	if *cachePow > 0 {
		s.Cache = engine.NewEvalCache(uint8(*cachePow))
	}

	rng := rand.New(rand.NewSource(*seed))
	boards := make([]gm.Board, *positions)
	for i := range boards {
		boards[i] = randomMidgame(rng)
	}

	start := time.Now()
	searched := 0
	for i := range boards {
		if _, ok := s.BestMove(&boards[i]); ok {
			searched++
		}
	}
	elapsed := time.Since(start)

	nps := float64(s.Nodes()) / elapsed.Seconds()
	fmt.Printf("depth %d: %d/%d positions, %d nodes in %s (%.0f nodes/s)\n",
		*depth, searched, len(boards), s.Nodes(), elapsed.Round(time.Millisecond), nps)
	if s.Cache != nil {
		fmt.Printf("cache hit rate: %.1f%%\n", 100*s.Cache.HitRate())
	}
}

// randomMidgame scatters tiles the way a live game might look: around
// half the cells filled with exponents up to 10.
func randomMidgame(rng *rand.Rand) gm.Board {
	var b gm.Board
	for pos := 0; pos < 16; pos++ {
		if rng.Intn(2) == 0 {
			b.Set(pos, uint8(1+rng.Intn(10)))
		}
	}
	if !b.HasMove() {
		b.Set(0, 0)
	}
	return b
}
