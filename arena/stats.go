package arena

import (
	"fmt"
	"sort"
	"strings"
)

// Stats accumulates episode results, either for a whole run or for one
// reporting block.
type Stats struct {
	Episodes   int
	TotalScore int64
	BestScore  int
	TotalMoves int64
	tileCount  map[int]int
}

// Add folds one result in.
func (s *Stats) Add(r Result) {
	s.Episodes++
	s.TotalScore += int64(r.Score)
	s.TotalMoves += int64(r.Moves)
	if r.Score > s.BestScore {
		s.BestScore = r.Score
	}
	if s.tileCount == nil {
		s.tileCount = make(map[int]int)
	}
	s.tileCount[r.MaxTile]++
}

// Reset clears the accumulator for the next block.
func (s *Stats) Reset() {
	*s = Stats{}
}

// MeanScore is the average score per episode.
func (s *Stats) MeanScore() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.Episodes)
}

// TileReachRate reports the fraction of episodes that ended with a
// largest tile of at least face value tile.
func (s *Stats) TileReachRate(tile int) float64 {
	if s.Episodes == 0 {
		return 0
	}
	reached := 0
	for t, n := range s.tileCount {
		if t >= tile {
			reached += n
		}
	}
	return float64(reached) / float64(s.Episodes)
}

// TileHistogram renders the max-tile distribution, largest first, as
// "tile:count" pairs.
func (s *Stats) TileHistogram() string {
	tiles := make([]int, 0, len(s.tileCount))
	for t := range s.tileCount {
		tiles = append(tiles, t)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))
	parts := make([]string, 0, len(tiles))
	for _, t := range tiles {
		parts = append(parts, fmt.Sprintf("%d:%d", t, s.tileCount[t]))
	}
	return strings.Join(parts, " ")
}
