package bench

import (
	"math/rand"
	"testing"

	gm "tile-engine/tilemg"
)

func midgameBoard(seed int64) gm.Board {
	rng := rand.New(rand.NewSource(seed))
	var b gm.Board
	for pos := 0; pos < 16; pos++ {
		if rng.Intn(4) > 0 {
			b.Set(pos, uint8(1+rng.Intn(6)))
		}
	}
	return b
}

func benchSlide(b *testing.B, board gm.Board, dir gm.Direction) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		work := board
		work.Slide(dir)
	}
}

func BenchmarkSlide_Midgame(b *testing.B) {
	benchSlide(b, midgameBoard(1), gm.Left)
}

func BenchmarkSlide_Sparse(b *testing.B) {
	var board gm.Board
	board.Set(3, 1)
	board.Set(12, 2)
	benchSlide(b, board, gm.Up)
}

func BenchmarkHasMove(b *testing.B) {
	board := midgameBoard(2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.HasMove()
	}
}
