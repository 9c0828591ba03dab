package agent

import (
	"math/rand"

	gm "tile-engine/tilemg"
)

// RandomEnvironment is the chance player used to generate training data:
// it drops a 2-tile with probability 0.9 or a 4-tile with probability
// 0.1 on a uniformly chosen empty cell. Its randomness is a collaborator
// of the learning loop only; the searcher models the same distribution
// analytically and never consults this source.
type RandomEnvironment struct {
	base
	rng   *rand.Rand
	space [16]int
}

// NewRandomEnvironment builds the environment. Recognized keys: seed
// (integer RNG seed; unseeded environments draw from a fixed default).
func NewRandomEnvironment(args string) *RandomEnvironment {
	env := &RandomEnvironment{base: newBase("name=random role=environment", args)}
	seed, ok := env.props.Int("seed")
	if !ok {
		seed = 1
	}
	env.rng = rand.New(rand.NewSource(int64(seed)))
	for i := range env.space {
		env.space[i] = i
	}
	return env
}

// TakeAction picks an empty cell by shuffling the cell order and taking
// the first free one. ok == false means the board is full.
func (env *RandomEnvironment) TakeAction(b *gm.Board) (gm.Action, bool) {
	env.rng.Shuffle(len(env.space), func(i, j int) {
		env.space[i], env.space[j] = env.space[j], env.space[i]
	})
	for _, pos := range env.space {
		if b.At(pos) != 0 {
			continue
		}
		tile := uint8(1)
		if env.rng.Intn(10) == 0 {
			tile = 2
		}
		return gm.PlaceAction{Pos: pos, Tile: tile}, true
	}
	return nil, false
}
