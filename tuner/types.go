package tuner

import gm "tile-engine/tilemg"

// Transition is one step of episode history: the afterstate the move
// produced and the reward it earned. History is built forward during
// play and consumed backward by Replay.
type Transition struct {
	After  gm.Board
	Reward float64
}

// Policy selects how replay deltas reach the weight tables.
type Policy string

const (
	// PolicyTD is plain TD(0): one shared learning rate for every
	// feature.
	PolicyTD Policy = "td"
	// PolicyTC adds the temporal-coherence adaptive per-feature rate.
	PolicyTC Policy = "tc"
)

// DefaultLambda is the exponential blend factor of the carried
// correction.
const DefaultLambda = 0.5

// Config fixes a learner's update rule.
type Config struct {
	Alpha  float64
	Lambda float64
	Policy Policy
}
