// Package agent defines the lifecycle surface the episode loop drives
// and the two concrete roles that play a game between them: the n-tuple
// Player and the RandomEnvironment that answers its moves with tile
// drops. Agents are configured with a whitespace-separated string of
// key=value tokens; keys an agent does not recognize are kept opaquely.
package agent

import (
	"strconv"
	"strings"

	gm "tile-engine/tilemg"
)

// Agent is the closed capability set shared by every role. Roles are
// picked at construction, not via subtyping.
type Agent interface {
	Name() string
	Role() string

	// OpenEpisode resets per-episode state before a new game.
	OpenEpisode(flag string)
	// TakeAction proposes the agent's action for the board. ok == false
	// means the agent has nothing legal to do; for a player that is the
	// end of the episode.
	TakeAction(b *gm.Board) (gm.Action, bool)
	// CloseEpisode runs once per finished game; a learning agent trains
	// here.
	CloseEpisode(flag string)
	// Notify applies one late key=value configuration update.
	Notify(msg string)
}

// Properties is the parsed key=value configuration of one agent.
type Properties map[string]string

// ParseProperties splits a whitespace-separated key=value token string.
// A token without '=' becomes a key with an empty value.
func ParseProperties(args string) Properties {
	props := make(Properties)
	for _, tok := range strings.Fields(args) {
		key, value, _ := strings.Cut(tok, "=")
		props[key] = value
	}
	return props
}

// Float reads key as a float64.
func (p Properties) Float(key string) (float64, bool) {
	s, ok := p[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Int reads key as an int.
func (p Properties) Int(key string) (int, bool) {
	s, ok := p[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// base carries the shared identification and notify plumbing.
type base struct {
	props Properties
}

func newBase(defaults, args string) base {
	return base{props: ParseProperties(defaults + " " + args)}
}

func (b *base) Name() string {
	return b.props["name"]
}

func (b *base) Role() string {
	return b.props["role"]
}

// Property returns the raw value of one configuration key.
func (b *base) Property(key string) string {
	return b.props[key]
}

func (b *base) Notify(msg string) {
	key, value, _ := strings.Cut(msg, "=")
	b.props[key] = value
}

func (b *base) OpenEpisode(flag string)  {}
func (b *base) CloseEpisode(flag string) {}
