package tilemg

import "fmt"

// Action is anything an agent can ask the board to do: a slide for the
// player, a tile placement for the environment. Apply returns the reward
// and whether the action was legal; illegal actions leave the board
// untouched.
type Action interface {
	Apply(b *Board) (reward int, ok bool)
	String() string
}

// SlideAction moves the whole board in one direction.
type SlideAction struct {
	Dir Direction
}

func (a SlideAction) Apply(b *Board) (int, bool) {
	return b.Slide(a.Dir)
}

func (a SlideAction) String() string {
	return "slide " + a.Dir.String()
}

// PlaceAction drops a new tile on an empty cell.
type PlaceAction struct {
	Pos  int
	Tile uint8
}

func (a PlaceAction) Apply(b *Board) (int, bool) {
	if a.Pos < 0 || a.Pos > 15 {
		return 0, false
	}
	return 0, b.Place(a.Pos, a.Tile)
}

func (a PlaceAction) String() string {
	return fmt.Sprintf("place %d at %d", 1<<a.Tile, a.Pos)
}
