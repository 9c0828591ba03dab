package tilemg

import (
	"fmt"
	"strings"
)

// Board is a 4x4 grid of tile exponents: 0 is an empty cell, k > 0 holds
// the tile 2^k. It is a value type; copying it is how search branches.
type Board [16]uint8

// Direction indexes the four slide moves in their canonical order.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var directionNames = [4]string{"up", "right", "down", "left"}

func (d Direction) String() string {
	if d < Up || d > Left {
		return fmt.Sprintf("dir(%d)", int(d))
	}
	return directionNames[d]
}

// At returns the exponent at cell pos (0..15, row-major).
func (b *Board) At(pos int) uint8 {
	return b[pos]
}

// Set writes the exponent at cell pos.
func (b *Board) Set(pos int, tile uint8) {
	b[pos] = tile
}

// Place drops a tile on an empty cell. It reports false if the cell is
// already occupied.
func (b *Board) Place(pos int, tile uint8) bool {
	if b[pos] != 0 {
		return false
	}
	b[pos] = tile
	return true
}

// CountEmpty returns the number of empty cells.
func (b *Board) CountEmpty() int {
	n := 0
	for _, c := range b {
		if c == 0 {
			n++
		}
	}
	return n
}

// EmptyCells returns the positions of all empty cells in ascending order.
func (b *Board) EmptyCells() []int {
	cells := make([]int, 0, 16)
	for pos, c := range b {
		if c == 0 {
			cells = append(cells, pos)
		}
	}
	return cells
}

// MaxTile returns the largest exponent on the board.
func (b *Board) MaxTile() uint8 {
	var max uint8
	for _, c := range b {
		if c > max {
			max = c
		}
	}
	return max
}

// rowIndex maps (direction, lane, step) to a cell, so that every slide is
// a merge toward step 0 of each lane.
var rowIndex = [4][4][4]int{
	Up:    {{0, 4, 8, 12}, {1, 5, 9, 13}, {2, 6, 10, 14}, {3, 7, 11, 15}},
	Right: {{3, 2, 1, 0}, {7, 6, 5, 4}, {11, 10, 9, 8}, {15, 14, 13, 12}},
	Down:  {{12, 8, 4, 0}, {13, 9, 5, 1}, {14, 10, 6, 2}, {15, 11, 7, 3}},
	Left:  {{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 10, 11}, {12, 13, 14, 15}},
}

// Slide applies one of the four moves in place. It returns the merge
// reward and whether the board changed; moved == false is the illegal
// move signal and leaves the board untouched.
func (b *Board) Slide(dir Direction) (reward int, moved bool) {
	if dir < Up || dir > Left {
		return 0, false
	}
	for lane := 0; lane < 4; lane++ {
		idx := &rowIndex[dir][lane]

		var line [4]uint8
		for i := 0; i < 4; i++ {
			line[i] = b[idx[i]]
		}

		out, gained, changed := mergeLine(line)
		if changed {
			for i := 0; i < 4; i++ {
				b[idx[i]] = out[i]
			}
			reward += gained
			moved = true
		}
	}
	return reward, moved
}

// mergeLine compacts a lane toward index 0, merging equal neighbors once
// each. Reward is the face value of every tile created.
func mergeLine(line [4]uint8) (out [4]uint8, reward int, changed bool) {
	top := 0
	hold := uint8(0)
	for i := 0; i < 4; i++ {
		t := line[i]
		if t == 0 {
			continue
		}
		if hold == 0 {
			hold = t
			continue
		}
		if hold == t {
			out[top] = t + 1
			reward += 1 << (t + 1)
			top++
			hold = 0
		} else {
			out[top] = hold
			top++
			hold = t
		}
	}
	if hold != 0 {
		out[top] = hold
	}
	changed = out != line
	return out, reward, changed
}

// HasMove reports whether any of the four slides is legal.
func (b *Board) HasMove() bool {
	for dir := Up; dir <= Left; dir++ {
		probe := *b
		if _, moved := probe.Slide(dir); moved {
			return true
		}
	}
	return false
}

// String renders the board with tile face values, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			v := 0
			if e := b[r*4+c]; e > 0 {
				v = 1 << e
			}
			fmt.Fprintf(&sb, "%6d", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
