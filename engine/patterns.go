package engine

// TupleLength is the number of board cells contributing to one feature.
const TupleLength = 6

// PatternCount is the total number of patterns across all groups.
const PatternCount = 32

// GroupSize is how many symmetric placements of one canonical tuple
// shape share a single physical weight table.
const GroupSize = 8

// Patterns lists the cell coordinates of every tuple, most significant
// digit first. Patterns i/8 == g share table g.
var Patterns = [PatternCount][TupleLength]int{
	// outer six
	{3, 2, 1, 0, 4, 5},
	{0, 4, 8, 12, 13, 9},
	{12, 13, 14, 15, 11, 10},
	{15, 11, 7, 3, 2, 6},
	{0, 1, 2, 3, 7, 6},
	{12, 8, 4, 0, 1, 5},
	{15, 14, 13, 12, 8, 9},
	{3, 7, 11, 15, 14, 10},

	// inner six
	{7, 6, 5, 4, 8, 9},
	{4, 5, 6, 7, 11, 10},
	{11, 10, 9, 8, 4, 5},
	{8, 9, 10, 11, 7, 6},
	{13, 9, 5, 1, 2, 6},
	{1, 5, 9, 13, 14, 10},
	{14, 10, 6, 2, 1, 5},
	{2, 6, 10, 14, 13, 9},

	// outer 2x3 rectangle
	{0, 1, 5, 9, 8, 4},
	{0, 4, 5, 6, 2, 1},
	{3, 7, 6, 5, 1, 2},
	{3, 2, 6, 10, 11, 7},
	{12, 13, 9, 5, 4, 8},
	{12, 8, 9, 10, 14, 13},
	{15, 11, 10, 9, 13, 14},
	{15, 14, 10, 6, 7, 11},

	// inner 2x3 rectangle
	{1, 2, 6, 10, 9, 5},
	{2, 1, 5, 9, 10, 6},
	{8, 4, 5, 6, 10, 9},
	{4, 8, 9, 10, 6, 5},
	{7, 11, 10, 9, 5, 6},
	{11, 7, 6, 5, 9, 10},
	{14, 13, 9, 5, 6, 10},
	{13, 14, 10, 6, 5, 9},
}

// TableCount is the number of weight tables backing the 32 patterns.
const TableCount = PatternCount / GroupSize

// GroupOf returns the table shared by pattern p.
func GroupOf(p int) int {
	return p / GroupSize
}
