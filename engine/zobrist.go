package engine

import gm "tile-engine/tilemg"

// Zobrist keys for board hashing: one key per (cell, exponent) pair,
// derived from a fixed splitmix64 stream so hashes are stable across
// runs. Exponents beyond the key range collapse onto the last key; the
// cache tolerates that the same way the feature clamp does.

const zobristExponents = 32

var zobristKeys [16][zobristExponents]uint64

func init() {
	s := splitmix64{state: 0x9e3779b97f4a7c15}
	for pos := range zobristKeys {
		for exp := 1; exp < zobristExponents; exp++ {
			zobristKeys[pos][exp] = s.next()
		}
	}
}

// Hash returns a zobrist hash of the board; empty cells contribute
// nothing.
func Hash(b *gm.Board) uint64 {
	var h uint64
	for pos := 0; pos < 16; pos++ {
		e := b.At(pos)
		if e == 0 {
			continue
		}
		if e >= zobristExponents {
			e = zobristExponents - 1
		}
		h ^= zobristKeys[pos][e]
	}
	return h
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
