package board

import "math/bits"

// pointSet is a bitset over the 25 points of the board.
type pointSet uint32

func (s pointSet) has(idx int) bool {
	return s&(1<<idx) != 0
}

func (s pointSet) len() int {
	return bits.OnesCount32(uint32(s))
}

func (s pointSet) points() []Point {
	pts := make([]Point, 0, s.len())
	for s != 0 {
		idx := bits.TrailingZeros32(uint32(s))
		pts = append(pts, PointFromIndex(idx))
		s &= s - 1
	}
	return pts
}

// Chain is a maximal 4-connected group of same-colored stones together
// with the empty points adjacent to it.
type Chain struct {
	Color     Color
	Stones    []Point
	Liberties []Point
}

// flood walks the chain containing idx with an explicit stack and returns
// its stones and liberties. idx must hold a stone.
func (b *Board) flood(idx int) (stones, libs pointSet) {
	c := b[idx]
	var stack [NumPoints]int
	n := 0
	stack[n] = idx
	n++
	stones = 1 << idx
	for n > 0 {
		n--
		cur := stack[n]
		for _, nb := range neighborIdx[cur] {
			switch b[nb] {
			case Empty:
				libs |= 1 << nb
			case c:
				if !stones.has(nb) {
					stones |= 1 << nb
					stack[n] = nb
					n++
				}
			}
		}
	}
	return stones, libs
}

// ChainLiberties returns the liberties of the chain at p, each exactly once.
// It returns nil if p is empty.
func (b *Board) ChainLiberties(p Point) []Point {
	if b.At(p) == Empty {
		return nil
	}
	_, libs := b.flood(p.Index())
	return libs.points()
}

// LibertyCount is len(ChainLiberties(p)) without the allocation.
func (b *Board) LibertyCount(p Point) int {
	if b.At(p) == Empty {
		return 0
	}
	_, libs := b.flood(p.Index())
	return libs.len()
}

func (b *Board) HasLiberty(p Point) bool {
	return b.LibertyCount(p) > 0
}

// forEachChain calls fn once per chain of color c.
func (b *Board) forEachChain(c Color, fn func(stones, libs pointSet)) {
	var seen pointSet
	for idx, occ := range b {
		if occ != c || seen.has(idx) {
			continue
		}
		stones, libs := b.flood(idx)
		seen |= stones
		fn(stones, libs)
	}
}

// Chains lists every chain of color c in row-major order of its first stone.
func (b *Board) Chains(c Color) []Chain {
	var chains []Chain
	b.forEachChain(c, func(stones, libs pointSet) {
		chains = append(chains, Chain{
			Color:     c,
			Stones:    stones.points(),
			Liberties: libs.points(),
		})
	})
	return chains
}

// ChainLibertyTotal sums the liberty counts of c's chains. A liberty shared
// by two different chains counts once for each, but a chain is never
// counted more than once.
func (b *Board) ChainLibertyTotal(c Color) int {
	total := 0
	b.forEachChain(c, func(_, libs pointSet) {
		total += libs.len()
	})
	return total
}

// AtariCount is the number of c's chains with exactly one liberty.
func (b *Board) AtariCount(c Color) int {
	n := 0
	b.forEachChain(c, func(_, libs pointSet) {
		if libs.len() == 1 {
			n++
		}
	})
	return n
}

// RemoveDead takes every chain of color c with no liberties off the board
// and returns the number of stones removed.
func (b *Board) RemoveDead(c Color) int {
	var dead pointSet
	b.forEachChain(c, func(stones, libs pointSet) {
		if libs == 0 {
			dead |= stones
		}
	})
	if dead == 0 {
		return 0
	}
	for s := dead; s != 0; s &= s - 1 {
		b[bits.TrailingZeros32(uint32(s))] = Empty
	}
	return dead.len()
}

// Eyes counts the empty points whose in-board neighbors all hold c.
func (b *Board) Eyes(c Color) int {
	n := 0
outer:
	for idx, occ := range b {
		if occ != Empty {
			continue
		}
		for _, nb := range neighborIdx[idx] {
			if b[nb] != c {
				continue outer
			}
		}
		n++
	}
	return n
}
