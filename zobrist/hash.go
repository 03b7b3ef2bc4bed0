package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/go5/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a go position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	whiteToMove uint64

	// posTable is indexed by point, then by color. The Empty column stays
	// zero so empty points contribute nothing.
	posTable [board.NumPoints][3]uint64
}

// Initialize draws a fresh set of keys. Keys are only meaningful within
// the lifetime of one Zobrist value.
func (z *Zobrist) Initialize() {
	for i := 0; i < board.NumPoints; i++ {
		z.posTable[i][board.Empty] = 0
		z.posTable[i][board.Black] = frand.Uint64n(bignum) + 1
		z.posTable[i][board.White] = frand.Uint64n(bignum) + 1
	}
	z.whiteToMove = frand.Uint64n(bignum) + 1
}

// Hash is the key of the board alone.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	for i, c := range b {
		key ^= z.posTable[i][c]
	}
	return key
}

// Key is the key of the board with toMove to play.
func (z *Zobrist) Key(b *board.Board, toMove board.Color) uint64 {
	key := z.Hash(b)
	if toMove == board.White {
		key ^= z.whiteToMove
	}
	return key
}

// Update turns the key of before into the key of after by toggling only
// the points that differ, then passes the move to the other side. It is
// what the search calls after placing a stone and resolving captures.
func (z *Zobrist) Update(key uint64, before, after *board.Board) uint64 {
	for i := range before {
		if before[i] != after[i] {
			key ^= z.posTable[i][before[i]]
			key ^= z.posTable[i][after[i]]
		}
	}
	return key ^ z.whiteToMove
}
