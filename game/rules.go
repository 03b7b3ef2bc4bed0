package game

import (
	"github.com/domino14/go5/board"
)

// IsLegal reports whether c may place a stone at p. The placement must be
// on the board and on an empty point; after captures are resolved the new
// stone's chain needs a liberty, and the resulting board may not repeat
// s.Previous. s is never modified.
func IsLegal(s State, p board.Point, c board.Color) bool {
	if !p.InBounds() || s.Board.At(p) != board.Empty {
		return false
	}
	b := s.Board
	b.Set(p, c)
	b.RemoveDead(c.Opponent())
	if !b.HasLiberty(p) {
		// suicide
		return false
	}
	if b == s.Previous {
		// ko
		return false
	}
	return true
}

// Apply places c at p, removes any opponent chains left without liberties
// and returns the resulting state together with the number of stones
// captured. Apply does not check legality; callers filter with IsLegal.
func Apply(s State, p board.Point, c board.Color) (State, int) {
	var child State
	captured := ApplyInto(&child, s, p, c)
	return child, captured
}

// ApplyInto is Apply writing into a caller-owned State. dst must not alias
// s's storage.
func ApplyInto(dst *State, s State, p board.Point, c board.Color) int {
	dst.Board = s.Board
	dst.Previous = s.Board
	dst.Board.Set(p, c)
	captured := dst.Board.RemoveDead(c.Opponent())
	dst.ToMove = c.Opponent()
	dst.MoveCount = s.MoveCount + 1
	return captured
}

// Pass hands the move to the opponent without touching the board.
func Pass(s State) State {
	return State{
		Board:     s.Board,
		Previous:  s.Board,
		ToMove:    s.ToMove.Opponent(),
		MoveCount: s.MoveCount + 1,
	}
}

// LegalMoves lists every legal placement for c in row-major order.
func LegalMoves(s State, c board.Color) []board.Point {
	var moves []board.Point
	for idx := 0; idx < board.NumPoints; idx++ {
		p := board.PointFromIndex(idx)
		if IsLegal(s, p, c) {
			moves = append(moves, p)
		}
	}
	return moves
}

// Score is the number of c's stones on the board.
func Score(b board.Board, c board.Color) int {
	return b.Count(c)
}

// Winner compares Black's stones against White's stones plus komi. It
// returns board.Empty for a tie.
func Winner(b board.Board, komi float64) board.Color {
	black := float64(Score(b, board.Black))
	white := float64(Score(b, board.White)) + komi
	switch {
	case black > white:
		return board.Black
	case black < white:
		return board.White
	}
	return board.Empty
}
