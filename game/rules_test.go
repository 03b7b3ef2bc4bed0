package game

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/go5/board"
)

func stateFromRows(t *testing.T, toMove board.Color, rows ...string) State {
	t.Helper()
	b, err := board.FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	return NewState(b, board.Board{}, toMove)
}

func TestEmptyBoardAllLegal(t *testing.T) {
	is := is.New(t)
	s := NewGame()
	is.Equal(len(LegalMoves(s, board.Black)), board.NumPoints)
	is.True(!IsLegal(s, board.Point{Row: -1, Col: 0}, board.Black))
	is.True(!IsLegal(s, board.Point{Row: 0, Col: 5}, board.Black))
}

func TestOccupiedIllegal(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.White,
		".....",
		".....",
		"..X..",
		".....",
		".....",
	)
	is.True(!IsLegal(s, board.Point{Row: 2, Col: 2}, board.White))
	is.True(!IsLegal(s, board.Point{Row: 2, Col: 2}, board.Black))
}

func TestCaptureSingleStone(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.Black,
		".....",
		"..X..",
		".XO..",
		"..X..",
		".....",
	)
	p := board.Point{Row: 2, Col: 3}
	is.True(IsLegal(s, p, board.Black))
	child, captured := Apply(s, p, board.Black)
	is.Equal(captured, 1)
	is.Equal(child.Board.At(board.Point{Row: 2, Col: 2}), board.Empty)
	is.Equal(Score(child.Board, board.Black), Score(s.Board, board.Black)+1)
	is.Equal(Score(child.Board, board.White), 0)
	is.Equal(child.ToMove, board.White)
	is.Equal(child.Previous, s.Board)
	is.Equal(child.MoveCount, 1)
}

func TestApplyDoesNotMutate(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.Black,
		".....",
		"..X..",
		".XO..",
		"..X..",
		".....",
	)
	orig := s
	_, _ = Apply(s, board.Point{Row: 2, Col: 3}, board.Black)
	is.Equal(s, orig)

	var dst State
	ApplyInto(&dst, s, board.Point{Row: 0, Col: 0}, board.Black)
	is.Equal(s, orig)
	is.Equal(dst.Board.At(board.Point{Row: 0, Col: 0}), board.Black)
}

func TestSuicideRejected(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.White,
		".X...",
		"X....",
		".....",
		".....",
		".....",
	)
	is.True(!IsLegal(s, board.Point{Row: 0, Col: 0}, board.White))
	// Black filling its own eye is fine while the chain keeps liberties.
	is.True(IsLegal(s, board.Point{Row: 0, Col: 0}, board.Black))

	// multi-stone suicide
	s = stateFromRows(t, board.White,
		"O.X..",
		"XX...",
		".....",
		".....",
		".....",
	)
	is.True(!IsLegal(s, board.Point{Row: 0, Col: 1}, board.White))
}

func TestKoRejected(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.Black,
		".XO..",
		"XO.O.",
		".XO..",
		".....",
		".....",
	)
	take := board.Point{Row: 1, Col: 2}
	is.True(IsLegal(s, take, board.Black))
	s1, captured := Apply(s, take, board.Black)
	is.Equal(captured, 1)

	retake := board.Point{Row: 1, Col: 1}
	// The retake would recreate the board from before Black's capture.
	is.True(!IsLegal(s1, retake, board.White))

	// Once something else has happened in between, the retake is allowed.
	s2 := Pass(Pass(s1))
	is.Equal(s2.ToMove, board.White)
	is.True(IsLegal(s2, retake, board.White))
	s3, captured := Apply(s2, retake, board.White)
	is.Equal(captured, 1)
	is.Equal(s3.Board.At(take), board.Empty)
}

func TestRingCapture(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.Black,
		".....",
		".X.X.",
		".XOX.",
		".XXX.",
		".....",
	)
	closing := board.Point{Row: 1, Col: 2}
	is.True(IsLegal(s, closing, board.Black))
	child, captured := Apply(s, closing, board.Black)
	is.Equal(captured, 1)
	is.Equal(child.Board.At(board.Point{Row: 2, Col: 2}), board.Empty)
	is.Equal(Score(child.Board, board.Black), 8)
	is.Equal(Score(child.Board, board.White), 0)
}

func TestPass(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.Black,
		".....",
		".....",
		"..X..",
		".....",
		".....",
	)
	p := Pass(s)
	is.Equal(p.Board, s.Board)
	is.Equal(p.Previous, s.Board)
	is.Equal(p.ToMove, board.White)
	is.Equal(p.MoveCount, 1)
}

func TestWinner(t *testing.T) {
	is := is.New(t)
	b, err := board.FromRows([]string{
		"XXX..",
		"XXX..",
		"OO...",
		"O....",
		".....",
	})
	is.NoErr(err)
	// 6 against 3 + 2.5
	is.Equal(Winner(b, DefaultKomi), board.Black)
	// 6 against 3 + 4
	is.Equal(Winner(b, 4), board.White)
	is.Equal(Winner(b, 3), board.Empty)
	var empty board.Board
	is.Equal(Winner(empty, DefaultKomi), board.White)
	is.Equal(MaxMoves, 24)
}

func TestActionString(t *testing.T) {
	is := is.New(t)
	is.Equal(PassAction().String(), "PASS")
	is.Equal(PlaceAction(board.Point{Row: 3, Col: 1}).String(), "3,1")
}
