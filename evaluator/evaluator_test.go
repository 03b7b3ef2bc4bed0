package evaluator

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/go5/board"
)

func mustBoard(t *testing.T, rows ...string) board.Board {
	t.Helper()
	b, err := board.FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func defaultEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e, err := New(DefaultWeights())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestEvaluateRowFour(t *testing.T) {
	is := is.New(t)
	e := defaultEvaluator(t)
	b := mustBoard(t,
		"XXXX.",
		".....",
		".....",
		".....",
		".....",
	)
	// material 4, komi -2.5, live four 3, live three 2, 5 liberties at 0.5
	is.Equal(e.Evaluate(&b, board.Black, 1), 9.0)
	is.Equal(e.Evaluate(&b, board.White, 1), -9.0)
	is.Equal(e.Evaluate(&b, board.Black, 2), 14.0)
}

func TestEvaluateColumnPattern(t *testing.T) {
	is := is.New(t)
	e := defaultEvaluator(t)
	b := mustBoard(t,
		"..X..",
		"..X..",
		"..X..",
		".....",
		".....",
	)
	// material 3, komi 2.5, live three 2, 7 liberties at 0.5
	is.Equal(e.Evaluate(&b, board.Black, 2), 11.0)
}

func TestEvaluateEye(t *testing.T) {
	is := is.New(t)
	e := defaultEvaluator(t)
	b := mustBoard(t,
		".X...",
		"X....",
		".....",
		".....",
		".....",
	)
	// material 2, komi 2.5, one eye 4, two chains of 3 liberties at 0.5
	is.Equal(e.Evaluate(&b, board.Black, 2), 11.5)
}

func TestDeadFour(t *testing.T) {
	is := is.New(t)
	e := defaultEvaluator(t)
	b := mustBoard(t,
		"OXXX.",
		".....",
		".....",
		".....",
		".....",
	)
	is.Equal(e.patternScore(&b, board.Black), -1.0)
	is.Equal(e.patternScore(&b, board.White), 0.0)
}

func TestAntisymmetricAndDeterministic(t *testing.T) {
	is := is.New(t)
	e := defaultEvaluator(t)
	boards := []board.Board{
		{},
		mustBoard(t,
			"XO.X.",
			".XOO.",
			"XXO..",
			"..OX.",
			"O...X",
		),
		mustBoard(t,
			"OOOO.",
			"XXX..",
			"X.X..",
			"XXX.O",
			"....O",
		),
	}
	for _, b := range boards {
		for ply := 0; ply < 5; ply++ {
			black := e.Evaluate(&b, board.Black, ply)
			is.Equal(black, -e.Evaluate(&b, board.White, ply))
			is.Equal(black, e.Evaluate(&b, board.Black, ply))
		}
	}
}

func TestKomiSign(t *testing.T) {
	is := is.New(t)
	e := defaultEvaluator(t)
	is.Equal(e.komiTerm(board.Black, 1), -2.5)
	is.Equal(e.komiTerm(board.White, 1), 2.5)
	is.Equal(e.komiTerm(board.Black, 2), 2.5)
	is.Equal(e.komiTerm(board.White, 4), -2.5)
}

func TestLoadWeights(t *testing.T) {
	is := is.New(t)
	w, err := LoadWeights("testdata/weights.yaml")
	is.NoErr(err)
	is.Equal(w.Depth, 4)
	is.Equal(w.CaptureBonus, 5.0)
	is.Equal(w.CenterDistance, 0.25)
	// untouched keys keep their defaults.
	is.Equal(w.EyeBonus, 4.0)
	is.Equal(w.Komi, 2.5)
	is.Equal(len(w.Patterns), 1)
	is.Equal(w.Patterns[0].Bonus, 1.5)

	_, err = LoadWeights("testdata/bad_depth.yaml")
	is.True(errors.Is(err, ErrBadWeights))

	_, err = LoadWeights("testdata/nonexistent.yaml")
	is.True(err != nil)
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	is.NoErr(DefaultWeights().Validate())

	w := DefaultWeights()
	w.Komi = -1
	is.True(errors.Is(w.Validate(), ErrBadWeights))

	w = DefaultWeights()
	w.Patterns = append(w.Patterns, Pattern{Name: "bad", Shape: "OOZ"})
	_, err := New(w)
	is.True(errors.Is(err, ErrBadWeights))

	w = DefaultWeights()
	w.Patterns = []Pattern{{Name: "long", Shape: "OOOOOO"}}
	is.True(errors.Is(w.Validate(), ErrBadWeights))
}
