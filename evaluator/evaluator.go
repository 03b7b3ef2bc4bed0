// Package evaluator scores a board statically from one color's point of
// view. Every term is "own minus opponent", so the score for White is
// always the negation of the score for Black.
package evaluator

import (
	"github.com/domino14/go5/board"
)

type Evaluator struct {
	weights  Weights
	patterns []compiledPattern
}

func New(w Weights) (*Evaluator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	e := &Evaluator{weights: w}
	for _, p := range w.Patterns {
		cp, err := compilePattern(p)
		if err != nil {
			return nil, err
		}
		e.patterns = append(e.patterns, cp)
	}
	return e, nil
}

func (e *Evaluator) Weights() Weights {
	return e.weights
}

// Evaluate scores b for perspective. ply is the ply at which the board is
// being evaluated; odd plies are the ones where the side the search was
// started for is on move.
func (e *Evaluator) Evaluate(b *board.Board, perspective board.Color, ply int) float64 {
	own, opp := perspective, perspective.Opponent()
	w := &e.weights

	score := w.Material * float64(b.Count(own)-b.Count(opp))
	score += e.komiTerm(perspective, ply)
	score += w.EyeBonus * float64(b.Eyes(own)-b.Eyes(opp))
	score += e.patternScore(b, own) - e.patternScore(b, opp)
	score += w.ChainLiberty * float64(b.ChainLibertyTotal(own)-b.ChainLibertyTotal(opp))
	return score
}

// komiTerm charges Black the komi when the searching side is on move and
// credits it back on the other plies; White sees the mirror image.
func (e *Evaluator) komiTerm(perspective board.Color, ply int) float64 {
	sign := 1.0
	if perspective == board.Black {
		sign = -1.0
	}
	if ply%2 == 0 {
		sign = -sign
	}
	return sign * e.weights.Komi
}

func (e *Evaluator) patternScore(b *board.Board, own board.Color) float64 {
	score := 0.0
	for i := range e.patterns {
		if n := e.patterns[i].count(b, own); n > 0 {
			score += float64(n) * e.patterns[i].bonus
		}
	}
	return score
}
