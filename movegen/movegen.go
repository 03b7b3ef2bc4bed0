// Package movegen produces the candidate placements the search explores,
// filtered for legality and ordered so that the most promising come first.
package movegen

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/go5/board"
	"github.com/domino14/go5/evaluator"
	"github.com/domino14/go5/game"
)

var center = board.Point{Row: board.Size / 2, Col: board.Size / 2}

// priority covers every point once: the center, the ring around it, the
// non-corner edge points and finally the corners.
var priority = []board.Point{
	{Row: 2, Col: 2},

	{Row: 1, Col: 1}, {Row: 1, Col: 3}, {Row: 3, Col: 3}, {Row: 3, Col: 1},
	{Row: 1, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 2, Col: 1},

	{Row: 0, Col: 2}, {Row: 2, Col: 4}, {Row: 4, Col: 2}, {Row: 2, Col: 0},
	{Row: 0, Col: 1}, {Row: 0, Col: 3}, {Row: 1, Col: 4}, {Row: 3, Col: 4},
	{Row: 4, Col: 3}, {Row: 4, Col: 1}, {Row: 3, Col: 0}, {Row: 1, Col: 0},

	{Row: 0, Col: 0}, {Row: 0, Col: 4}, {Row: 4, Col: 4}, {Row: 4, Col: 0},
}

// PriorityList returns a copy of the fixed candidate order.
func PriorityList() []board.Point {
	return append([]board.Point(nil), priority...)
}

func distanceToCenter(p board.Point) int {
	dr, dc := p.Row-center.Row, p.Col-center.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

type Orderer struct {
	eval     *evaluator.Evaluator
	ordering bool
}

func NewOrderer(e *evaluator.Evaluator) *Orderer {
	return &Orderer{eval: e, ordering: true}
}

// SetOrdering turns the one-ply re-sort on or off. With it off, candidates
// come back in the fixed priority order.
func (o *Orderer) SetOrdering(on bool) {
	o.ordering = on
}

// estimate scores the position after c plays p, as seen by c at the
// first ply.
func (o *Orderer) estimate(s game.State, p board.Point, c board.Color) float64 {
	var child game.State
	game.ApplyInto(&child, s, p, c)
	return o.eval.Evaluate(&child.Board, c, 1) -
		o.eval.Weights().CenterDistance*float64(distanceToCenter(p))
}

type candidate struct {
	p   board.Point
	est float64
}

// OrderedCandidates returns c's legal placements in s, best first by a
// one-ply lookahead. Ties keep the fixed priority order.
func (o *Orderer) OrderedCandidates(s game.State, c board.Color) []board.Point {
	legal := lo.Filter(priority, func(p board.Point, _ int) bool {
		return game.IsLegal(s, p, c)
	})
	if !o.ordering || len(legal) < 2 {
		return legal
	}
	cands := make([]candidate, len(legal))
	for i, p := range legal {
		cands[i] = candidate{p: p, est: o.estimate(s, p, c)}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].est > cands[j].est
	})
	for i := range cands {
		legal[i] = cands[i].p
	}
	return legal
}
