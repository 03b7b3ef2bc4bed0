// Package alphabeta picks a move by depth-limited minimax with alpha-beta
// pruning, heuristic move ordering and a transposition table.
package alphabeta

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/go5/board"
	"github.com/domino14/go5/evaluator"
	"github.com/domino14/go5/game"
	"github.com/domino14/go5/movegen"
	"github.com/domino14/go5/zobrist"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
**/

// Scores are always from the point of view of the color the search was
// started for. Plies count up from 1 at the root.

var Infinity = math.Inf(1)

// Result is the outcome of one Solve.
type Result struct {
	Move  board.Point
	Pass  bool
	Score float64
	// Depth is the horizon of the last completed iteration.
	Depth int
	// Nodes counts the nodes visited by that iteration alone.
	Nodes uint64
}

func (r Result) Action() game.Action {
	if r.Pass {
		return game.PassAction()
	}
	return game.PlaceAction(r.Move)
}

// Solver implements the minimax + alphabeta algorithm.
type Solver struct {
	eval    *evaluator.Evaluator
	orderer *movegen.Orderer
	zobrist *zobrist.Zobrist
	ttable  *TranspositionTable

	maxDepth int
	// arena[d] holds the position searched at ply d; children of a ply-d
	// node are built in arena[d+1].
	arena []game.State

	pruningDisabled         bool
	transpositionTableOptim bool
	iterativeDeepeningOptim bool

	nodes   uint64
	leaves  uint64
	cutoffs uint64
}

// Init prepares the solver. z must already be initialized.
func (s *Solver) Init(e *evaluator.Evaluator, z *zobrist.Zobrist) {
	s.eval = e
	s.zobrist = z
	s.orderer = movegen.NewOrderer(e)
	s.maxDepth = e.Weights().Depth
}

func (s *Solver) SetMaxDepth(d int) {
	s.maxDepth = d
}

func (s *Solver) MaxDepth() int {
	return s.maxDepth
}

// SetPruningDisabled turns the solver into a plain exhaustive minimax.
func (s *Solver) SetPruningDisabled(d bool) {
	s.pruningDisabled = d
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

func (s *Solver) SetTranspositionTable(tt *TranspositionTable) {
	s.ttable = tt
}

func (s *Solver) SetIterativeDeepening(id bool) {
	s.iterativeDeepeningOptim = id
}

// SetMoveOrdering switches between one-ply ordering and the fixed
// priority order.
func (s *Solver) SetMoveOrdering(o bool) {
	s.orderer.SetOrdering(o)
}

func (s *Solver) Nodes() uint64 {
	return s.nodes
}

// Solve returns the best action for color in st. A position without any
// legal placement yields a pass.
func (s *Solver) Solve(ctx context.Context, st game.State, color board.Color) (Result, error) {
	if s.transpositionTableOptim && s.ttable == nil {
		return Result{}, errors.New("transposition table optimization on without a table")
	}
	tstart := time.Now()
	s.nodes, s.leaves, s.cutoffs = 0, 0, 0

	plies := s.maxDepth
	var res Result
	var err error
	if s.iterativeDeepeningOptim {
		res, err = s.iterativelyDeepen(ctx, st, color, plies)
	} else {
		res, err = s.solveToDepth(ctx, st, color, plies)
	}
	s.maxDepth = plies

	ev := log.Debug().
		Str("color", color.String()).
		Str("action", res.Action().String()).
		Float64("score", res.Score).
		Int("depth", res.Depth).
		Uint64("nodes", s.nodes).
		Uint64("leaves", s.leaves).
		Uint64("cutoffs", s.cutoffs)
	if s.ttable != nil && s.transpositionTableOptim {
		stats := s.ttable.Stats()
		ev = ev.Uint64("ttable-created", stats.Created).
			Uint64("ttable-lookups", stats.Lookups).
			Uint64("ttable-hits", stats.Hits).
			Uint64("ttable-t2collisions", stats.T2Collisions).
			Uint64("ttable-t1collisions", stats.T1Collisions)
	}
	ev.Float64("time-elapsed-sec", time.Since(tstart).Seconds()).Msg("solve-returning")
	return res, err
}

func (s *Solver) iterativelyDeepen(ctx context.Context, st game.State, color board.Color, plies int) (Result, error) {
	var best Result
	for p := 1; p <= plies; p++ {
		res, err := s.solveToDepth(ctx, st, color, p)
		if err != nil {
			if p == 1 {
				return Result{}, err
			}
			log.Debug().Int("completed-plies", p-1).Err(err).Msg("deepening-interrupted")
			return best, nil
		}
		log.Debug().Int("plies", p).Float64("score", res.Score).
			Str("action", res.Action().String()).Msg("deepening-iteratively")
		best = res
	}
	return best, nil
}

func (s *Solver) solveToDepth(ctx context.Context, st game.State, color board.Color, plies int) (Result, error) {
	s.maxDepth = plies
	if cap(s.arena) < plies+2 {
		s.arena = make([]game.State, plies+2)
	}
	s.arena = s.arena[:plies+2]
	s.arena[1] = st

	startNodes := s.nodes
	key := s.zobrist.Key(&st.Board, color)
	move, ok, score, err := s.search(ctx, key, true, color, -Infinity, Infinity, 1)
	if err != nil {
		return Result{}, err
	}
	return Result{Move: move, Pass: !ok, Score: score, Depth: plies, Nodes: s.nodes - startNodes}, nil
}

// search evaluates the node in s.arena[depth] with color to move. ok is
// false when no move was chosen, which is the case for leaves, for table
// hits and for nodes without legal placements.
func (s *Solver) search(ctx context.Context, key uint64, maximizing bool, color board.Color,
	α, β float64, depth int) (move board.Point, ok bool, score float64, err error) {

	if ctx.Err() != nil {
		return move, false, 0, ctx.Err()
	}
	s.nodes++
	node := &s.arena[depth]
	// plies still to be expanded below this node; 0 at the horizon.
	remaining := s.maxDepth - depth + 1

	// The root always searches so that it has a move to return.
	if s.transpositionTableOptim && depth > 1 {
		ttEntry := s.ttable.lookup(key, &node.Board)
		if ttEntry.valid() && int(ttEntry.depth()) >= remaining &&
			(!s.pruningDisabled || ttEntry.flag() == TTExact) {
			stored := ttEntry.score
			switch ttEntry.flag() {
			case TTExact:
				return move, false, stored, nil
			case TTLower:
				α = math.Max(α, stored)
			case TTUpper:
				β = math.Min(β, stored)
			}
			if α >= β {
				return move, false, stored, nil
			}
		}
	}

	if depth > s.maxDepth {
		s.leaves++
		v := s.eval.Evaluate(&node.Board, color, depth)
		if !maximizing {
			v = -v
		}
		return move, false, v, nil
	}

	αOrig, βOrig := α, β
	w := s.eval.Weights()
	opp := color.Opponent()
	best := -Infinity
	if !maximizing {
		best = Infinity
	}
	sign := 1.0
	if !maximizing {
		sign = -1.0
	}

	children := s.orderer.OrderedCandidates(*node, color)
	child := &s.arena[depth+1]
	for _, p := range children {
		captured := game.ApplyInto(child, *node, p, color)
		cb := &child.Board
		adj := w.CaptureBonus*float64(captured) -
			w.AtariPenalty*float64(cb.AtariCount(color)) +
			w.LibertyDiff*float64(cb.ChainLibertyTotal(color)-cb.ChainLibertyTotal(opp)) +
			w.MoveMaterial*float64(game.Score(*cb, color)-game.Score(*cb, opp))
		adj *= sign

		childKey := s.zobrist.Update(key, &node.Board, cb)
		// The child's window is shifted by adj so that cutoffs compare
		// against the same combined score the parent keeps.
		_, _, value, err := s.search(ctx, childKey, !maximizing, opp, α-adj, β-adj, depth+1)
		if err != nil {
			return move, false, value, err
		}
		final := value + adj
		// The first candidate is always taken, so a node with moves has a
		// move even when every line scores as a loss.
		if maximizing {
			if final > best || !ok {
				best, move, ok = final, p, true
				α = math.Max(α, best)
			}
		} else {
			if final < best || !ok {
				best, move, ok = final, p, true
				β = math.Min(β, best)
			}
		}
		if β <= α && !s.pruningDisabled {
			s.cutoffs++
			break
		}
	}

	if s.transpositionTableOptim {
		var flag uint8
		switch {
		case s.pruningDisabled:
			// nothing was cut off, so every value is exact.
			flag = TTExact
		case best <= αOrig:
			flag = TTUpper
		case best >= βOrig:
			flag = TTLower
		default:
			flag = TTExact
		}
		s.ttable.store(key, &node.Board, TableEntry{
			score:        best,
			flagAndDepth: flag<<6 + uint8(remaining),
		})
	}
	return move, ok, best, nil
}
