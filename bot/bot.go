// Package bot exposes the players that can be asked for a move: the
// minimax searcher and a uniformly random baseline.
package bot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/domino14/go5/alphabeta"
	"github.com/domino14/go5/board"
	"github.com/domino14/go5/config"
	"github.com/domino14/go5/evaluator"
	"github.com/domino14/go5/game"
	"github.com/domino14/go5/zobrist"
)

const (
	MinimaxPlayer = "minimax"
	RandomPlayer  = "random"
)

// Player decides one action for color c in s.
type Player interface {
	Decide(ctx context.Context, s game.State, c board.Color) (game.Action, error)
	Name() string
}

type MinimaxBot struct {
	cfg  *config.Config
	eval *evaluator.Evaluator

	policy alphabeta.Policy
	last   alphabeta.Result
}

// NewMinimaxBot builds the searcher from cfg. Weights come from the
// configured weights file, or the defaults when none is set; a positive
// search-depth overrides the weights' horizon.
func NewMinimaxBot(cfg *config.Config) (*MinimaxBot, error) {
	w := evaluator.DefaultWeights()
	if path := cfg.GetString(config.ConfigWeightsFile); path != "" {
		var err error
		if w, err = evaluator.LoadWeights(path); err != nil {
			return nil, err
		}
	}
	if d := cfg.GetInt(config.ConfigSearchDepth); d > 0 {
		w.Depth = d
	}
	e, err := evaluator.New(w)
	if err != nil {
		return nil, err
	}
	policy, err := alphabeta.ParsePolicy(cfg.GetString(config.ConfigTTPolicy))
	if err != nil {
		return nil, err
	}
	return &MinimaxBot{cfg: cfg, eval: e, policy: policy}, nil
}

func (b *MinimaxBot) Name() string {
	return MinimaxPlayer
}

// LastResult is the full search result behind the latest decision.
func (b *MinimaxBot) LastResult() alphabeta.Result {
	return b.last
}

// Decide runs one search. Hash keys and the transposition table are
// created for this call and dropped when it returns.
func (b *MinimaxBot) Decide(ctx context.Context, s game.State, c board.Color) (game.Action, error) {
	if !c.Valid() {
		return game.Action{}, fmt.Errorf("cannot decide for color %v", c)
	}
	if limit := b.cfg.GetDuration(config.ConfigSearchTimeLimit); limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	z := &zobrist.Zobrist{}
	z.Initialize()

	solver := &alphabeta.Solver{}
	solver.Init(b.eval, z)
	solver.SetMoveOrdering(b.cfg.GetBool(config.ConfigMoveOrdering))
	solver.SetIterativeDeepening(b.cfg.GetBool(config.ConfigIterativeDeepening))
	if b.cfg.GetBool(config.ConfigTTEnabled) {
		tt := alphabeta.NewTranspositionTable(b.cfg.GetInt(config.ConfigTTSizePower),
			b.cfg.GetFloat64(config.ConfigTTMemoryFraction), b.policy)
		tt.SetVerify(b.cfg.GetBool(config.ConfigTTVerify))
		solver.SetTranspositionTable(tt)
		solver.SetTranspositionTableOptim(true)
	}

	res, err := solver.Solve(ctx, s, c)
	if err != nil {
		return game.Action{}, err
	}
	b.last = res
	zerolog.Ctx(ctx).Debug().Str("color", c.String()).
		Str("action", res.Action().String()).
		Float64("score", res.Score).
		Msg("minimax-decision")
	return res.Action(), nil
}
