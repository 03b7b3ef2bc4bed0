package automatic

// Computer vs computer self-play, for comparing players and tuning weights.

import (
	"context"
	"errors"
	"expvar"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/go5/board"
	"github.com/domino14/go5/bot"
	"github.com/domino14/go5/config"
	"github.com/domino14/go5/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// PlayerFactory builds the player that takes color c in game gameIdx.
// Players are never shared between games.
type PlayerFactory func(gameIdx int, c board.Color) (bot.Player, error)

// NewPlayerFactory seats the named players ("minimax" or "random") for
// black and white. A non-zero seed makes random players reproducible.
func NewPlayerFactory(cfg *config.Config, black, white string, seed uint64) (PlayerFactory, error) {
	for _, name := range []string{black, white} {
		if name != bot.MinimaxPlayer && name != bot.RandomPlayer {
			return nil, fmt.Errorf("unknown player %q", name)
		}
	}
	return func(gameIdx int, c board.Color) (bot.Player, error) {
		name := black
		if c == board.White {
			name = white
		}
		if name == bot.MinimaxPlayer {
			return bot.NewMinimaxBot(cfg)
		}
		if seed == 0 {
			return bot.NewRandomBot(), nil
		}
		return bot.NewSeededRandomBot(seed + uint64(2*gameIdx) + uint64(c)), nil
	}, nil
}

// PlayGames plays numGames games on up to threads goroutines and returns
// the records in game order. Lines describing every move go to logchan
// when it is not nil; the caller drains and closes it.
func PlayGames(ctx context.Context, numGames, threads int, komi float64,
	newPlayer PlayerFactory, logchan chan string) ([]GameRecord, error) {

	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	if threads < 1 {
		threads = 1
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	CVCCounter.Set(0)
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	records := make([]GameRecord, numGames)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

gameLoop:
	for i := 0; i < numGames; i++ {
		select {
		case <-gctx.Done():
			log.Info().Msg("Got stop signal, exiting soon...")
			break gameLoop
		default:
		}
		g.Go(func() error {
			black, err := newPlayer(i, board.Black)
			if err != nil {
				return err
			}
			white, err := newPlayer(i, board.White)
			if err != nil {
				return err
			}
			r := NewGameRunner(logchan, black, white)
			r.SetKomi(komi)
			r.SetGameID(i)
			rec, err := r.PlayGame(gctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			records[i] = rec
			CVCCounter.Add(1)
			if n := CVCCounter.Value(); n%1000 == 0 {
				log.Info().Msgf("Finished %v games", n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info().Msg("All games finished.")
	return records, nil
}

// Summary aggregates a batch of game records from Black's point of view.
type Summary struct {
	Games       int
	BlackWins   int
	WhiteWins   int
	Ties        int
	BlackWinPct stats.Proportion
	MeanMargin  float64
	StdevMargin float64
	Reasons     map[EndReason]int
}

// Summarize counts ties as half a win for Black's win rate, reported at
// the given confidence percentage.
func Summarize(records []GameRecord, komi, confidence float64) Summary {
	s := Summary{
		Games:     len(records),
		BlackWins: lo.CountBy(records, func(r GameRecord) bool { return r.Winner == board.Black }),
		WhiteWins: lo.CountBy(records, func(r GameRecord) bool { return r.Winner == board.White }),
		Ties:      lo.CountBy(records, func(r GameRecord) bool { return r.Winner == board.Empty }),
		Reasons:   lo.CountValuesBy(records, func(r GameRecord) EndReason { return r.Reason }),
	}
	s.BlackWinPct = stats.WinRate(float64(s.BlackWins)+float64(s.Ties)/2, s.Games, confidence)
	s.MeanMargin, s.StdevMargin = stats.MeanStdDev(lo.Map(records, func(r GameRecord, _ int) float64 {
		return r.Margin(komi)
	}))
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("games: %d  black: %d  white: %d  ties: %d\n"+
		"black win rate: %.3f (%.3f - %.3f)\n"+
		"margin: %.2f ± %.2f\n"+
		"endings: move-limit %d, double-pass %d, illegal-move %d",
		s.Games, s.BlackWins, s.WhiteWins, s.Ties,
		s.BlackWinPct.Rate, s.BlackWinPct.Low, s.BlackWinPct.High,
		s.MeanMargin, s.StdevMargin,
		s.Reasons[EndMoveLimit], s.Reasons[EndDoublePass], s.Reasons[EndIllegalMove])
}
