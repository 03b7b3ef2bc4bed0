package automatic

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/go5/board"
	"github.com/domino14/go5/bot"
	"github.com/domino14/go5/config"
	"github.com/domino14/go5/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// scripted plays its actions in order and passes once they run out.
type scripted struct {
	actions []game.Action
	err     error
}

func (p *scripted) Name() string { return "scripted" }

func (p *scripted) Decide(ctx context.Context, s game.State, c board.Color) (game.Action, error) {
	if p.err != nil {
		return game.Action{}, p.err
	}
	if len(p.actions) == 0 {
		return game.PassAction(), nil
	}
	a := p.actions[0]
	p.actions = p.actions[1:]
	return a, nil
}

func place(row, col int) game.Action {
	return game.PlaceAction(board.Point{Row: row, Col: col})
}

func TestDoublePassEndsGame(t *testing.T) {
	black := &scripted{actions: []game.Action{place(2, 2)}}
	white := &scripted{}
	r := NewGameRunner(nil, black, white)

	rec, err := r.PlayGame(context.Background())
	require.NoError(t, err)
	// white passes, black passes back
	assert.Equal(t, EndDoublePass, rec.Reason)
	assert.Len(t, rec.Moves, 3)
	assert.Equal(t, 1, rec.BlackScore)
	assert.Equal(t, 0, rec.WhiteScore)
	// 1 < 0 + 2.5
	assert.Equal(t, board.White, rec.Winner)
	assert.Equal(t, 3, rec.Final.MoveCount)
}

func TestSinglePassContinues(t *testing.T) {
	black := &scripted{actions: []game.Action{game.PassAction()}}
	white := &scripted{actions: []game.Action{place(0, 0), place(4, 4)}}
	r := NewGameRunner(nil, black, white)
	r.SetKomi(0)

	// Black's opening pass ends the game at once: the empty board equals
	// the empty previous board.
	rec, err := r.PlayGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EndDoublePass, rec.Reason)
	assert.Len(t, rec.Moves, 1)
	assert.Equal(t, board.Empty, rec.Winner)

	black = &scripted{actions: []game.Action{place(2, 2), game.PassAction(), place(1, 1)}}
	white = &scripted{actions: []game.Action{place(0, 0), place(4, 4)}}
	r = NewGameRunner(nil, black, white)
	rec, err = r.PlayGame(context.Background())
	require.NoError(t, err)
	// B 2,2  W 0,0  B pass  W 4,4  B 1,1  W pass  B pass
	assert.Equal(t, EndDoublePass, rec.Reason)
	assert.Len(t, rec.Moves, 7)
	assert.Equal(t, 2, rec.BlackScore)
	assert.Equal(t, 2, rec.WhiteScore)
}

func TestIllegalMoveForfeits(t *testing.T) {
	black := &scripted{actions: []game.Action{place(2, 2), place(2, 2)}}
	white := &scripted{actions: []game.Action{place(0, 0)}}
	r := NewGameRunner(nil, black, white)

	rec, err := r.PlayGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EndIllegalMove, rec.Reason)
	assert.Equal(t, board.White, rec.Winner)
	assert.Len(t, rec.Moves, 3)
}

func TestMoveLimit(t *testing.T) {
	r := NewGameRunner(nil, bot.NewSeededRandomBot(1), bot.NewSeededRandomBot(2))
	r.SetMaxMoves(6)
	rec, err := r.PlayGame(context.Background())
	require.NoError(t, err)
	if rec.Reason == EndMoveLimit {
		assert.Len(t, rec.Moves, 6)
		assert.Equal(t, 6, rec.Final.MoveCount)
	}
	assert.NotEqual(t, EndIllegalMove, rec.Reason)
	assert.Equal(t, game.Winner(rec.Final.Board, game.DefaultKomi), rec.Winner)
}

func TestDecisionErrorStopsGame(t *testing.T) {
	boom := errors.New("boom")
	r := NewGameRunner(nil, &scripted{}, &scripted{err: boom})
	_, err := r.PlayFrom(context.Background(), game.NewState(
		board.Board{}, board.Board{}, board.White))
	assert.ErrorIs(t, err, boom)
}

func TestMoveLog(t *testing.T) {
	logchan := make(chan string, 10)
	black := &scripted{actions: []game.Action{place(2, 2)}}
	r := NewGameRunner(logchan, black, &scripted{})
	r.SetGameID(7)
	_, err := r.PlayGame(context.Background())
	require.NoError(t, err)
	close(logchan)
	var lines []string
	for l := range logchan {
		lines = append(lines, l)
	}
	require.Len(t, lines, 3)
	assert.Equal(t, "7,0,scripted,black,\"2,2\",0\n", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "\"PASS\",1\n"))
}

func TestPlayGamesRandom(t *testing.T) {
	factory, err := NewPlayerFactory(config.DefaultConfig(), bot.RandomPlayer, bot.RandomPlayer, 99)
	require.NoError(t, err)

	recs, err := PlayGames(context.Background(), 20, 4, game.DefaultKomi, factory, nil)
	require.NoError(t, err)
	require.Len(t, recs, 20)
	assert.Equal(t, int64(20), CVCCounter.Value())
	assert.Equal(t, int64(0), IsPlaying.Value())
	for _, rec := range recs {
		assert.NotEqual(t, EndIllegalMove, rec.Reason)
		assert.LessOrEqual(t, len(rec.Moves), game.MaxMoves)
		assert.Equal(t, game.Winner(rec.Final.Board, game.DefaultKomi), rec.Winner)
	}

	// Seeded players replay the same games regardless of scheduling.
	again, err := PlayGames(context.Background(), 20, 1, game.DefaultKomi, factory, nil)
	require.NoError(t, err)
	assert.Equal(t, recs, again)

	sum := Summarize(recs, game.DefaultKomi, 95)
	assert.Equal(t, 20, sum.Games)
	assert.Equal(t, 20, sum.BlackWins+sum.WhiteWins+sum.Ties)
	assert.Equal(t, 20, sum.Reasons[EndMoveLimit]+sum.Reasons[EndDoublePass])
	assert.GreaterOrEqual(t, sum.BlackWinPct.Rate, sum.BlackWinPct.Low)
	assert.LessOrEqual(t, sum.BlackWinPct.Rate, sum.BlackWinPct.High)
	assert.Contains(t, sum.String(), "games: 20")
}

func TestPlayGamesMinimaxVsRandom(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchDepth, 1)
	factory, err := NewPlayerFactory(cfg, bot.MinimaxPlayer, bot.RandomPlayer, 5)
	require.NoError(t, err)
	recs, err := PlayGames(context.Background(), 2, 2, game.DefaultKomi, factory, nil)
	require.NoError(t, err)
	for _, rec := range recs {
		assert.NotEqual(t, EndIllegalMove, rec.Reason)
	}
}

func TestPlayGamesCancelled(t *testing.T) {
	factory, err := NewPlayerFactory(config.DefaultConfig(), bot.RandomPlayer, bot.RandomPlayer, 0)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = PlayGames(ctx, 5, 2, game.DefaultKomi, factory, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnknownPlayer(t *testing.T) {
	_, err := NewPlayerFactory(config.DefaultConfig(), "human", bot.RandomPlayer, 0)
	assert.Error(t, err)
}
