// Package automatic referees whole games between two players so bots
// can be played against each other many times over.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/domino14/go5/board"
	"github.com/domino14/go5/bot"
	"github.com/domino14/go5/game"
)

type EndReason int

const (
	EndMoveLimit EndReason = iota
	EndDoublePass
	EndIllegalMove
)

func (r EndReason) String() string {
	switch r {
	case EndMoveLimit:
		return "move-limit"
	case EndDoublePass:
		return "double-pass"
	case EndIllegalMove:
		return "illegal-move"
	}
	return fmt.Sprintf("EndReason(%d)", int(r))
}

// GameRecord is everything a finished game leaves behind.
type GameRecord struct {
	Winner     board.Color
	BlackScore int
	WhiteScore int
	Moves      []game.Action
	Final      game.State
	Reason     EndReason
}

// Margin is Black's stones minus White's stones and komi.
func (r GameRecord) Margin(komi float64) float64 {
	return float64(r.BlackScore-r.WhiteScore) - komi
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	players  [2]bot.Player
	komi     float64
	maxMoves int
	gameID   int
	logchan  chan string
}

// NewGameRunner seats black and white at a fresh runner using the
// standard komi and move limit.
func NewGameRunner(logchan chan string, black, white bot.Player) *GameRunner {
	return &GameRunner{
		players:  [2]bot.Player{black, white},
		komi:     game.DefaultKomi,
		maxMoves: game.MaxMoves,
		logchan:  logchan,
	}
}

func (r *GameRunner) SetKomi(k float64) {
	r.komi = k
}

func (r *GameRunner) SetMaxMoves(n int) {
	r.maxMoves = n
}

// SetGameID tags the lines sent to the log channel.
func (r *GameRunner) SetGameID(id int) {
	r.gameID = id
}

func (r *GameRunner) playerFor(c board.Color) bot.Player {
	return r.players[c-1]
}

// PlayGame plays one game from the empty board.
func (r *GameRunner) PlayGame(ctx context.Context) (GameRecord, error) {
	return r.PlayFrom(ctx, game.NewGame())
}

// PlayFrom plays s out to the end. The game ends once the move limit is
// reached, when a player passes right after the opponent passed, or when
// a player attempts an illegal placement, which forfeits the game.
func (r *GameRunner) PlayFrom(ctx context.Context, s game.State) (GameRecord, error) {
	logger := zerolog.Ctx(ctx)
	rec := GameRecord{}
	for {
		if s.MoveCount >= r.maxMoves {
			rec.Reason = EndMoveLimit
			break
		}
		c := s.ToMove
		a, err := r.playerFor(c).Decide(ctx, s, c)
		if err != nil {
			return rec, fmt.Errorf("move %d (%v): %w", s.MoveCount, c, err)
		}
		rec.Moves = append(rec.Moves, a)
		r.logMove(s, c, a)

		if a.Pass {
			opponentPassed := s.Board.Equals(&s.Previous)
			s = game.Pass(s)
			if opponentPassed {
				rec.Reason = EndDoublePass
				break
			}
			continue
		}
		if !game.IsLegal(s, a.Point, c) {
			logger.Debug().Str("color", c.String()).Str("action", a.String()).Msg("illegal-move")
			rec.Reason = EndIllegalMove
			rec.Winner = c.Opponent()
			rec.Final = s
			rec.BlackScore = game.Score(s.Board, board.Black)
			rec.WhiteScore = game.Score(s.Board, board.White)
			return rec, nil
		}
		s, _ = game.Apply(s, a.Point, c)
	}
	rec.Final = s
	rec.BlackScore = game.Score(s.Board, board.Black)
	rec.WhiteScore = game.Score(s.Board, board.White)
	rec.Winner = game.Winner(s.Board, r.komi)
	logger.Debug().Int("black", rec.BlackScore).Int("white", rec.WhiteScore).
		Str("winner", rec.Winner.String()).Str("reason", rec.Reason.String()).
		Msg("game-over")
	return rec, nil
}

func (r *GameRunner) logMove(s game.State, c board.Color, a game.Action) {
	if r.logchan == nil {
		return
	}
	r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%q,%v\n",
		r.gameID,
		s.MoveCount,
		r.playerFor(c).Name(),
		c,
		a,
		s.Board.Count(board.Black)-s.Board.Count(board.White))
}
