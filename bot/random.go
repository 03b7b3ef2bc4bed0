package bot

import (
	"context"
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/domino14/go5/board"
	"github.com/domino14/go5/game"
)

// RandomBot plays a uniformly random legal placement, and passes when
// there is none.
type RandomBot struct {
	rng *frand.RNG
}

// NewRandomBot seeds the bot from system entropy.
func NewRandomBot() *RandomBot {
	return &RandomBot{rng: frand.New()}
}

// NewSeededRandomBot always produces the same sequence of choices for the
// same seed and positions.
func NewSeededRandomBot(seed uint64) *RandomBot {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &RandomBot{rng: frand.NewCustom(key[:], 1024, 12)}
}

func (b *RandomBot) Name() string {
	return RandomPlayer
}

func (b *RandomBot) Decide(ctx context.Context, s game.State, c board.Color) (game.Action, error) {
	if err := ctx.Err(); err != nil {
		return game.Action{}, err
	}
	moves := game.LegalMoves(s, c)
	if len(moves) == 0 {
		return game.PassAction(), nil
	}
	return game.PlaceAction(moves[b.rng.Intn(len(moves))]), nil
}
