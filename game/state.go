// Package game holds the position a decision is made from and the rules
// that move one position to the next: legality, capture, suicide, KO and
// stone-count scoring.
package game

import (
	"fmt"

	"github.com/domino14/go5/board"
)

// DefaultKomi is the compensation awarded to White, half the board side.
const DefaultKomi = float64(board.Size) / 2

// MaxMoves is the number of actions after which a game is over.
const MaxMoves = board.NumPoints - 1

// State is a position plus the board as it stood before the opponent's
// last action, which is all the history single-step KO needs.
type State struct {
	Board     board.Board
	Previous  board.Board
	ToMove    board.Color
	MoveCount int
}

func NewState(current, previous board.Board, toMove board.Color) State {
	return State{Board: current, Previous: previous, ToMove: toMove}
}

// NewGame is the empty starting position with Black to move.
func NewGame() State {
	return State{ToMove: board.Black}
}

func (s State) String() string {
	return fmt.Sprintf("%v to move (move %d)\n%v", s.ToMove, s.MoveCount, s.Board)
}

// Action is the outcome of a decision: either a placement or a pass.
type Action struct {
	Pass  bool
	Point board.Point
}

func PassAction() Action {
	return Action{Pass: true}
}

func PlaceAction(p board.Point) Action {
	return Action{Point: p}
}

// String renders the action in the "row,col" / "PASS" form the game
// driver exchanges.
func (a Action) String() string {
	if a.Pass {
		return "PASS"
	}
	return a.Point.String()
}
