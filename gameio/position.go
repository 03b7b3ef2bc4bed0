// Package gameio reads and writes the plain-text files a game driver uses
// to hand a position to a player and collect its action.
//
// A position file holds the side to move (1 or 2) on its first line,
// followed by the previous board and the current board as five rows of
// digits each. An action file holds either "PASS" or "row,col".
package gameio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/go5/board"
	"github.com/domino14/go5/game"
)

var (
	ErrBadPosition = errors.New("malformed position")
	ErrBadAction   = errors.New("malformed action")
)

type Position struct {
	ToMove   board.Color
	Previous board.Board
	Current  board.Board
}

// State is the position as the rules see it.
func (p Position) State() game.State {
	return game.NewState(p.Current, p.Previous, p.ToMove)
}

func PositionFromState(s game.State) Position {
	return Position{ToMove: s.ToMove, Previous: s.Previous, Current: s.Board}
}

func nonEmptyLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func ReadPosition(r io.Reader) (Position, error) {
	var pos Position
	lines, err := nonEmptyLines(r)
	if err != nil {
		return pos, err
	}
	if len(lines) != 1+2*board.Size {
		return pos, fmt.Errorf("%w: expected %d lines, got %d", ErrBadPosition, 1+2*board.Size, len(lines))
	}
	side, err := strconv.Atoi(lines[0])
	if err != nil || side < int(board.Black) || side > int(board.White) {
		return pos, fmt.Errorf("%w: bad side to move %q", ErrBadPosition, lines[0])
	}
	pos.ToMove = board.Color(side)
	if pos.Previous, err = board.FromRows(lines[1 : 1+board.Size]); err != nil {
		return pos, fmt.Errorf("%w: previous board: %w", ErrBadPosition, err)
	}
	if pos.Current, err = board.FromRows(lines[1+board.Size:]); err != nil {
		return pos, fmt.Errorf("%w: current board: %w", ErrBadPosition, err)
	}
	return pos, nil
}

func WritePosition(w io.Writer, p Position) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", int(p.ToMove))
	for _, row := range p.Previous.Rows() {
		fmt.Fprintln(bw, row)
	}
	for _, row := range p.Current.Rows() {
		fmt.Fprintln(bw, row)
	}
	return bw.Flush()
}

func ReadAction(r io.Reader) (game.Action, error) {
	lines, err := nonEmptyLines(r)
	if err != nil {
		return game.Action{}, err
	}
	if len(lines) != 1 {
		return game.Action{}, fmt.Errorf("%w: expected one line, got %d", ErrBadAction, len(lines))
	}
	return ParseAction(lines[0])
}

// ParseAction reads "PASS" or "row,col".
func ParseAction(s string) (game.Action, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "PASS") {
		return game.PassAction(), nil
	}
	rs, cs, found := strings.Cut(s, ",")
	if !found {
		return game.Action{}, fmt.Errorf("%w: %q", ErrBadAction, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return game.Action{}, fmt.Errorf("%w: %q", ErrBadAction, s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(cs))
	if err != nil {
		return game.Action{}, fmt.Errorf("%w: %q", ErrBadAction, s)
	}
	p := board.Point{Row: row, Col: col}
	if !p.InBounds() {
		return game.Action{}, fmt.Errorf("%w: %q is off the board", ErrBadAction, s)
	}
	return game.PlaceAction(p), nil
}

func WriteAction(w io.Writer, a game.Action) error {
	_, err := fmt.Fprintln(w, a.String())
	return err
}

func ReadPositionFile(path string) (Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return Position{}, err
	}
	defer f.Close()
	return ReadPosition(f)
}

func WritePositionFile(path string, p Position) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePosition(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadActionFile(path string) (game.Action, error) {
	f, err := os.Open(path)
	if err != nil {
		return game.Action{}, err
	}
	defer f.Close()
	return ReadAction(f)
}

func WriteActionFile(path string, a game.Action) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteAction(f, a); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
