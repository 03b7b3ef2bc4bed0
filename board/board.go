// Package board contains the 5x5 stone board, its colors and coordinates,
// and the chain/liberty bookkeeping the rules and the evaluator are built on.
package board

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the side length of the board.
	Size = 5
	// NumPoints is the number of intersections on the board.
	NumPoints = Size * Size
)

var ErrBadRow = errors.New("bad board row")

// Color is the occupant of a point. Black is the first mover.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other player's color. It panics on Empty, since
// an empty point has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	panic(fmt.Sprintf("no opponent for color %d", c))
}

func (c Color) Valid() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Empty:
		return "empty"
	case Black:
		return "black"
	case White:
		return "white"
	}
	return fmt.Sprintf("color(%d)", c)
}

// Point is a (row, column) coordinate. Rows count down from the top.
type Point struct {
	Row int
	Col int
}

func (p Point) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Index is the row-major offset of p into a Board.
func (p Point) Index() int {
	return p.Row*Size + p.Col
}

func PointFromIndex(idx int) Point {
	return Point{Row: idx / Size, Col: idx % Size}
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Neighbors returns the in-board orthogonal neighbors of p.
func (p Point) Neighbors() []Point {
	nbs := neighborIdx[p.Index()]
	pts := make([]Point, len(nbs))
	for i, n := range nbs {
		pts[i] = PointFromIndex(n)
	}
	return pts
}

// neighborIdx holds the precomputed orthogonal neighbors of every point.
var neighborIdx [NumPoints][]int

func init() {
	for idx := 0; idx < NumPoints; idx++ {
		p := PointFromIndex(idx)
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			n := Point{Row: p.Row + d[0], Col: p.Col + d[1]}
			if n.InBounds() {
				neighborIdx[idx] = append(neighborIdx[idx], n.Index())
			}
		}
	}
}

// Board is a value type; assigning a Board copies every point.
type Board [NumPoints]Color

func (b *Board) At(p Point) Color {
	return b[p.Index()]
}

func (b *Board) Set(p Point, c Color) {
	b[p.Index()] = c
}

func (b *Board) Equals(other *Board) bool {
	return *b == *other
}

func (b *Board) Count(c Color) int {
	n := 0
	for _, occ := range b {
		if occ == c {
			n++
		}
	}
	return n
}

func (b *Board) IsEmpty() bool {
	return b.Count(Empty) == NumPoints
}

// Rows returns the board as Size strings of digits 0, 1 and 2.
func (b *Board) Rows() []string {
	rows := make([]string, Size)
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		sb.Reset()
		for c := 0; c < Size; c++ {
			sb.WriteByte('0' + byte(b[r*Size+c]))
		}
		rows[r] = sb.String()
	}
	return rows
}

// FromRows parses Size rows of Size cells each. A cell is one of
// 0, 1 or 2, or one of the display glyphs '.', 'X' and 'O'.
func FromRows(rows []string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrBadRow, Size, len(rows))
	}
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != Size {
			return b, fmt.Errorf("%w: row %d has length %d", ErrBadRow, r, len(row))
		}
		for c := 0; c < Size; c++ {
			switch row[c] {
			case '0', '.':
				b[r*Size+c] = Empty
			case '1', 'X':
				b[r*Size+c] = Black
			case '2', 'O':
				b[r*Size+c] = White
			default:
				return b, fmt.Errorf("%w: row %d has unexpected cell %q", ErrBadRow, r, row[c])
			}
		}
	}
	return b, nil
}

// String renders the board for display: X for black, O for white.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for c := 0; c < Size; c++ {
		fmt.Fprintf(&sb, "%d ", c)
	}
	sb.WriteString("\n")
	for r := 0; r < Size; r++ {
		fmt.Fprintf(&sb, "%d  ", r)
		for c := 0; c < Size; c++ {
			switch b[r*Size+c] {
			case Black:
				sb.WriteString("X ")
			case White:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
