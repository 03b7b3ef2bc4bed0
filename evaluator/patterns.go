package evaluator

import (
	"fmt"

	"github.com/domino14/go5/board"
)

type cellMatch uint8

const (
	matchAny cellMatch = iota
	matchOwn
	matchOpp
)

type compiledPattern struct {
	name  string
	cells []cellMatch
	bonus float64
}

func compilePattern(p Pattern) (compiledPattern, error) {
	if len(p.Shape) == 0 || len(p.Shape) > board.Size {
		return compiledPattern{}, fmt.Errorf("%w: pattern %q has length %d", ErrBadWeights, p.Name, len(p.Shape))
	}
	cp := compiledPattern{name: p.Name, bonus: p.Bonus, cells: make([]cellMatch, len(p.Shape))}
	for i := 0; i < len(p.Shape); i++ {
		switch p.Shape[i] {
		case '.':
			cp.cells[i] = matchAny
		case 'O':
			cp.cells[i] = matchOwn
		case 'X':
			cp.cells[i] = matchOpp
		default:
			return compiledPattern{}, fmt.Errorf("%w: pattern %q has bad cell %q", ErrBadWeights, p.Name, p.Shape[i])
		}
	}
	return cp, nil
}

// matchAt reports whether the pattern fits starting at (row, col) going in
// direction (dr, dc), with own as the evaluated color.
func (cp *compiledPattern) matchAt(b *board.Board, own board.Color, row, col, dr, dc int) bool {
	opp := own.Opponent()
	for i, m := range cp.cells {
		occ := b[(row+i*dr)*board.Size+col+i*dc]
		switch m {
		case matchOwn:
			if occ != own {
				return false
			}
		case matchOpp:
			if occ != opp {
				return false
			}
		}
	}
	return true
}

// count is the number of placements of the pattern along rows and columns.
func (cp *compiledPattern) count(b *board.Board, own board.Color) int {
	n := 0
	span := board.Size - len(cp.cells)
	for line := 0; line < board.Size; line++ {
		for off := 0; off <= span; off++ {
			if cp.matchAt(b, own, line, off, 0, 1) {
				n++
			}
			if cp.matchAt(b, own, off, line, 1, 0) {
				n++
			}
		}
	}
	return n
}
