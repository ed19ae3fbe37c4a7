package board

import (
	"fmt"
	"strings"

	"checkers/internal/core"
)

const DefaultSize = 8

// Board is a dumb square grid of cells, each holding at most one piece
// reference. It performs no legality checking; that is the rules
// package's job. A single logical owner (the game controller) mutates
// it, so there is no internal locking.
type Board struct {
	size  int
	cells [][]*core.Piece
}

// New creates an empty board of the given side length. Falls back to
// DefaultSize for non-positive sizes.
func New(size int) *Board {
	if size <= 0 {
		size = DefaultSize
	}
	cells := make([][]*core.Piece, size)
	for r := range cells {
		cells[r] = make([]*core.Piece, size)
	}
	return &Board{size: size, cells: cells}
}

func (b *Board) Size() int {
	return b.size
}

// Get returns the piece at (row, col), or nil if the cell is empty or
// out of range. Bounds-safe access is consistent across the API.
func (b *Board) Get(row, col int) *core.Piece {
	if !b.inRange(row, col) {
		return nil
	}
	return b.cells[row][col]
}

// Set overwrites the cell contents unconditionally. A nil piece clears
// the cell. Out-of-range coordinates are ignored.
func (b *Board) Set(row, col int, p *core.Piece) {
	if !b.inRange(row, col) {
		return
	}
	b.cells[row][col] = p
}

// CountOccupied returns the number of non-empty cells.
func (b *Board) CountOccupied() int {
	n := 0
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.cells[r][c] != nil {
				n++
			}
		}
	}
	return n
}

func (b *Board) inRange(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// Playable reports whether (row, col) is a dark/playable square.
func Playable(row, col int) bool {
	return (row+col)%2 == 1
}

// ToASCII creates an ASCII representation of the board. Light pieces
// render as o/O (regular/king), dark pieces as x/X.
func (b *Board) ToASCII() string {
	var sb strings.Builder

	sb.WriteString("  ")
	for c := 0; c < b.size; c++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+c))
	}
	sb.WriteString("\n")

	for r := 0; r < b.size; r++ {
		sb.WriteString(fmt.Sprintf("%2d", r+1))
		for c := 0; c < b.size; c++ {
			sb.WriteString(" ")
			sb.WriteString(Symbol(b.cells[r][c]))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}

	sb.WriteString("  ")
	for c := 0; c < b.size; c++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+c))
	}

	return sb.String()
}

// Symbol maps a cell occupant to its single-character display form.
func Symbol(p *core.Piece) string {
	switch {
	case p == nil:
		return "."
	case p.Color == core.ColorLight && p.IsKing():
		return "O"
	case p.Color == core.ColorLight:
		return "o"
	case p.IsKing():
		return "X"
	default:
		return "x"
	}
}
