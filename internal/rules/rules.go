// Package rules implements the checkers move rule engine: pure
// functions over a board and a piece, with no state of their own.
package rules

import (
	"checkers/internal/board"
	"checkers/internal/core"
)

// The four diagonal step directions. Orthogonal moves do not exist in
// checkers.
var diagonals = [4]core.Position{
	{Row: 1, Col: 1},
	{Row: 1, Col: -1},
	{Row: -1, Col: 1},
	{Row: -1, Col: -1},
}

// WithinBoundaries reports whether (row, col) lies on the board.
func WithinBoundaries(b *board.Board, row, col int) bool {
	return row >= 0 && row < b.Size() && col >= 0 && col < b.Size()
}

// CanMoveBackward reports whether the piece may move against its
// color's advance direction. Only kings may.
func CanMoveBackward(p *core.Piece) bool {
	return p.IsKing()
}

// Locate scans the board for the cell occupied by the piece, matching
// by piece identity. The scan, not a cached coordinate, is the single
// source of truth for where a piece stands.
func Locate(b *board.Board, p *core.Piece) (core.Position, bool) {
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			if b.Get(r, c).Equals(p) {
				return core.Position{Row: r, Col: c}, true
			}
		}
	}
	return core.Position{}, false
}

// forwardRow is +1 for Light (starts at row 0, advances down the
// stored grid) and -1 for Dark.
func forwardRow(c core.Color) int {
	if c == core.ColorLight {
		return 1
	}
	return -1
}

func allowedDirection(p *core.Piece, dir core.Position) bool {
	if CanMoveBackward(p) {
		return true
	}
	return dir.Row == forwardRow(p.Color)
}

// StandardMoves returns the empty diagonal destinations one step from
// the piece's position, honoring the backward restriction. The result
// has set semantics; callers must not assume any ordering. A piece not
// on the board yields no moves.
func StandardMoves(b *board.Board, p *core.Piece) []core.Position {
	from, ok := Locate(b, p)
	if !ok {
		return nil
	}
	var moves []core.Position
	for _, dir := range diagonals {
		if !allowedDirection(p, dir) {
			continue
		}
		row, col := from.Row+dir.Row, from.Col+dir.Col
		if WithinBoundaries(b, row, col) && b.Get(row, col) == nil {
			moves = append(moves, core.Position{Row: row, Col: col})
		}
	}
	return moves
}

// JumpMoves returns the legal landing cells two diagonal steps from
// the piece's position. A jump is legal iff the landing cell is on the
// board and empty and the intervening cell holds an enemy piece; an
// own piece or an empty adjacent cell blocks the jump.
func JumpMoves(b *board.Board, p *core.Piece) []core.Position {
	from, ok := Locate(b, p)
	if !ok {
		return nil
	}
	var moves []core.Position
	for _, dir := range diagonals {
		if !allowedDirection(p, dir) {
			continue
		}
		overRow, overCol := from.Row+dir.Row, from.Col+dir.Col
		landRow, landCol := from.Row+2*dir.Row, from.Col+2*dir.Col
		if !WithinBoundaries(b, landRow, landCol) || b.Get(landRow, landCol) != nil {
			continue
		}
		over := b.Get(overRow, overCol)
		if over != nil && over.Color != p.Color {
			moves = append(moves, core.Position{Row: landRow, Col: landCol})
		}
	}
	return moves
}

// PossibleMoves returns every destination the piece may legally move
// to. On the first move of a turn, jump moves crowd out standard moves
// whenever any jump exists (capture is forced when available). Mid
// chain, after at least one jump this turn, only further jumps are
// legal.
func PossibleMoves(b *board.Board, p *core.Piece, firstMoveOfTurn bool) []core.Position {
	jumps := JumpMoves(b, p)
	if !firstMoveOfTurn {
		return jumps
	}
	if len(jumps) > 0 {
		return jumps
	}
	return StandardMoves(b, p)
}

// IsJump classifies a move by displacement: jump destinations are
// always exactly 2 rows and 2 columns from the source.
func IsJump(from, to core.Position) bool {
	return abs(to.Row-from.Row) == 2 && abs(to.Col-from.Col) == 2
}

// Midpoint returns the cell jumped over. Meaningful only when IsJump
// holds for the pair.
func Midpoint(from, to core.Position) core.Position {
	return core.Position{
		Row: (from.Row + to.Row) / 2,
		Col: (from.Col + to.Col) / 2,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
