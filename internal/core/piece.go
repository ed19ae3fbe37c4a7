package core

import "fmt"

// Piece is a checkers piece. Identity is the (ID, Color) pair; IDs are
// unique within a color. Rank is the only mutable field. A Piece holds
// no back-reference to its board cell or owner: position is resolved by
// scanning the board, ownership by scanning player collections.
type Piece struct {
	ID    int
	Color Color
	rank  Rank
}

func NewPiece(id int, color Color) *Piece {
	return &Piece{ID: id, Color: color, rank: RankRegular}
}

func (p *Piece) Rank() Rank {
	return p.rank
}

func (p *Piece) IsKing() bool {
	return p.rank == RankKing
}

// Promote raises the piece to King. Idempotent once promoted.
func (p *Piece) Promote() {
	p.rank = RankKing
}

// Equals reports identity equality, (ID, Color).
func (p *Piece) Equals(other *Piece) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID && p.Color == other.Color
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s%d", p.Color, p.ID)
}
