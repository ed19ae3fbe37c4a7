package core

import "fmt"

// Position is a zero-indexed (row, column) pair with row 0 at the top
// of the grid as stored. It is a comparable value type; equality is
// by both coordinates.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}
