package rules

import (
	"sort"
	"testing"

	"checkers/internal/board"
	"checkers/internal/core"

	"github.com/google/go-cmp/cmp"
)

func sortPositions(ps []core.Position) []core.Position {
	sorted := append([]core.Position(nil), ps...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})
	return sorted
}

func assertPositions(t *testing.T, got, want []core.Position) {
	t.Helper()
	if diff := cmp.Diff(sortPositions(want), sortPositions(got)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestWithinBoundaries(t *testing.T) {
	b := board.New(8)

	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{"origin", 0, 0, true},
		{"far corner", 7, 7, true},
		{"negative row", -1, 3, false},
		{"negative col", 3, -1, false},
		{"row past edge", 8, 0, false},
		{"col past edge", 0, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinBoundaries(b, tt.row, tt.col); got != tt.want {
				t.Errorf("WithinBoundaries(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestCanMoveBackward(t *testing.T) {
	regular := core.NewPiece(1, core.ColorLight)
	if CanMoveBackward(regular) {
		t.Error("regular piece should not move backward")
	}

	king := core.NewPiece(2, core.ColorDark)
	king.Promote()
	if !CanMoveBackward(king) {
		t.Error("king should move backward")
	}
}

func TestLocate(t *testing.T) {
	b := board.New(8)
	p := core.NewPiece(1, core.ColorLight)
	b.Set(2, 1, p)

	pos, ok := Locate(b, p)
	if !ok {
		t.Fatal("expected to find the piece")
	}
	if pos != (core.Position{Row: 2, Col: 1}) {
		t.Errorf("Locate = %v, want {2 1}", pos)
	}

	// Same identity, different instance
	clone := core.NewPiece(1, core.ColorLight)
	if _, ok := Locate(b, clone); !ok {
		t.Error("expected to find piece by identity equality")
	}

	absent := core.NewPiece(2, core.ColorLight)
	if _, ok := Locate(b, absent); ok {
		t.Error("did not expect to find an absent piece")
	}
}

func TestStandardMovesRegular(t *testing.T) {
	b := board.New(8)
	light := core.NewPiece(1, core.ColorLight)
	b.Set(2, 1, light)

	assertPositions(t, StandardMoves(b, light), []core.Position{
		{Row: 3, Col: 0},
		{Row: 3, Col: 2},
	})

	dark := core.NewPiece(1, core.ColorDark)
	b.Set(5, 2, dark)

	assertPositions(t, StandardMoves(b, dark), []core.Position{
		{Row: 4, Col: 1},
		{Row: 4, Col: 3},
	})
}

func TestStandardMovesKing(t *testing.T) {
	b := board.New(8)
	king := core.NewPiece(1, core.ColorLight)
	king.Promote()
	b.Set(4, 3, king)

	assertPositions(t, StandardMoves(b, king), []core.Position{
		{Row: 3, Col: 2},
		{Row: 3, Col: 4},
		{Row: 5, Col: 2},
		{Row: 5, Col: 4},
	})
}

func TestStandardMovesBlockedAndEdge(t *testing.T) {
	b := board.New(8)
	light := core.NewPiece(1, core.ColorLight)
	b.Set(2, 1, light)
	b.Set(3, 0, core.NewPiece(2, core.ColorLight))

	assertPositions(t, StandardMoves(b, light), []core.Position{
		{Row: 3, Col: 2},
	})

	// Piece on the left edge has a single forward diagonal
	edgeBoard := board.New(8)
	edge := core.NewPiece(3, core.ColorLight)
	edgeBoard.Set(1, 0, edge)
	assertPositions(t, StandardMoves(edgeBoard, edge), []core.Position{
		{Row: 2, Col: 1},
	})
}

func TestJumpMoves(t *testing.T) {
	light := core.NewPiece(1, core.ColorLight)
	enemy := core.NewPiece(1, core.ColorDark)
	friend := core.NewPiece(2, core.ColorLight)

	t.Run("enemy adjacent with empty landing", func(t *testing.T) {
		b := board.New(8)
		b.Set(2, 1, light)
		b.Set(3, 2, enemy)
		assertPositions(t, JumpMoves(b, light), []core.Position{{Row: 4, Col: 3}})
	})

	t.Run("own piece blocks", func(t *testing.T) {
		b := board.New(8)
		b.Set(2, 1, light)
		b.Set(3, 2, friend)
		assertPositions(t, JumpMoves(b, light), nil)
	})

	t.Run("empty adjacent cell is not a jump", func(t *testing.T) {
		b := board.New(8)
		b.Set(2, 1, light)
		assertPositions(t, JumpMoves(b, light), nil)
	})

	t.Run("occupied landing blocks", func(t *testing.T) {
		b := board.New(8)
		b.Set(2, 1, light)
		b.Set(3, 2, enemy)
		b.Set(4, 3, friend)
		assertPositions(t, JumpMoves(b, light), nil)
	})

	t.Run("landing off the board blocks", func(t *testing.T) {
		b := board.New(8)
		b.Set(6, 5, light)
		b.Set(7, 6, enemy)
		assertPositions(t, JumpMoves(b, light), nil)
	})

	t.Run("regular piece cannot jump backward", func(t *testing.T) {
		b := board.New(8)
		b.Set(4, 3, light)
		b.Set(3, 2, enemy)
		assertPositions(t, JumpMoves(b, light), nil)
	})

	t.Run("king jumps backward", func(t *testing.T) {
		b := board.New(8)
		king := core.NewPiece(3, core.ColorLight)
		king.Promote()
		b.Set(4, 3, king)
		b.Set(3, 2, enemy)
		assertPositions(t, JumpMoves(b, king), []core.Position{{Row: 2, Col: 1}})
	})
}

func TestPossibleMovesForcedCapture(t *testing.T) {
	b := board.New(8)
	light := core.NewPiece(1, core.ColorLight)
	enemy := core.NewPiece(1, core.ColorDark)
	b.Set(2, 1, light)
	b.Set(3, 2, enemy)

	// A standard move to (3,0) exists, but the jump crowds it out
	got := PossibleMoves(b, light, true)
	assertPositions(t, got, []core.Position{{Row: 4, Col: 3}})
}

func TestPossibleMovesStandardWhenNoJump(t *testing.T) {
	b := board.New(8)
	light := core.NewPiece(1, core.ColorLight)
	b.Set(2, 1, light)

	got := PossibleMoves(b, light, true)
	assertPositions(t, got, []core.Position{
		{Row: 3, Col: 0},
		{Row: 3, Col: 2},
	})
}

func TestPossibleMovesMidChainJumpOnly(t *testing.T) {
	b := board.New(8)
	light := core.NewPiece(1, core.ColorLight)
	b.Set(2, 1, light)

	// Standard moves exist but mid-chain only jumps count
	if got := PossibleMoves(b, light, false); len(got) != 0 {
		t.Errorf("expected no moves mid-chain without a jump, got %v", got)
	}

	// Every mid-chain destination is exactly two diagonal steps away
	b.Set(3, 2, core.NewPiece(1, core.ColorDark))
	from, _ := Locate(b, light)
	for _, to := range PossibleMoves(b, light, false) {
		if !IsJump(from, to) {
			t.Errorf("mid-chain destination %v is not a jump from %v", to, from)
		}
	}
}

func TestPossibleMovesNoMovesAtAll(t *testing.T) {
	b := board.New(8)
	light := core.NewPiece(1, core.ColorLight)
	b.Set(2, 1, light)
	// Both forward diagonals held by own pieces
	b.Set(3, 0, core.NewPiece(2, core.ColorLight))
	b.Set(3, 2, core.NewPiece(3, core.ColorLight))

	if got := PossibleMoves(b, light, true); len(got) != 0 {
		t.Errorf("expected an empty set, got %v", got)
	}
}

func TestPossibleMovesPieceNotOnBoard(t *testing.T) {
	b := board.New(8)
	ghost := core.NewPiece(9, core.ColorDark)
	if got := PossibleMoves(b, ghost, true); len(got) != 0 {
		t.Errorf("expected no moves for an off-board piece, got %v", got)
	}
}

func TestIsJumpAndMidpoint(t *testing.T) {
	from := core.Position{Row: 2, Col: 1}

	if !IsJump(from, core.Position{Row: 4, Col: 3}) {
		t.Error("two-step diagonal should classify as a jump")
	}
	if IsJump(from, core.Position{Row: 3, Col: 2}) {
		t.Error("one-step diagonal should not classify as a jump")
	}
	if IsJump(from, core.Position{Row: 4, Col: 1}) {
		t.Error("two rows without two cols should not classify as a jump")
	}

	mid := Midpoint(from, core.Position{Row: 4, Col: 3})
	if mid != (core.Position{Row: 3, Col: 2}) {
		t.Errorf("Midpoint = %v, want {3 2}", mid)
	}
}
