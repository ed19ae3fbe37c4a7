package game

import (
	"testing"

	"checkers/internal/board"
	"checkers/internal/core"
)

// newMatch builds a controller with the standard two-player setup on
// the default board: pieces generated, collections assigned, everything
// placed. The game is not started.
func newMatch(t *testing.T) (*Controller, *core.Player, *core.Player) {
	t.Helper()

	g := New()
	light := core.NewPlayer(1, "Light")
	dark := core.NewPlayer(2, "Dark")
	if !g.AddPlayer(light) || !g.AddPlayer(dark) {
		t.Fatal("AddPlayer failed during setup")
	}

	n := g.MaxPlayerPieces()
	if !g.SetPlayerPieces(light, g.GeneratePieces(core.ColorLight, n)) {
		t.Fatal("SetPlayerPieces(light) failed")
	}
	if !g.SetPlayerPieces(dark, g.GeneratePieces(core.ColorDark, n)) {
		t.Fatal("SetPlayerPieces(dark) failed")
	}
	if !g.PlaceAllPieces() {
		t.Fatal("PlaceAllPieces failed")
	}
	return g, light, dark
}

func TestMaxPlayerPieces(t *testing.T) {
	tests := []struct {
		size, want int
	}{
		{8, 12},
		{10, 20},
		{12, 30},
	}

	for _, tt := range tests {
		g := New()
		if !g.SetBoard(board.New(tt.size)) {
			t.Fatalf("SetBoard(%d) failed", tt.size)
		}
		if got := g.MaxPlayerPieces(); got != tt.want {
			t.Errorf("MaxPlayerPieces on size %d = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestAddPlayer(t *testing.T) {
	g := New()

	if g.AddPlayer(nil) {
		t.Error("nil player should be rejected")
	}
	if !g.AddPlayer(core.NewPlayer(1, "A")) {
		t.Error("first player should be accepted")
	}
	if g.AddPlayer(core.NewPlayer(1, "Dup")) {
		t.Error("duplicate ID should be rejected")
	}
	if !g.AddPlayer(core.NewPlayer(2, "B")) {
		t.Error("second player should be accepted")
	}
	if g.AddPlayer(core.NewPlayer(3, "C")) {
		t.Error("third player should be rejected")
	}
	if got := len(g.Players()); got != 2 {
		t.Errorf("len(Players) = %d, want 2", got)
	}
}

func TestSetBoardOnlyBeforeReady(t *testing.T) {
	g, _, _ := newMatch(t)
	if !g.SetBoard(board.New(10)) {
		t.Error("SetBoard should succeed before the game is ready")
	}
	// Board swap reset piece placement; re-place for a clean start
	if !g.PlaceAllPieces() {
		t.Fatal("PlaceAllPieces failed after board swap")
	}
	if !g.Start() {
		t.Fatal("Start failed")
	}
	if g.SetBoard(board.New(8)) {
		t.Error("SetBoard should be rejected once the game is ready")
	}
}

func TestGeneratePieces(t *testing.T) {
	g := New()
	pieces := g.GeneratePieces(core.ColorDark, 12)
	if len(pieces) != 12 {
		t.Fatalf("len = %d, want 12", len(pieces))
	}
	for i, p := range pieces {
		if p.ID != i+1 {
			t.Errorf("piece %d has ID %d, want %d", i, p.ID, i+1)
		}
		if p.Color != core.ColorDark {
			t.Errorf("piece %d has color %v, want dark", i, p.Color)
		}
		if p.IsKing() {
			t.Errorf("piece %d generated as king", i)
		}
	}
}

func TestPlacement(t *testing.T) {
	g, light, dark := newMatch(t)

	if got := g.CountPiecesOnBoard(); got != 24 {
		t.Errorf("CountPiecesOnBoard = %d, want 24", got)
	}

	// Every piece in both collections stands somewhere on the board
	for _, p := range append(g.PlayerPieces(light), g.PlayerPieces(dark)...) {
		if _, ok := g.Position(p); !ok {
			t.Errorf("piece %v has no board position after placement", p)
		}
	}

	// Fill order: light starts at its edge, dark at the opposite edge
	l1, _ := g.Piece(light, 1)
	if pos, _ := g.Position(l1); pos != (core.Position{Row: 0, Col: 1}) {
		t.Errorf("light piece 1 at %v, want {0 1}", pos)
	}
	d1, _ := g.Piece(dark, 1)
	if pos, _ := g.Position(d1); pos != (core.Position{Row: 7, Col: 0}) {
		t.Errorf("dark piece 1 at %v, want {7 0}", pos)
	}

	// Only playable squares hold pieces
	b := g.Board()
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			if b.Get(r, c) != nil && !board.Playable(r, c) {
				t.Errorf("piece placed on non-playable square (%d, %d)", r, c)
			}
		}
	}
}

func TestStart(t *testing.T) {
	g := New()
	if g.Start() {
		t.Error("Start with no players should fail")
	}
	g.AddPlayer(core.NewPlayer(1, "Solo"))
	if g.Start() {
		t.Error("Start with one player should fail")
	}

	g, light, _ := newMatch(t)
	if !g.Start() {
		t.Fatal("Start failed with a full setup")
	}
	if g.Status() != core.StatusReady {
		t.Errorf("Status = %v, want Ready", g.Status())
	}
	if cur := g.CurrentPlayer(); cur == nil || !cur.Equals(light) {
		t.Errorf("CurrentPlayer = %v, want the first registered player", cur)
	}
	if g.Start() {
		t.Error("second Start should fail")
	}
}

func TestMovePiece(t *testing.T) {
	g, light, _ := newMatch(t)
	l9, _ := g.Piece(light, 9) // front row, at (2,1)

	if g.MovePiece(l9, core.Position{Row: 3, Col: 0}, true) {
		t.Error("move before Start should be rejected")
	}
	g.Start()

	if g.MovePiece(l9, core.Position{Row: 4, Col: 4}, true) {
		t.Error("illegal destination should be rejected")
	}
	if pos, _ := g.Position(l9); pos != (core.Position{Row: 2, Col: 1}) {
		t.Errorf("piece moved after a rejected MovePiece: %v", pos)
	}

	if !g.MovePiece(l9, core.Position{Row: 3, Col: 0}, true) {
		t.Fatal("legal move rejected")
	}
	if pos, _ := g.Position(l9); pos != (core.Position{Row: 3, Col: 0}) {
		t.Errorf("position after move = %v, want {3 0}", pos)
	}
	if got := g.Board().Get(2, 1); got != nil {
		t.Errorf("vacated cell still holds %v", got)
	}
	if g.Status() != core.StatusOnGoing {
		t.Errorf("Status after first move = %v, want OnGoing", g.Status())
	}
	if got := g.CountPiecesOnBoard(); got != 24 {
		t.Errorf("piece count changed on a standard move: %d", got)
	}
}

func TestCapture(t *testing.T) {
	g := New()
	light := core.NewPlayer(1, "L")
	dark := core.NewPlayer(2, "D")
	g.AddPlayer(light)
	g.AddPlayer(dark)

	lp := core.NewPiece(1, core.ColorLight)
	dp := core.NewPiece(1, core.ColorDark)
	g.SetPlayerPieces(light, []*core.Piece{lp})
	g.SetPlayerPieces(dark, []*core.Piece{dp})
	g.Board().Set(2, 1, lp)
	g.Board().Set(3, 2, dp)
	g.Start()

	var kinds []core.EventKind
	g.Subscribe(func(ev core.Event) {
		kinds = append(kinds, ev.Kind)
	})

	if !g.MovePiece(lp, core.Position{Row: 4, Col: 3}, true) {
		t.Fatal("jump rejected")
	}

	if got := g.Board().Get(3, 2); got != nil {
		t.Errorf("jumped cell still holds %v", got)
	}
	if got := len(g.PlayerPieces(dark)); got != 0 {
		t.Errorf("dark collection has %d pieces after capture, want 0", got)
	}
	if got := g.CountPiecesOnBoard(); got != 1 {
		t.Errorf("CountPiecesOnBoard = %d, want 1", got)
	}

	// Capture notification precedes the move notification
	var capturedAt, movedAt = -1, -1
	for i, k := range kinds {
		switch k {
		case core.EventPieceCaptured:
			capturedAt = i
		case core.EventPieceMoved:
			movedAt = i
		}
	}
	if capturedAt == -1 || movedAt == -1 || capturedAt > movedAt {
		t.Errorf("event order = %v, want capture before move", kinds)
	}

	if !g.GameOver() {
		t.Error("game should be over with an empty collection")
	}
	winner, ok := g.Winner()
	if !ok || !winner.Equals(light) {
		t.Errorf("Winner = %v, %v; want the light player", winner, ok)
	}
}

func TestPromotePiece(t *testing.T) {
	g := New()
	light := core.NewPlayer(1, "L")
	dark := core.NewPlayer(2, "D")
	g.AddPlayer(light)
	g.AddPlayer(dark)

	lp := core.NewPiece(1, core.ColorLight)
	dp := core.NewPiece(1, core.ColorDark)
	g.SetPlayerPieces(light, []*core.Piece{lp})
	g.SetPlayerPieces(dark, []*core.Piece{dp})
	g.Board().Set(7, 2, lp) // light's far row
	g.Board().Set(4, 3, dp) // not dark's far row

	if !g.PromotePiece(lp) {
		t.Error("promotion on the far row should succeed")
	}
	if !lp.IsKing() {
		t.Error("piece not a king after promotion")
	}
	if g.PromotePiece(lp) {
		t.Error("re-promoting a king should be rejected")
	}

	if g.PromotePiece(dp) {
		t.Error("promotion away from the far row should be rejected")
	}
	g.Board().Set(4, 3, nil)
	g.Board().Set(0, 3, dp)
	if !g.PromotePiece(dp) {
		t.Error("dark promotion on row 0 should succeed")
	}
}

func TestNextTurn(t *testing.T) {
	g, light, dark := newMatch(t)
	if g.NextTurn() {
		t.Error("NextTurn before Start should fail")
	}
	g.Start()

	if !g.NextTurn() {
		t.Fatal("NextTurn failed")
	}
	if !g.CurrentPlayer().Equals(dark) {
		t.Errorf("CurrentPlayer = %v, want dark", g.CurrentPlayer())
	}
	g.NextTurn()
	if !g.CurrentPlayer().Equals(light) {
		t.Errorf("CurrentPlayer = %v, want light back again", g.CurrentPlayer())
	}
}

func TestResign(t *testing.T) {
	g, light, dark := newMatch(t)
	if g.Resign(dark) {
		t.Error("resign before the game is ready should fail")
	}
	g.Start()

	if !g.Resign(dark) {
		t.Fatal("resign failed mid-game")
	}
	if !g.GameOver() {
		t.Error("game should be over after a resignation")
	}
	winner, ok := g.Winner()
	if !ok || !winner.Equals(light) {
		t.Errorf("Winner = %v, %v; want light", winner, ok)
	}
	if g.Resign(light) {
		t.Error("resign after game over should fail")
	}
}

func TestDrawHasNoWinner(t *testing.T) {
	g, light, dark := newMatch(t)
	g.Start()

	if !g.Resign(light) || !g.Resign(dark) {
		t.Fatal("double resignation failed")
	}
	if !g.GameOver() {
		t.Fatal("game should be over")
	}
	if winner, ok := g.Winner(); ok {
		t.Errorf("Winner = %v, want none on a draw", winner)
	}
}

func TestWinnerBeforeGameOver(t *testing.T) {
	g, _, _ := newMatch(t)
	g.Start()
	if winner, ok := g.Winner(); ok {
		t.Errorf("Winner = %v before the game is over, want none", winner)
	}
}

func TestRemoveAllPlayers(t *testing.T) {
	g, _, _ := newMatch(t)
	g.Start()
	g.RemoveAllPlayers()

	if g.Status() != core.StatusNotReady {
		t.Errorf("Status = %v, want NotReady", g.Status())
	}
	if len(g.Players()) != 0 {
		t.Errorf("Players = %v, want none", g.Players())
	}
	if g.CurrentPlayer() != nil {
		t.Errorf("CurrentPlayer = %v, want nil", g.CurrentPlayer())
	}
	if got := g.CountPiecesOnBoard(); got != 0 {
		t.Errorf("CountPiecesOnBoard = %d, want 0", got)
	}

	// The controller is reusable after a reset
	if !g.AddPlayer(core.NewPlayer(1, "Again")) {
		t.Error("AddPlayer should succeed after a reset")
	}
}

// TestDoubleJump plays a full match opening, then steers the position
// into a forced two-capture chain ending on the promotion row.
func TestDoubleJump(t *testing.T) {
	g, light, dark := newMatch(t)
	g.Start()

	l9, _ := g.Piece(light, 9)
	if !g.MovePiece(l9, core.Position{Row: 3, Col: 0}, true) {
		t.Fatal("opening move rejected")
	}
	if g.Status() != core.StatusOnGoing {
		t.Fatalf("Status = %v, want OnGoing", g.Status())
	}
	g.NextTurn()

	// Steer the position: dark 10 advanced to d5 with light 10 under
	// its nose, and light 2's home square vacated as a second landing.
	b := g.Board()
	d10, _ := g.Piece(dark, 10)
	l10, _ := g.Piece(light, 10)
	l2, _ := g.Piece(light, 2)
	b.Set(5, 2, nil)
	b.Set(4, 3, d10)
	b.Set(2, 3, nil)
	b.Set(3, 2, l10)
	b.Set(0, 3, nil)
	b.Set(3, 6, l2)

	// Capture is forced: the jump crowds out the open standard move
	moves := g.PossibleMoves(d10, true)
	if len(moves) != 1 || moves[0] != (core.Position{Row: 2, Col: 1}) {
		t.Fatalf("forced-capture moves = %v, want exactly {2 1}", moves)
	}

	if !g.MovePiece(d10, core.Position{Row: 2, Col: 1}, true) {
		t.Fatal("first jump rejected")
	}
	if got := len(g.PlayerPieces(light)); got != 11 {
		t.Errorf("light collection = %d after first capture, want 11", got)
	}

	// Mid-chain only further jumps are offered
	chain := g.PossibleMoves(d10, false)
	if len(chain) != 1 || chain[0] != (core.Position{Row: 0, Col: 3}) {
		t.Fatalf("chain moves = %v, want exactly {0 3}", chain)
	}

	if !g.MovePiece(d10, core.Position{Row: 0, Col: 3}, false) {
		t.Fatal("second jump rejected")
	}
	if got := len(g.PlayerPieces(light)); got != 10 {
		t.Errorf("light collection = %d after the chain, want 10", got)
	}
	if got := g.CountPiecesOnBoard(); got != 22 {
		t.Errorf("CountPiecesOnBoard = %d, want 22", got)
	}

	// The chain ended on dark's far row
	if !g.PromotePiece(d10) {
		t.Error("promotion after landing on the far row should succeed")
	}
	if !d10.IsKing() {
		t.Error("piece not a king after the chain promotion")
	}
	if g.GameOver() {
		t.Error("game should continue with both collections populated")
	}
}
