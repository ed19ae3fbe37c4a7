// Package game implements the checkers controller: board ownership,
// player piece collections, turn and status management, and the full
// game API. All mutating operations return a bool and leave state
// untouched on failure; there is no internal locking because a single
// logical owner drives the controller.
package game

import (
	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/rules"
)

// Observer receives controller notifications synchronously, before the
// triggering call returns. A handler that blocks therefore blocks the
// controller.
type Observer func(core.Event)

type Controller struct {
	board     *board.Board
	players   []*core.Player // registration order
	pieces    map[int][]*core.Piece
	current   *core.Player
	status    core.GameStatus
	observers []Observer
}

func New() *Controller {
	return &Controller{
		board:  board.New(board.DefaultSize),
		pieces: make(map[int][]*core.Piece),
		status: core.StatusNotReady,
	}
}

// Subscribe registers an observer for all controller notifications.
func (g *Controller) Subscribe(fn Observer) {
	g.observers = append(g.observers, fn)
}

func (g *Controller) emit(ev core.Event) {
	for _, fn := range g.observers {
		fn(ev)
	}
}

func (g *Controller) setStatus(s core.GameStatus) {
	if g.status == s {
		return
	}
	g.status = s
	g.emit(core.Event{Kind: core.EventStatusChanged, Status: s})
}

func (g *Controller) Board() *board.Board {
	return g.board
}

func (g *Controller) Status() core.GameStatus {
	return g.status
}

// CurrentPlayer returns the player whose turn it is, nil before the
// game starts.
func (g *Controller) CurrentPlayer() *core.Player {
	return g.current
}

func (g *Controller) Players() []*core.Player {
	return g.players
}

// AddPlayer registers a player. Duplicate IDs are rejected with no
// side effect; at most two players may be registered.
func (g *Controller) AddPlayer(p *core.Player) bool {
	if p == nil || len(g.players) >= 2 {
		return false
	}
	for _, existing := range g.players {
		if existing.ID == p.ID {
			return false
		}
	}
	g.players = append(g.players, p)
	g.pieces[p.ID] = nil
	g.emit(core.Event{Kind: core.EventPlayerAdded, Player: p})
	return true
}

// SetBoard replaces the board. Allowed only before the game is ready,
// to prevent a board swap mid-game.
func (g *Controller) SetBoard(b *board.Board) bool {
	if b == nil || g.status != core.StatusNotReady {
		return false
	}
	g.board = b
	return true
}

// GeneratePieces is a pure factory: quantity pieces of the given
// color with sequential IDs 1..quantity, all regular rank. It has no
// side effect on controller state.
func (g *Controller) GeneratePieces(color core.Color, quantity int) []*core.Piece {
	pieces := make([]*core.Piece, 0, quantity)
	for id := 1; id <= quantity; id++ {
		pieces = append(pieces, core.NewPiece(id, color))
	}
	return pieces
}

// SetPlayerPieces replaces a registered player's piece collection
// wholesale.
func (g *Controller) SetPlayerPieces(p *core.Player, pieces []*core.Piece) bool {
	if p == nil {
		return false
	}
	if _, ok := g.pieces[p.ID]; !ok {
		return false
	}
	g.pieces[p.ID] = pieces
	return true
}

// PlayerPieces returns the pieces currently owned by the player.
func (g *Controller) PlayerPieces(p *core.Player) []*core.Piece {
	if p == nil {
		return nil
	}
	return g.pieces[p.ID]
}

// MaxPlayerPieces derives the initial piece count per player from the
// board size, leaving the standard 2 middle rows empty.
func (g *Controller) MaxPlayerPieces() int {
	size := g.board.Size()
	return size*(size-2)/4 + size%2
}

// PlaceAllPieces puts every registered player's pieces onto the board
// in the standard starting arrangement. Fails if the game has already
// been set up or no players are registered.
func (g *Controller) PlaceAllPieces() bool {
	if g.status != core.StatusNotReady || len(g.players) == 0 {
		return false
	}
	for _, p := range g.players {
		if !g.placePieces(p) {
			return false
		}
	}
	return true
}

// PlacePieces places a single registered player's pieces.
func (g *Controller) PlacePieces(p *core.Player) bool {
	if g.status != core.StatusNotReady || len(g.players) == 0 {
		return false
	}
	return g.placePieces(p)
}

// placePieces fills the playable squares of the player's home rows,
// row by row from the player's edge, as many rows as needed. An
// already-occupied cell is skipped rather than treated as fatal, so a
// malformed setup under-places instead of corrupting state.
func (g *Controller) placePieces(p *core.Player) bool {
	owned, ok := g.pieces[p.ID]
	if !ok || len(owned) == 0 {
		return false
	}

	size := g.board.Size()
	fromTop := owned[0].Color == core.ColorLight

	i := 0
	for r := 0; r < size && i < len(owned); r++ {
		row := r
		if !fromTop {
			row = size - 1 - r
		}
		for col := 0; col < size && i < len(owned); col++ {
			if !board.Playable(row, col) {
				continue
			}
			if g.board.Get(row, col) != nil {
				continue
			}
			g.board.Set(row, col, owned[i])
			i++
		}
	}
	return true
}

// Position resolves where a piece stands by scanning the board. A
// captured or not-yet-placed piece reports no position.
func (g *Controller) Position(p *core.Piece) (core.Position, bool) {
	return rules.Locate(g.board, p)
}

// Piece looks up a player's piece by ID.
func (g *Controller) Piece(p *core.Player, id int) (*core.Piece, bool) {
	if p == nil {
		return nil, false
	}
	for _, piece := range g.pieces[p.ID] {
		if piece.ID == id {
			return piece, true
		}
	}
	return nil, false
}

// Owner finds the player whose collection holds the piece.
func (g *Controller) Owner(piece *core.Piece) (*core.Player, bool) {
	for _, p := range g.players {
		for _, owned := range g.pieces[p.ID] {
			if owned.Equals(piece) {
				return p, true
			}
		}
	}
	return nil, false
}

// CountPiecesOnBoard returns the number of occupied cells.
func (g *Controller) CountPiecesOnBoard() int {
	return g.board.CountOccupied()
}

// PossibleMoves returns the legal destinations for the piece in the
// given turn phase.
func (g *Controller) PossibleMoves(piece *core.Piece, firstMoveOfTurn bool) []core.Position {
	return rules.PossibleMoves(g.board, piece, firstMoveOfTurn)
}

// PossibleJumps returns the legal jump landings for the piece.
func (g *Controller) PossibleJumps(piece *core.Piece) []core.Position {
	return rules.JumpMoves(g.board, piece)
}

// Start begins the match. Requires exactly two registered players and
// a game not yet started; the first registered player moves first.
func (g *Controller) Start() bool {
	if len(g.players) != 2 || g.status != core.StatusNotReady {
		return false
	}
	g.setStatus(core.StatusReady)
	g.current = g.players[0]
	g.emit(core.Event{Kind: core.EventTurnChanged, Player: g.current})
	return true
}

// MovePiece moves the piece to target if target is among its possible
// moves for this phase of the turn. A jump removes the jumped enemy
// from the board and its owner's collection. Every precondition is
// checked before any mutation, so a failed move leaves no partial
// writes.
func (g *Controller) MovePiece(piece *core.Piece, target core.Position, firstMoveOfTurn bool) bool {
	if piece == nil {
		return false
	}
	if g.status != core.StatusReady && g.status != core.StatusOnGoing {
		return false
	}
	if !containsPosition(rules.PossibleMoves(g.board, piece, firstMoveOfTurn), target) {
		return false
	}
	from, ok := rules.Locate(g.board, piece)
	if !ok {
		return false
	}

	var victim *core.Piece
	var victimOwner *core.Player
	if rules.IsJump(from, target) {
		mid := rules.Midpoint(from, target)
		victim = g.board.Get(mid.Row, mid.Col)
		if victim == nil {
			// Jump with no piece at the midpoint is an invariant
			// violation; abort before touching the board.
			return false
		}
		victimOwner, _ = g.Owner(victim)
	}

	g.board.Set(target.Row, target.Col, piece)
	g.board.Set(from.Row, from.Col, nil)

	if victim != nil {
		mid := rules.Midpoint(from, target)
		g.board.Set(mid.Row, mid.Col, nil)
		if victimOwner != nil {
			g.removeFromCollection(victimOwner, victim)
		}
		g.emit(core.Event{Kind: core.EventPieceCaptured, Piece: victim})
	}

	g.emit(core.Event{Kind: core.EventPieceMoved, Piece: piece, Position: target})
	if g.status == core.StatusReady {
		g.setStatus(core.StatusOnGoing)
	}
	return true
}

func (g *Controller) removeFromCollection(owner *core.Player, piece *core.Piece) {
	owned := g.pieces[owner.ID]
	for i, p := range owned {
		if p.Equals(piece) {
			g.pieces[owner.ID] = append(owned[:i], owned[i+1:]...)
			return
		}
	}
}

// PromotePiece promotes a piece standing on the far edge row for its
// color. Re-promoting a king is rejected, so the promotion
// notification fires at most once per piece.
func (g *Controller) PromotePiece(piece *core.Piece) bool {
	if piece == nil || piece.IsKing() {
		return false
	}
	pos, ok := rules.Locate(g.board, piece)
	if !ok {
		return false
	}
	farRow := g.board.Size() - 1
	if piece.Color == core.ColorDark {
		farRow = 0
	}
	if pos.Row != farRow {
		return false
	}
	piece.Promote()
	g.emit(core.Event{Kind: core.EventPiecePromoted, Piece: piece})
	return true
}

// NextTurn passes the turn to the other registered player, by
// registration order.
func (g *Controller) NextTurn() bool {
	if g.current == nil {
		return false
	}
	for i, p := range g.players {
		if p.ID == g.current.ID {
			g.current = g.players[(i+1)%len(g.players)]
			g.emit(core.Event{Kind: core.EventTurnChanged, Player: g.current})
			return true
		}
	}
	return false
}

// Resign empties the player's piece collection; the next GameOver
// check reports them defeated. Allowed only while a game is ready or
// in progress.
func (g *Controller) Resign(p *core.Player) bool {
	if p == nil {
		return false
	}
	if g.status != core.StatusReady && g.status != core.StatusOnGoing {
		return false
	}
	if _, ok := g.pieces[p.ID]; !ok {
		return false
	}
	g.pieces[p.ID] = nil
	return true
}

// GameOver reports whether any registered player has run out of
// pieces. Evaluated on demand; the first positive check moves the
// status to GameOver.
func (g *Controller) GameOver() bool {
	if len(g.players) == 0 {
		return false
	}
	if g.status == core.StatusGameOver {
		return true
	}
	for _, p := range g.players {
		if len(g.pieces[p.ID]) == 0 {
			g.setStatus(core.StatusGameOver)
			return true
		}
	}
	return false
}

// Winner returns the surviving player once the game is over. Both
// collections empty means a draw: no winner.
func (g *Controller) Winner() (*core.Player, bool) {
	if g.status != core.StatusGameOver {
		return nil, false
	}
	for _, p := range g.players {
		if len(g.pieces[p.ID]) > 0 {
			return p, true
		}
	}
	return nil, false
}

// RemoveAllPlayers is the full reset: players and pieces are dropped,
// the board is cleared, and the status returns to NotReady.
func (g *Controller) RemoveAllPlayers() {
	g.players = nil
	g.pieces = make(map[int][]*core.Piece)
	g.current = nil
	g.board = board.New(g.board.Size())
	g.setStatus(core.StatusNotReady)
}

func containsPosition(set []core.Position, pos core.Position) bool {
	for _, p := range set {
		if p == pos {
			return true
		}
	}
	return false
}
