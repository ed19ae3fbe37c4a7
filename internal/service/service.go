// Package service manages checkers matches: a mutex-guarded registry
// keyed by UUID, multi-jump chain tracking per match, and optional
// persistence of match and move history.
package service

import (
	"fmt"
	"sync"
	"time"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"
	"checkers/internal/storage"

	"github.com/google/uuid"
)

// Light is registered first and therefore moves first.
const (
	LightPlayerID = 1
	DarkPlayerID  = 2
)

// Service is a state manager for checkers matches with optional
// persistence
type Service struct {
	matches map[string]*Match
	mu      sync.RWMutex
	store   *storage.Store // nil if persistence disabled
}

// Match pairs a game controller with the turn-phase state that lives
// above the controller: the piece locked into a multi-jump chain, if
// any, and the running move count.
type Match struct {
	ctrl      *game.Controller
	chain     *core.Piece
	moveCount int
}

// Controller exposes the underlying game controller. Per the
// concurrency model a single driver owns each match; the service
// serializes mutations through its own methods.
func (m *Match) Controller() *game.Controller {
	return m.ctrl
}

// ChainPiece returns the piece that must continue jumping, nil when no
// chain is pending.
func (m *Match) ChainPiece() *core.Piece {
	return m.chain
}

func (m *Match) MoveCount() int {
	return m.moveCount
}

// MoveOutcome describes what a completed move did.
type MoveOutcome struct {
	From           core.Position
	To             core.Position
	Jump           bool
	Promoted       bool
	ChainContinues bool
	Status         core.GameStatus
	Winner         *core.Player
	NextPlayer     *core.Player
}

// New creates a new service instance with optional storage
func New(store *storage.Store) (*Service, error) {
	return &Service{
		matches: make(map[string]*Match),
		store:   store,
	}, nil
}

// CreateMatch sets up and starts a complete match: board, two
// players, generated pieces, the standard starting formation.
func (s *Service) CreateMatch(id string, size int, lightName, darkName string) error {
	if size < 4 || size%2 != 0 {
		return fmt.Errorf("invalid board size %d: must be even and at least 4", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.matches[id]; exists {
		return fmt.Errorf("match %s already exists", id)
	}

	ctrl := game.New()
	if !ctrl.SetBoard(board.New(size)) {
		return fmt.Errorf("failed to set board")
	}

	light := core.NewPlayer(LightPlayerID, lightName)
	dark := core.NewPlayer(DarkPlayerID, darkName)
	if !ctrl.AddPlayer(light) || !ctrl.AddPlayer(dark) {
		return fmt.Errorf("failed to register players")
	}

	n := ctrl.MaxPlayerPieces()
	if !ctrl.SetPlayerPieces(light, ctrl.GeneratePieces(core.ColorLight, n)) ||
		!ctrl.SetPlayerPieces(dark, ctrl.GeneratePieces(core.ColorDark, n)) {
		return fmt.Errorf("failed to assign pieces")
	}
	if !ctrl.PlaceAllPieces() {
		return fmt.Errorf("failed to place pieces")
	}
	if !ctrl.Start() {
		return fmt.Errorf("failed to start match")
	}

	s.matches[id] = &Match{ctrl: ctrl}

	// Persist if storage enabled
	if s.store != nil {
		record := storage.MatchRecord{
			MatchID:      id,
			BoardSize:    size,
			LightPlayer:  lightName,
			DarkPlayer:   darkName,
			StartTimeUTC: time.Now().UTC(),
		}
		s.store.RecordNewMatch(record)
	}

	return nil
}

// GetMatch retrieves a match by ID
func (s *Service) GetMatch(id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("match not found: %s", id)
	}
	return m, nil
}

// GenerateMatchID creates a new unique match ID
func (s *Service) GenerateMatchID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Ensure UUID uniqueness (handle potential conflicts)
	for {
		id := uuid.New().String()
		if _, exists := s.matches[id]; !exists {
			return id
		}
	}
}

// MakeMove executes one move for the given player's piece. It enforces
// turn ownership and the forced-capture chain: after a jump that
// leaves further jumps open, the turn does not pass and only the same
// piece may move. Promotion ends a chain.
func (s *Service) MakeMove(matchID string, playerID, pieceID int, to core.Position) (*MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("match not found: %s", matchID)
	}
	ctrl := m.ctrl

	status := ctrl.Status()
	if status != core.StatusReady && status != core.StatusOnGoing {
		return nil, fmt.Errorf("match is not in progress (status: %s)", status)
	}

	current := ctrl.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return nil, fmt.Errorf("not player %d's turn", playerID)
	}

	piece, ok := ctrl.Piece(current, pieceID)
	if !ok {
		return nil, fmt.Errorf("player %d has no piece %d", playerID, pieceID)
	}

	first := m.chain == nil
	if !first && !m.chain.Equals(piece) {
		return nil, fmt.Errorf("must continue the jump chain with piece %d", m.chain.ID)
	}

	from, ok := ctrl.Position(piece)
	if !ok {
		return nil, fmt.Errorf("piece %d is not on the board", pieceID)
	}

	if !ctrl.MovePiece(piece, to, first) {
		return nil, fmt.Errorf("illegal move %s to %s", from, to)
	}

	outcome := &MoveOutcome{
		From:     from,
		To:       to,
		Jump:     abs(to.Row-from.Row) == 2,
		Promoted: ctrl.PromotePiece(piece),
	}

	if outcome.Jump && !outcome.Promoted && len(ctrl.PossibleJumps(piece)) > 0 {
		m.chain = piece
		outcome.ChainContinues = true
	} else {
		m.chain = nil
		if !ctrl.GameOver() {
			ctrl.NextTurn()
		}
	}

	m.moveCount++
	outcome.Status = ctrl.Status()
	outcome.NextPlayer = ctrl.CurrentPlayer()
	if winner, ok := ctrl.Winner(); ok {
		outcome.Winner = winner
	}

	// Persist if storage enabled
	if s.store != nil {
		record := storage.MoveRecord{
			MatchID:     matchID,
			MoveNumber:  m.moveCount,
			PlayerColor: piece.Color.String(),
			PieceID:     piece.ID,
			FromRow:     from.Row,
			FromCol:     from.Col,
			ToRow:       to.Row,
			ToCol:       to.Col,
			Capture:     outcome.Jump,
			MoveTimeUTC: time.Now().UTC(),
		}
		s.store.RecordMove(record)
	}

	return outcome, nil
}

// Resign empties the player's pieces and ends the match.
func (s *Service) Resign(matchID string, playerID int) (*core.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("match not found: %s", matchID)
	}

	var player *core.Player
	for _, p := range m.ctrl.Players() {
		if p.ID == playerID {
			player = p
			break
		}
	}
	if player == nil {
		return nil, fmt.Errorf("player %d is not in match %s", playerID, matchID)
	}

	if !m.ctrl.Resign(player) {
		return nil, fmt.Errorf("player %d cannot resign (status: %s)", playerID, m.ctrl.Status())
	}

	m.chain = nil
	m.ctrl.GameOver()
	winner, _ := m.ctrl.Winner()
	return winner, nil
}

// DeleteMatch removes a match from memory and, if persistence is
// enabled, from storage.
func (s *Service) DeleteMatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return fmt.Errorf("match not found: %s", id)
	}
	delete(s.matches, id)

	if s.store != nil {
		s.store.DeleteMatch(id)
	}
	return nil
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close cleans up resources
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches = make(map[string]*Match)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
