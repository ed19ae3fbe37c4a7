package http

// Request types

type CreateMatchRequest struct {
	Size  int    `json:"size" validate:"omitempty,oneof=8 10 12"`
	Light string `json:"light" validate:"omitempty,max=40"`
	Dark  string `json:"dark" validate:"omitempty,max=40"`
}

type MoveRequest struct {
	PlayerID int `json:"playerId" validate:"required,oneof=1 2"`
	PieceID  int `json:"pieceId" validate:"required,min=1,max=30"`
	Row      int `json:"row" validate:"min=0,max=11"`
	Col      int `json:"col" validate:"min=0,max=11"`
}

type ResignRequest struct {
	PlayerID int `json:"playerId" validate:"required,oneof=1 2"`
}

// Response types

type MatchResponse struct {
	MatchID    string       `json:"matchId"`
	Size       int          `json:"size"`
	Status     string       `json:"status"` // "ready", "ongoing", "game_over"
	TurnPlayer *PlayerInfo  `json:"turnPlayer,omitempty"`
	ChainPiece int          `json:"chainPiece,omitempty"` // piece that must keep jumping
	Players    []PlayerInfo `json:"players"`
	Winner     *PlayerInfo  `json:"winner,omitempty"`
	LastMove   *MoveInfo    `json:"lastMove,omitempty"`
}

type PlayerInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"` // "l" or "d"
	Pieces int    `json:"pieces"`
}

type MoveInfo struct {
	From           string `json:"from"` // square notation, e.g. "c3"
	To             string `json:"to"`
	Jump           bool   `json:"jump"`
	Promoted       bool   `json:"promoted"`
	ChainContinues bool   `json:"chainContinues"`
}

type BoardResponse struct {
	Size  int    `json:"size"`
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Error codes
const (
	ErrMatchNotFound     = "MATCH_NOT_FOUND"
	ErrInvalidMove       = "INVALID_MOVE"
	ErrGameOver          = "GAME_OVER"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInternalError     = "INTERNAL_ERROR"
)
