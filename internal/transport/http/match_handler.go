package http

import (
	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"
	"checkers/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateMatch sets up and starts a new match
func (h *HTTPHandler) CreateMatch(c *fiber.Ctx) error {
	var req CreateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid request body",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation failed",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if req.Size == 0 {
		req.Size = board.DefaultSize
	}
	if req.Light == "" {
		req.Light = "Light"
	}
	if req.Dark == "" {
		req.Dark = "Dark"
	}

	matchID := h.svc.GenerateMatchID()
	if err := h.svc.CreateMatch(matchID, req.Size, req.Light, req.Dark); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "failed to create match",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	m, _ := h.svc.GetMatch(matchID)
	return c.Status(fiber.StatusCreated).JSON(buildMatchResponse(matchID, m))
}

// GetMatch retrieves current match state
func (h *HTTPHandler) GetMatch(c *fiber.Ctx) error {
	matchID := c.Params("matchId")

	m, err := h.svc.GetMatch(matchID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "match not found",
			Code:  ErrMatchNotFound,
		})
	}

	return c.JSON(buildMatchResponse(matchID, m))
}

// MakeMove submits a move for one player's piece
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	matchID := c.Params("matchId")

	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid request body",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation failed",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	m, err := h.svc.GetMatch(matchID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "match not found",
			Code:  ErrMatchNotFound,
		})
	}

	// Reject up front when the match is already decided
	if m.Controller().Status() == core.StatusGameOver {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "match is over",
			Code:  ErrGameOver,
		})
	}

	target := core.Position{Row: req.Row, Col: req.Col}
	outcome, err := h.svc.MakeMove(matchID, req.PlayerID, req.PieceID, target)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid move",
			Code:    ErrInvalidMove,
			Details: err.Error(),
		})
	}

	response := buildMatchResponse(matchID, m)
	response.LastMove = &MoveInfo{
		From:           outcome.From.String(),
		To:             outcome.To.String(),
		Jump:           outcome.Jump,
		Promoted:       outcome.Promoted,
		ChainContinues: outcome.ChainContinues,
	}

	return c.JSON(response)
}

// Resign ends the match in the opponent's favor
func (h *HTTPHandler) Resign(c *fiber.Ctx) error {
	matchID := c.Params("matchId")

	var req ResignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid request body",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}
	if err := validateBody(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation failed",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	m, err := h.svc.GetMatch(matchID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "match not found",
			Code:  ErrMatchNotFound,
		})
	}

	if _, err := h.svc.Resign(matchID, req.PlayerID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "cannot resign",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	return c.JSON(buildMatchResponse(matchID, m))
}

// DeleteMatch ends and cleans up a match
func (h *HTTPHandler) DeleteMatch(c *fiber.Ctx) error {
	matchID := c.Params("matchId")

	if err := h.svc.DeleteMatch(matchID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "match not found",
			Code:  ErrMatchNotFound,
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	matchID := c.Params("matchId")

	m, err := h.svc.GetMatch(matchID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "match not found",
			Code:  ErrMatchNotFound,
		})
	}

	b := m.Controller().Board()
	return c.JSON(BoardResponse{
		Size:  b.Size(),
		Board: b.ToASCII(),
	})
}

// Helper: Build standard match response
func buildMatchResponse(matchID string, m *service.Match) MatchResponse {
	ctrl := m.Controller()

	players := make([]PlayerInfo, 0, 2)
	for _, p := range ctrl.Players() {
		players = append(players, playerInfo(ctrl, p))
	}

	response := MatchResponse{
		MatchID: matchID,
		Size:    ctrl.Board().Size(),
		Status:  ctrl.Status().String(),
		Players: players,
	}

	if current := ctrl.CurrentPlayer(); current != nil {
		info := playerInfo(ctrl, current)
		response.TurnPlayer = &info
	}
	if chain := m.ChainPiece(); chain != nil {
		response.ChainPiece = chain.ID
	}
	if winner, ok := ctrl.Winner(); ok {
		info := playerInfo(ctrl, winner)
		response.Winner = &info
	}

	return response
}

func playerInfo(ctrl *game.Controller, p *core.Player) PlayerInfo {
	pieces := ctrl.PlayerPieces(p)
	color := core.ColorDark
	if p.ID == service.LightPlayerID {
		color = core.ColorLight
	}
	return PlayerInfo{
		ID:     p.ID,
		Name:   p.Name,
		Color:  color.String(),
		Pieces: len(pieces),
	}
}
