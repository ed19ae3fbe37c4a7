// Package cli wires the terminal view to the match service: the
// interactive game loop, command dispatch, and rendering of the
// controller's notifications.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"checkers/internal/board"
	"checkers/internal/cli"
	"checkers/internal/core"
	"checkers/internal/service"
)

type CLIHandler struct {
	svc     *service.Service
	view    *cli.CLI
	matchID string
}

func New(svc *service.Service, view *cli.CLI) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// Main game loop - simple command processing
func (h *CLIHandler) Run() {
	for {
		h.view.SetPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			break
		}

		// Process command - returns false to exit
		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

// Generates the appropriate command prompt
func (h *CLIHandler) getPrompt() string {
	prompt := "> "
	if h.matchID == "" {
		return prompt
	}

	m, err := h.svc.GetMatch(h.matchID)
	if err != nil {
		return prompt
	}
	ctrl := m.Controller()
	current := ctrl.CurrentPlayer()
	if current == nil || ctrl.Status() == core.StatusGameOver {
		return prompt
	}

	prompt = fmt.Sprintf("[%s]> ", current.Name)
	if chain := m.ChainPiece(); chain != nil {
		prompt = fmt.Sprintf("[%s, piece %d must jump]> ", current.Name, chain.ID)
	}
	return prompt
}

// Handles user commands - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		if cmd.Raw != "" {
			h.view.ShowMessage("Unknown command. Type 'help' for commands.")
		}
		return true

	case cli.CmdNew:
		return h.handleNewMatch(cmd.Args)

	case cli.CmdMove:
		h.handleMove(cmd.Args)

	case cli.CmdMoves:
		h.handleShowMoves(cmd.Args)

	case cli.CmdBoard:
		if !h.requireMatch() {
			return true
		}
		m, _ := h.svc.GetMatch(h.matchID)
		h.view.DisplayBoard(m.Controller().Board())

	case cli.CmdResign:
		h.handleResign()

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
		} else {
			h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
			if h.matchID != "" {
				m, _ := h.svc.GetMatch(h.matchID)
				h.view.DisplayBoard(m.Controller().Board())
			}
		}

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) requireMatch() bool {
	if h.matchID == "" {
		h.view.ShowMessage("No active game. Use 'new' to start one.")
		return false
	}
	return true
}

// Starts a new match, prompting for player names
func (h *CLIHandler) handleNewMatch(args []string) bool {
	size := board.DefaultSize
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			h.view.ShowMessage("Usage: new [size]")
			return true
		}
		size = n
	}

	lightName := h.view.ReadLine("Light player name: ")
	if lightName == "" {
		lightName = "Light"
	}
	darkName := h.view.ReadLine("Dark player name: ")
	if darkName == "" {
		darkName = "Dark"
	}

	id := h.svc.GenerateMatchID()
	if err := h.svc.CreateMatch(id, size, lightName, darkName); err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %v", err))
		return true
	}
	h.matchID = id

	m, _ := h.svc.GetMatch(id)
	m.Controller().Subscribe(h.onEvent)

	h.view.ShowMessage(fmt.Sprintf("Game started: %s (light, o) vs %s (dark, x). Light moves first.", lightName, darkName))
	h.view.DisplayBoard(m.Controller().Board())
	return true
}

// onEvent renders controller notifications the move summary does not
// already cover.
func (h *CLIHandler) onEvent(ev core.Event) {
	switch ev.Kind {
	case core.EventPieceCaptured:
		h.view.ShowMessage(fmt.Sprintf("Captured %s piece %d", colorName(ev.Piece.Color), ev.Piece.ID))
	case core.EventPiecePromoted:
		h.view.ShowMessage(fmt.Sprintf("Piece %d (%s) promoted to king", ev.Piece.ID, colorName(ev.Piece.Color)))
	}
}

func (h *CLIHandler) handleMove(args []string) {
	if !h.requireMatch() {
		return
	}
	if len(args) != 2 {
		h.view.ShowMessage("Usage: move <piece> <square>  (e.g. 'move 9 c4')")
		return
	}

	pieceID, err := strconv.Atoi(args[0])
	if err != nil {
		h.view.ShowMessage("Piece must be a number. Usage: move <piece> <square>")
		return
	}

	m, err := h.svc.GetMatch(h.matchID)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	ctrl := m.Controller()

	target, err := cli.ParseCoord(args[1], ctrl.Board().Size())
	if err != nil {
		h.view.ShowError(err)
		return
	}

	current := ctrl.CurrentPlayer()
	if current == nil {
		h.view.ShowMessage("No player to move.")
		return
	}

	outcome, err := h.svc.MakeMove(h.matchID, current.ID, pieceID, target)
	if err != nil {
		h.view.ShowError(fmt.Errorf("invalid move: %v", err))
		return
	}

	h.view.DisplayBoard(ctrl.Board())

	if outcome.ChainContinues {
		h.view.ShowMessage(fmt.Sprintf("Piece %d must continue jumping.", pieceID))
	}
	if outcome.Status == core.StatusGameOver {
		h.view.ShowGameOver(outcome.Winner)
		h.matchID = ""
	}
}

func (h *CLIHandler) handleShowMoves(args []string) {
	if !h.requireMatch() {
		return
	}
	if len(args) != 1 {
		h.view.ShowMessage("Usage: moves <piece>")
		return
	}

	pieceID, err := strconv.Atoi(args[0])
	if err != nil {
		h.view.ShowMessage("Piece must be a number. Usage: moves <piece>")
		return
	}

	m, _ := h.svc.GetMatch(h.matchID)
	ctrl := m.Controller()
	current := ctrl.CurrentPlayer()
	if current == nil {
		h.view.ShowMessage("No player to move.")
		return
	}

	piece, ok := ctrl.Piece(current, pieceID)
	if !ok {
		h.view.ShowMessage(fmt.Sprintf("%s has no piece %d.", current.Name, pieceID))
		return
	}

	chain := m.ChainPiece()
	if chain != nil && !chain.Equals(piece) {
		h.view.ShowMessage(fmt.Sprintf("Piece %d must continue its jump chain.", chain.ID))
		return
	}

	moves := ctrl.PossibleMoves(piece, chain == nil)
	if len(moves) == 0 {
		h.view.ShowMessage(fmt.Sprintf("Piece %d has no legal moves.", pieceID))
		return
	}

	squares := make([]string, 0, len(moves))
	for _, pos := range moves {
		squares = append(squares, pos.String())
	}
	h.view.ShowMessage(fmt.Sprintf("Piece %d can move to: %s", pieceID, strings.Join(squares, ", ")))
}

func (h *CLIHandler) handleResign() {
	if !h.requireMatch() {
		return
	}

	m, _ := h.svc.GetMatch(h.matchID)
	current := m.Controller().CurrentPlayer()
	if current == nil {
		h.view.ShowMessage("No player to move.")
		return
	}

	winner, err := h.svc.Resign(h.matchID, current.ID)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	h.view.ShowMessage(fmt.Sprintf("%s resigns.", current.Name))
	h.view.ShowGameOver(winner)
	h.matchID = ""
}

func colorName(c core.Color) string {
	if c == core.ColorLight {
		return "light"
	}
	return "dark"
}
