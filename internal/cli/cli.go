// Package cli implements the terminal view: readline-driven input,
// command and coordinate parsing, and themed board rendering. It holds
// no game state; the transport handler drives it.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"checkers/internal/board"
	"checkers/internal/core"

	"github.com/chzyer/readline"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdMove
	CmdMoves
	CmdBoard
	CmdResign
	CmdColor
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	light   string
	dark    string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		light:   "\033[97m",
		dark:    "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		light:   "\033[97m",
		dark:    "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		light:   "\033[97m",
		dark:    "\033[30m",
		reset:   "\033[0m",
	},
}

type CLI struct {
	rl     *readline.Instance
	output io.Writer
	theme  ColorTheme
}

func New(output io.Writer, historyFile string) (*CLI, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize input: %w", err)
	}
	return &CLI{
		rl:     rl,
		output: output,
		theme:  ThemeOff,
	}, nil
}

func (c *CLI) Close() error {
	return c.rl.Close()
}

func (c *CLI) SetPrompt(prompt string) {
	c.rl.SetPrompt(prompt)
}

// GetCommand reads one command synchronously. EOF and interrupt map to
// CmdQuit.
func (c *CLI) GetCommand() (*Command, error) {
	line, err := c.rl.Readline()
	if err == io.EOF || err == readline.ErrInterrupt {
		return &Command{Type: CmdQuit}, nil
	}
	if err != nil {
		return nil, err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return &Command{Type: CmdNone}, nil
	}

	return parseCommand(line), nil
}

func parseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "move", "m":
		return &Command{Type: CmdMove, Args: args, Raw: input}
	case "moves":
		return &Command{Type: CmdMoves, Args: args}
	case "board", "b":
		return &Command{Type: CmdBoard}
	case "resign":
		return &Command{Type: CmdResign}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Bare "<pieceId> <square>" is shorthand for a move
		if len(parts) == 2 {
			if _, err := strconv.Atoi(parts[0]); err == nil {
				return &Command{Type: CmdMove, Args: parts, Raw: input}
			}
		}
		return &Command{Type: CmdNone, Raw: input}
	}
}

// ParseCoord converts coordinate text like "c4" into a board position:
// column letter first, then 1-based rank counted from the top of the
// stored grid.
func ParseCoord(s string, size int) (core.Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return core.Position{}, fmt.Errorf("invalid coordinate %q", s)
	}

	col := int(s[0] - 'a')
	rank, err := strconv.Atoi(s[1:])
	if err != nil {
		return core.Position{}, fmt.Errorf("invalid coordinate %q", s)
	}
	row := rank - 1

	if col < 0 || col >= size || row < 0 || row >= size {
		return core.Position{}, fmt.Errorf("coordinate %q is off the board", s)
	}
	return core.Position{Row: row, Col: col}, nil
}

// ReadLine prompts for a single free-form line, e.g. a player name.
func (c *CLI) ReadLine(prompt string) string {
	c.rl.SetPrompt(prompt)
	line, err := c.rl.Readline()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// DisplayBoard renders the board with the active theme. Light pieces
// show as o/O, dark as x/X; kings are uppercase.
func (c *CLI) DisplayBoard(b *board.Board) {
	theme := themes[c.theme]
	size := b.Size()
	var sb strings.Builder

	sb.WriteString("\n   ")
	for col := 0; col < size; col++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+col))
	}
	sb.WriteString("\n")

	for row := 0; row < size; row++ {
		sb.WriteString(fmt.Sprintf("%2d ", row+1))
		for col := 0; col < size; col++ {
			piece := b.Get(row, col)

			if c.theme == ThemeOff {
				if piece == nil {
					sb.WriteString(". ")
				} else {
					sb.WriteString(board.Symbol(piece) + " ")
				}
				continue
			}

			bg := theme.lightBg
			if board.Playable(row, col) {
				bg = theme.darkBg
			}
			if piece == nil {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
			} else {
				color := theme.dark
				if piece.Color == core.ColorLight {
					color = theme.light
				}
				sb.WriteString(fmt.Sprintf("%s%s%s %s", bg, color, board.Symbol(piece), theme.reset))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", row+1))
	}

	sb.WriteString("   ")
	for col := 0; col < size; col++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+col))
	}
	sb.WriteString("\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new [size]            - Start a new game (board size 8, 10 or 12; default 8)
  move <piece> <square> - Move one of your pieces (e.g. 'move 9 c4', shorthand '9 c4')
  moves <piece>         - List a piece's legal destinations
  board                 - Redraw the board
  resign                - Resign the game as the player to move
  color <theme>         - Set board color theme (off|brown|green|gray)
  help/?                - Show this help message
  quit/exit             - Exit the program

Pieces are numbered within each side; jumps are mandatory when
available, and a piece that has just jumped must keep jumping while it
can.`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Checkers!")
	c.ShowMessage("Commands: new [size], move <piece> <square>, moves <piece>, board, resign, help/?")
	c.ShowMessage("")
}

func (c *CLI) ShowGameOver(winner *core.Player) {
	if winner != nil {
		c.ShowMessage(fmt.Sprintf("\nGame Over: %s wins!", winner.Name))
	} else {
		c.ShowMessage("\nGame Over: draw")
	}
	c.ShowMessage("Start a new game with 'new'.")
}
