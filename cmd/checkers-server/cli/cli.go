// Package cli implements the db admin mini-app for the server binary.
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"checkers/internal/storage"
)

// Run is the entry point for the CLI mini-app
func Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:])
	case "delete":
		return runDelete(args[1:])
	case "query":
		return runQuery(args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Printf("Database initialized at: %s\n", *path)
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Printf("Database deleted: %s\n", *path)
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	matchID := fs.String("matchId", "", "Match ID to filter (optional, * for all)")
	player := fs.String("player", "", "Player name to filter (optional, * for all)")
	moves := fs.Bool("moves", false, "Also list the moves of each match")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	matches, err := store.QueryMatches(*matchID, *player)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No matches found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATCH ID\tSIZE\tLIGHT\tDARK\tSTARTED (UTC)")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			m.MatchID, m.BoardSize, m.LightPlayer, m.DarkPlayer,
			m.StartTimeUTC.Format("2006-01-02 15:04:05"))
	}
	w.Flush()

	if !*moves {
		return nil
	}

	for _, m := range matches {
		records, err := store.QueryMoves(m.MatchID)
		if err != nil {
			return fmt.Errorf("move query failed: %w", err)
		}

		fmt.Printf("\nMoves for %s:\n", m.MatchID)
		mw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(mw, "#\tCOLOR\tPIECE\tFROM\tTO\tCAPTURE")
		for _, r := range records {
			fmt.Fprintf(mw, "%d\t%s\t%d\t%c%d\t%c%d\t%t\n",
				r.MoveNumber, r.PlayerColor, r.PieceID,
				'a'+r.FromCol, r.FromRow+1,
				'a'+r.ToCol, r.ToRow+1,
				r.Capture)
		}
		mw.Flush()
	}

	return nil
}
