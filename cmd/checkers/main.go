// Package main implements the interactive two-player terminal game.
package main

import (
	"fmt"
	"os"

	"checkers/internal/cli"
	"checkers/internal/service"
	clitransport "checkers/internal/transport/cli"

	"golang.org/x/term"
)

func main() {
	svc, err := service.New(nil)
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	view, err := cli.New(os.Stdout, ".checkers_history")
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer view.Close()

	// Colored squares only when attached to a terminal
	if term.IsTerminal(int(os.Stdout.Fd())) {
		view.SetTheme(cli.ThemeBrown)
	}

	handler := clitransport.New(svc, view)

	view.ShowWelcome()
	handler.Run() // All game loop logic is in the handler
}
