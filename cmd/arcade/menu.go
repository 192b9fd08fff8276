package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/learning-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Colors, safari and maths then ask where to start.
Press Esc in a game to come back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  H            - Hear about the games
  Tab          - What was played this visit
  Q            - Quit

Examples:
  arcade menu
  arcade menu --voice captions
  arcade menu --audio off`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	out, cleanup, err := openOutputs()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := tui.RunSession(ctx, out, runtimeConfig()); err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	return nil
}
