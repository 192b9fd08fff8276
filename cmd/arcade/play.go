package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/learning-arcade/internal/games/colors"
	"github.com/vovakirdan/learning-arcade/internal/games/emoji"
	"github.com/vovakirdan/learning-arcade/internal/games/maths"
	"github.com/vovakirdan/learning-arcade/internal/games/safari"
	"github.com/vovakirdan/learning-arcade/internal/platform/tui"
	"github.com/vovakirdan/learning-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagTable      int
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Enter        - Start / answer the focused choice
  Space        - Hear the question again
  Arrows       - Move between choices (safari: left/right answers)
  1-9          - Answer by number
  Mouse click  - Answer by clicking a choice
  I            - Instructions
  V            - Voice on/off
  P            - Pause
  R            - Restart
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Difficulty options (colors, safari):
  easy   - Start on the first level
  normal - Start in the middle
  hard   - Start on the last level

Without --table or --level a picker is shown first.

Examples:
  arcade play emoji
  arcade play colors --difficulty hard
  arcade play safari --level 2
  arcade play maths --table 7
  arcade play maths --config ./my-maths.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagTable, "table", 0, "Times table to practice (maths)")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start on (colors, safari)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	out, cleanup, err := openOutputs()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := runtimeConfig()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Set config path and start point for games before creation
	picked := 0
	switch gameID {
	case emoji.ID:
		emoji.SetConfigPath(flagConfig)
	case colors.ID:
		colors.SetConfigPath(flagConfig)
		colors.SetDifficultyPreset(flagDifficulty)
		colors.SetStartLevel(flagLevel)
		picked = flagLevel
	case safari.ID:
		safari.SetConfigPath(flagConfig)
		safari.SetDifficultyPreset(flagDifficulty)
		safari.SetStartLevel(flagLevel)
		picked = flagLevel
	case maths.ID:
		maths.SetConfigPath(flagConfig)
		maths.SetTable(flagTable)
		picked = flagTable
	}

	// A preset already says where to start.
	if picked == 0 && flagDifficulty == "" {
		if setup, ok := tui.SetupFor(gameID); ok {
			selection, quit, selErr := tui.RunSelector(setup, out, cfg)
			if selErr != nil {
				return fmt.Errorf("picker: %w", selErr)
			}
			// User pressed back or quit
			if quit || selection == nil {
				return nil
			}
			picked = selection.Value
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if s, ok := game.(registry.Starter); ok && picked > 0 {
		s.StartAt(picked)
	}

	out.Logger.Info("game started", "game", gameID, "level", picked)
	if err := tui.Run(ctx, game, out, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
