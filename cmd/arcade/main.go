// arcade is a set of learning games for young children, played in the
// terminal with a spoken narrator.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade say <text>        - Check the narrator voice
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible rounds
//	--voice <mode>       - auto, captions or off (default: auto)
//	--audio <mode>       - auto or off (default: auto)
//	--volume <gain>      - Animal sound volume (default: 1)
//	--log-file <path>    - Write logs to a file instead of discarding them
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/learning-arcade/internal/core"
	// Import games to register them
	_ "github.com/vovakirdan/learning-arcade/internal/games/colors"
	_ "github.com/vovakirdan/learning-arcade/internal/games/emoji"
	_ "github.com/vovakirdan/learning-arcade/internal/games/maths"
	_ "github.com/vovakirdan/learning-arcade/internal/games/safari"
	"github.com/vovakirdan/learning-arcade/internal/platform/tui"
	"github.com/vovakirdan/learning-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagVoice   string
	flagAudio   string
	flagVolume  float64
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Learning Games - spoken learning games for kids in your terminal",
	Long: `Learning Games is a small set of narrated games for young children:
match feelings to emojis, find animals by their sounds, learn colors and
practice times tables.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  say      - Speak a line to check the narrator

Examples:
  arcade list
  arcade play colors --level 2
  arcade play maths --table 7
  arcade menu --voice captions
  arcade serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagVoice, "voice", tui.VoiceAuto, "Narration: auto, captions, off")
	rootCmd.PersistentFlags().StringVar(&flagAudio, "audio", tui.AudioAuto, "Animal sounds: auto, off")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 1, "Animal sound volume, 0.1 to 1")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sayCmd)
}

// newLogger returns the logger for terminal commands. The screen belongs
// to the game, so logs go to --log-file or nowhere.
func newLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "arcade"})
	return logger, func() { f.Close() }, nil
}

// openOutputs builds narration, sound and the visit ledger for a local
// terminal session. The returned cleanup releases all of them.
func openOutputs() (tui.Outputs, func(), error) {
	logger, closeLog, err := newLogger()
	if err != nil {
		return tui.Outputs{}, nil, err
	}

	ledger, err := storage.Open()
	if err != nil {
		// Games still work without the visit history.
		logger.Warn("visit ledger unavailable", "error", err)
		ledger = nil
	}

	out, err := tui.NewOutputs(tui.OutputOptions{
		Voice:  flagVoice,
		Audio:  flagAudio,
		Volume: flagVolume,
		Ledger: ledger,
		Logger: logger,
	})
	if err != nil {
		if ledger != nil {
			ledger.Close()
		}
		closeLog()
		return tui.Outputs{}, nil, err
	}

	cleanup := func() {
		out.Close()
		if ledger != nil {
			ledger.Close()
		}
		closeLog()
	}
	return out, cleanup, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
