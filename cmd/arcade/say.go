package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/synth"
	"github.com/vovakirdan/learning-arcade/internal/voice"
)

var flagSayTones bool

var sayCmd = &cobra.Command{
	Use:   "say [text]",
	Short: "Speak a line to check the narrator",
	Long: `Speak a line with the detected speech command and wait for it to
finish. Useful to check that narration works before playing.

With --tones a short sound is played on the left and then on the right
to check the speakers.

Examples:
  arcade say
  arcade say "Find the red color"
  arcade say --tones`,
	RunE: runSay,
}

func init() {
	sayCmd.Flags().BoolVar(&flagSayTones, "tones", false, "Also play a test sound left and right")
}

func runSay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	text := strings.Join(args, " ")
	if text == "" {
		text = "Hello! Welcome to our learning games!"
	}

	narrator, err := voice.DetectCommand(voice.WithLogger(logger))
	if err != nil {
		fmt.Printf("No speech command found (%v).\n", err)
		fmt.Println("Install espeak-ng or speech-dispatcher, or play with --voice captions.")
	} else {
		fmt.Printf("Speaking with %s: %q\n", narrator, text)
		narrator.Speak(text, core.DefaultVoice())
		narrator.Wait()
	}

	if !flagSayTones {
		return nil
	}

	sink, err := synth.DefaultSink()
	if err != nil {
		return fmt.Errorf("no audio output: %w", err)
	}
	graph := synth.NewGraph(sink, logger)
	defer graph.Close()

	beep := synth.Profile{Name: "beep", Frequency: 440, Duration: 400 * time.Millisecond, Waveform: core.WaveSine}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for _, d := range []synth.Direction{synth.Left, synth.Right} {
		fmt.Printf("Playing a sound on the %s\n", d)
		graph.PlaySound(ctx, beep, d)
		graph.Wait()
	}
	return nil
}
