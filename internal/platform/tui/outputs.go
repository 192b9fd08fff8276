package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/storage"
	"github.com/vovakirdan/learning-arcade/internal/synth"
	"github.com/vovakirdan/learning-arcade/internal/voice"
)

// Voice output modes.
const (
	VoiceAuto     = "auto"     // speech when available, plus captions
	VoiceCaptions = "captions" // captions only
	VoiceOff      = "off"
)

// Audio output modes.
const (
	AudioAuto = "auto"
	AudioOff  = "off"
)

// captionTTL is how long a narration line stays on screen.
const captionTTL = 6 * time.Second

// Outputs fulfil the cues games raise: narration, captions, tones, and
// the visit ledger that records answers.
type Outputs struct {
	Narrator voice.Narrator
	Captions *voice.Captions // nil hides captions
	Audio    *synth.Lazy     // nil disables tones
	Ledger   *storage.Store  // nil disables the visit history
	Logger   *log.Logger
}

// OutputOptions select the output devices.
type OutputOptions struct {
	Voice  string
	Audio  string
	Volume float64 // master gain for tones, 0..1; zero means full
	Ledger *storage.Store
	Logger *log.Logger
}

// NewOutputs builds the outputs for a local terminal. A missing speech
// command or audio device is logged and skipped.
func NewOutputs(opts OutputOptions) (Outputs, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	out := Outputs{Ledger: opts.Ledger, Logger: logger}

	switch opts.Voice {
	case VoiceAuto, "":
		out.Captions = voice.NewCaptions(captionTTL)
		cmd, err := voice.DetectCommand(voice.WithLogger(logger))
		if err != nil {
			logger.Info("narration shown as captions only", "reason", err)
			out.Narrator = out.Captions
			break
		}
		logger.Info("narration enabled", "engine", cmd.Engine())
		out.Narrator = voice.Multi{cmd, out.Captions}
	case VoiceCaptions:
		out.Captions = voice.NewCaptions(captionTTL)
		out.Narrator = out.Captions
	case VoiceOff:
		out.Narrator = voice.Nop{}
	default:
		return out, fmt.Errorf("tui: unknown voice mode %q", opts.Voice)
	}

	switch opts.Audio {
	case AudioAuto, "":
		out.Audio = synth.NewLazy(func() *synth.Graph {
			sink, err := synth.DefaultSink()
			if err != nil {
				logger.Info("tones disabled", "reason", err)
				return synth.NewGraph(nil, logger)
			}
			g := synth.NewGraph(sink, logger)
			if opts.Volume > 0 {
				g.SetGain(opts.Volume)
			}
			return g
		})
	case AudioOff:
	default:
		return out, fmt.Errorf("tui: unknown audio mode %q", opts.Audio)
	}

	return out, nil
}

// CaptionsOnly returns outputs that show narration on screen and play
// nothing. Used for remote sessions.
func CaptionsOnly(ledger *storage.Store, logger *log.Logger) Outputs {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := voice.NewCaptions(captionTTL)
	return Outputs{Narrator: c, Captions: c, Ledger: ledger, Logger: logger}
}

func (o Outputs) narrator() voice.Narrator {
	if o.Narrator == nil {
		return voice.Nop{}
	}
	return o.Narrator
}

func (o Outputs) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// Speak narrates text outside any game, e.g. from the menu.
func (o Outputs) Speak(text string) {
	o.narrator().Speak(text, core.DefaultVoice())
}

// Play fulfils cues in the order they were raised.
func (o Outputs) Play(ctx context.Context, gameID string, cues []core.Cue) {
	for _, c := range cues {
		switch c.Kind {
		case core.CueSpeak:
			o.logger().Debug("speak", "game", gameID, "text", c.Text)
			o.narrator().Speak(c.Text, c.Voice)
		case core.CueSilence:
			o.narrator().Cancel()
		case core.CueAudioInit:
			if o.Audio != nil {
				o.Audio.Get()
			}
		case core.CueTone:
			if o.Audio == nil {
				continue
			}
			o.logger().Debug("tone", "game", gameID, "name", c.Tone.Name, "pan", c.Tone.Pan)
			o.Audio.Get().Play(ctx, c.Tone)
		}
	}
}

// Caption returns the narration line to show, if any.
func (o Outputs) Caption() string {
	if o.Captions == nil {
		return ""
	}
	return o.Captions.Line()
}

// Silence stops narration.
func (o Outputs) Silence() {
	o.narrator().Cancel()
}

// Close stops narration and releases the audio output. Every device is
// closed even when an earlier one fails.
func (o Outputs) Close() error {
	o.narrator().Cancel()
	var errs []error
	if c, ok := o.Narrator.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if m, ok := o.Narrator.(voice.Multi); ok {
		for _, n := range m {
			if c, ok := n.(io.Closer); ok {
				errs = append(errs, c.Close())
			}
		}
	}
	if o.Audio != nil {
		errs = append(errs, o.Audio.Close())
	}
	return errors.Join(errs...)
}
