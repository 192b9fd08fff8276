package core

import "time"

// Voice holds text-to-speech parameters. Rate and Pitch are multipliers
// around 1.0 (normal); Volume ranges 0.0 to 1.0.
type Voice struct {
	Rate   float64 `yaml:"rate"`
	Pitch  float64 `yaml:"pitch"`
	Volume float64 `yaml:"volume"`
}

// DefaultVoice is the narrator's neutral voice.
func DefaultVoice() Voice {
	return Voice{Rate: 1.0, Pitch: 1.0, Volume: 0.8}
}

// WithRate returns a copy of v speaking at the given rate.
func (v Voice) WithRate(rate float64) Voice {
	v.Rate = rate
	return v
}

// Waveform selects the oscillator shape of a synthesized tone.
type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveSawtooth Waveform = "sawtooth"
	WaveSquare   Waveform = "square"
	WaveTriangle Waveform = "triangle"
)

// Tone describes a synthesized sound: an oscillator at Frequency Hz
// shaped by an envelope over Duration, panned from -1 (left) to 1 (right).
type Tone struct {
	Name      string
	Frequency float64
	Duration  time.Duration
	Waveform  Waveform
	Pan       float64
}

// CueKind identifies what a cue asks the platform to do.
type CueKind int

const (
	// CueSpeak asks the narrator to speak Text, replacing any utterance in flight.
	CueSpeak CueKind = iota
	// CueSilence asks the narrator to stop speaking.
	CueSilence
	// CueTone asks the audio output to play Tone.
	CueTone
	// CueAudioInit asks the platform to prepare the audio output ahead of the first tone.
	CueAudioInit
)

// String returns a human-readable name for the cue kind.
func (k CueKind) String() string {
	switch k {
	case CueSpeak:
		return "speak"
	case CueSilence:
		return "silence"
	case CueTone:
		return "tone"
	case CueAudioInit:
		return "audio-init"
	default:
		return "unknown"
	}
}

// Cue is a side-effect request raised by a game. Games never talk to
// speech or audio devices directly; the platform fulfils cues.
type Cue struct {
	Kind  CueKind
	Text  string
	Voice Voice
	Tone  Tone
}

// Speak builds a CueSpeak.
func Speak(text string, v Voice) Cue {
	return Cue{Kind: CueSpeak, Text: text, Voice: v}
}

// PlayTone builds a CueTone.
func PlayTone(t Tone) Cue {
	return Cue{Kind: CueTone, Tone: t}
}
