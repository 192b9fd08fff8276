package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/learning-arcade/internal/core"
)

//go:embed defaults/colors.yaml
var defaultColorsYAML []byte

//go:embed defaults/emoji.yaml
var defaultEmojiYAML []byte

//go:embed defaults/maths.yaml
var defaultMathsYAML []byte

//go:embed defaults/safari.yaml
var defaultSafariYAML []byte

// DefaultColorsConfig returns the default Color Match configuration.
func DefaultColorsConfig() ColorsConfig {
	base := []ColorSwatch{
		{Name: "red", Color: "red"},
		{Name: "blue", Color: "blue"},
		{Name: "yellow", Color: "yellow"},
		{Name: "green", Color: "green"},
		{Name: "orange", Color: "orange"},
		{Name: "purple", Color: "purple"},
		{Name: "pink", Color: "pink"},
	}
	return ColorsConfig{
		Levels: []ColorLevel{
			{Colors: append([]ColorSwatch(nil), base[:3]...)},
			{Colors: append([]ColorSwatch(nil), base[:5]...)},
			{Colors: append([]ColorSwatch(nil), base...)},
		},
		Progression: Progression{Every: 5, MaxLevel: 3},
		Timing: Timing{
			FirstRound:      3 * time.Second,
			Prompt:          500 * time.Millisecond,
			Correct:         2 * time.Second,
			Incorrect:       1500 * time.Millisecond,
			LevelUpAnnounce: 2 * time.Second,
			LevelUpPause:    2 * time.Second,
		},
		Voice: core.Voice{Rate: 0.8, Pitch: 1.1, Volume: 0.8},
	}
}

// DefaultEmojiConfig returns the default Emoji Match configuration.
func DefaultEmojiConfig() EmojiConfig {
	return EmojiConfig{
		Emotions: []Emotion{
			{ID: "happy", Name: "Happy", Emoji: "😊", Color: "yellow"},
			{ID: "sad", Name: "Sad", Emoji: "😢", Color: "blue"},
			{ID: "angry", Name: "Angry", Emoji: "😠", Color: "red"},
			{ID: "surprised", Name: "Surprised", Emoji: "😲", Color: "purple"},
			{ID: "excited", Name: "Excited", Emoji: "🤩", Color: "orange"},
			{ID: "worried", Name: "Worried", Emoji: "😟", Color: "gray"},
		},
		Scenarios: []Scenario{
			{Text: "Your friend gives you a special gift", Emotion: "happy"},
			{Text: "Your favorite toy breaks", Emotion: "sad"},
			{Text: "Someone takes your snack without asking", Emotion: "angry"},
			{Text: "You hear a loud, unexpected noise", Emotion: "surprised"},
			{Text: "You're going to your favorite place", Emotion: "excited"},
			{Text: "You can't find your way home", Emotion: "worried"},
		},
		Timing: Timing{
			Prompt:    500 * time.Millisecond,
			Correct:   2 * time.Second,
			Incorrect: 2 * time.Second,
		},
		Voice: core.Voice{Rate: 0.8, Pitch: 1.1, Volume: 1.0},
	}
}

// DefaultMathsConfig returns the default Multiplication Practice configuration.
func DefaultMathsConfig() MathsConfig {
	return MathsConfig{
		Tables:        []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Questions:     10,
		MaxMultiplier: 12,
		Choices:       4,
		Spread:        10,
		PraiseRate:    1.2,
		Timing: Timing{
			Intro:     500 * time.Millisecond,
			Prompt:    100 * time.Millisecond,
			Correct:   1500 * time.Millisecond,
			Incorrect: time.Second,
			Celebrate: time.Second,
		},
		Voice: core.DefaultVoice(),
	}
}

// DefaultSafariConfig returns the default Sound Safari configuration.
func DefaultSafariConfig() SafariConfig {
	return SafariConfig{
		Animals: []Animal{
			{Name: "Lion", Description: "mighty roar", Frequency: 150, Duration: 1500 * time.Millisecond, Waveform: "sawtooth", Level: 1},
			{Name: "Elephant", Description: "deep trumpet", Frequency: 100, Duration: 2 * time.Second, Waveform: "sawtooth", Level: 1},
			{Name: "Monkey", Description: "playful chatter", Frequency: 800, Duration: time.Second, Waveform: "sawtooth", Level: 1},
			{Name: "Tiger", Description: "fierce growl", Frequency: 120, Duration: 1800 * time.Millisecond, Waveform: "sawtooth", Level: 2},
			{Name: "Bird", Description: "melodic chirp", Frequency: 2000, Duration: 800 * time.Millisecond, Waveform: "sine", Level: 3},
			{Name: "Hippo", Description: "deep grunt", Frequency: 80, Duration: 1200 * time.Millisecond, Waveform: "sawtooth", Level: 4},
		},
		Progression: Progression{Every: 5, MaxLevel: 4},
		Pan:         0.8,
		Timing: Timing{
			Greeting:        time.Second,
			Cue:             3 * time.Second,
			Correct:         4 * time.Second,
			Incorrect:       4 * time.Second,
			LevelUpAnnounce: 2 * time.Second,
		},
		Voice: core.Voice{Rate: 0.9, Pitch: 1.0, Volume: 0.8},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "colors":
		return defaultColorsYAML
	case "emoji":
		return defaultEmojiYAML
	case "maths":
		return defaultMathsYAML
	case "safari":
		return defaultSafariYAML
	default:
		return nil
	}
}
