// Package config provides YAML-based game configuration loading and
// level progression rules for the arcade platform.
package config

import (
	"time"

	"github.com/vovakirdan/learning-arcade/internal/core"
)

// Timing holds the pacing of a game. All delays are measured from the
// event named in the comment. Zero disables the step where that makes sense.
type Timing struct {
	Greeting        time.Duration `yaml:"greeting"`          // start screen shown -> welcome line
	Intro           time.Duration `yaml:"intro"`             // game start -> intro narrated
	FirstRound      time.Duration `yaml:"first_round"`       // game start -> first round opens
	Prompt          time.Duration `yaml:"prompt"`            // round opens -> prompt narrated
	Cue             time.Duration `yaml:"cue"`               // round opens -> sound cue plays, input accepted
	Correct         time.Duration `yaml:"correct"`           // correct answer -> next round
	Incorrect       time.Duration `yaml:"incorrect"`         // wrong answer -> retry or next round
	LevelUpAnnounce time.Duration `yaml:"level_up_announce"` // level-up answer -> "level up" narration
	LevelUpPause    time.Duration `yaml:"level_up_pause"`    // extra wait before the first round of a new level
	Celebrate       time.Duration `yaml:"celebrate"`         // last answer -> celebration narration
}

// ColorsConfig contains all configuration for the Color Match game.
type ColorsConfig struct {
	Levels      []ColorLevel `yaml:"levels"`
	Progression Progression  `yaml:"progression"`
	Timing      Timing       `yaml:"timing"`
	Voice       core.Voice   `yaml:"voice"`
}

// ColorLevel is the palette offered on one level.
type ColorLevel struct {
	Colors []ColorSwatch `yaml:"colors"`
}

// ColorSwatch is one color block: its spoken name and terminal palette color.
type ColorSwatch struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// EmojiConfig contains all configuration for the Emoji Match game.
type EmojiConfig struct {
	Emotions  []Emotion  `yaml:"emotions"`
	Scenarios []Scenario `yaml:"scenarios"`
	Shuffle   bool       `yaml:"shuffle"` // shuffle scenario order once per session
	Timing    Timing     `yaml:"timing"`
	Voice     core.Voice `yaml:"voice"`
}

// Emotion is one selectable feeling.
type Emotion struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Emoji string `yaml:"emoji"`
	Color string `yaml:"color"`
}

// Scenario is an everyday situation and the emotion it matches.
type Scenario struct {
	Text    string `yaml:"text"`
	Emotion string `yaml:"emotion"`
}

// MathsConfig contains all configuration for the Multiplication Practice game.
type MathsConfig struct {
	Tables        []int      `yaml:"tables"`         // tables offered by the picker
	Questions     int        `yaml:"questions"`      // questions per table
	MaxMultiplier int        `yaml:"max_multiplier"` // multipliers drawn from 1..MaxMultiplier
	Choices       int        `yaml:"choices"`        // answers shown per question
	Spread        int        `yaml:"spread"`         // wrong answers lie within ±Spread of the product
	PraiseRate    float64    `yaml:"praise_rate"`    // speech rate of the "good job" cheer
	Timing        Timing     `yaml:"timing"`
	Voice         core.Voice `yaml:"voice"`
}

// SafariConfig contains all configuration for the Sound Safari game.
type SafariConfig struct {
	Animals     []Animal    `yaml:"animals"`
	Progression Progression `yaml:"progression"`
	Pan         float64     `yaml:"pan"` // stereo position magnitude, 0..1
	Timing      Timing      `yaml:"timing"`
	Voice       core.Voice  `yaml:"voice"`
}

// Animal is a sound source in the safari.
type Animal struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"` // e.g. "mighty roar"
	Frequency   float64       `yaml:"frequency"`
	Duration    time.Duration `yaml:"duration"`
	Waveform    string        `yaml:"waveform"`
	Level       int           `yaml:"level"` // first level the animal appears on
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// StartLevelForPreset returns the level a preset starts on, given the
// highest level a game has.
func StartLevelForPreset(preset DifficultyPreset, maxLevel int) int {
	if maxLevel < 1 {
		return 1
	}
	switch preset {
	case DifficultyNormal:
		return (maxLevel + 1) / 2
	case DifficultyHard:
		return maxLevel
	default:
		return 1
	}
}
