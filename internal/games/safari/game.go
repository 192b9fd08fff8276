// Package safari implements Sound Safari: an animal call is played from
// the left or the right and the player points to where it came from.
// More animals join the safari as the player levels up.
package safari

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/vovakirdan/learning-arcade/internal/config"
	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/games/quiz"
	"github.com/vovakirdan/learning-arcade/internal/registry"
	"github.com/vovakirdan/learning-arcade/internal/round"
	"github.com/vovakirdan/learning-arcade/internal/synth"
)

// ID is the route name of the game.
const ID = "safari"

var (
	mu               sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       int
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	configPath = path
}

// SetDifficultyPreset picks the start level from a preset name.
func SetDifficultyPreset(preset string) {
	mu.Lock()
	defer mu.Unlock()
	difficultyPreset = config.DifficultyPreset(preset)
}

// SetStartLevel sets an explicit start level; zero clears it.
func SetStartLevel(level int) {
	mu.Lock()
	defer mu.Unlock()
	startLevel = level
}

func loadConfig() config.SafariConfig {
	mu.RLock()
	path := configPath
	mu.RUnlock()

	cfg, err := config.LoadSafari(path)
	if err != nil {
		return config.DefaultSafariConfig()
	}
	return cfg
}

func startConfig(maxLevel int) round.StartConfig {
	mu.RLock()
	defer mu.RUnlock()
	if startLevel > 0 {
		return round.StartConfig{Level: startLevel}
	}
	return round.StartConfig{
		Level: config.StartLevelForPreset(difficultyPreset, maxLevel),
		Tier:  string(difficultyPreset),
	}
}

// Source picks a random unlocked animal and a random side each round.
type Source struct {
	cfg config.SafariConfig
}

// NewSource creates a safari round source.
func NewSource(cfg config.SafariConfig) *Source {
	if cfg.Pan <= 0 {
		cfg.Pan = synth.DefaultPan
	}
	return &Source{cfg: cfg}
}

// Rules returns the engine rules.
func (s *Source) Rules() round.Rules {
	return round.Rules{
		Progression: s.cfg.Progression,
		Directional: true,
		UsesAudio:   true,
		Timing:      s.cfg.Timing,
		Voice:       s.cfg.Voice,
	}
}

// Animals returns the animals heard on level.
func (s *Source) Animals(level int) []config.Animal {
	var out []config.Animal
	for _, a := range s.cfg.Animals {
		if a.Level <= level {
			out = append(out, a)
		}
	}
	if len(out) == 0 && len(s.cfg.Animals) > 0 {
		out = s.cfg.Animals[:1]
	}
	return out
}

// LevelNames describes each level by the animals heard on it, for the
// level picker.
func LevelNames() []string {
	src := NewSource(loadConfig())
	out := make([]string, core.Max(src.cfg.Progression.MaxLevel, 1))
	for i := range out {
		var names []string
		for _, a := range src.Animals(i + 1) {
			names = append(names, a.Name)
		}
		out[i] = strings.Join(names, ", ")
	}
	return out
}

// Begin implements round.Source.
func (s *Source) Begin(*round.Session, *rand.Rand) {}

// Next picks an animal and a side.
func (s *Source) Next(sess *round.Session, rng *rand.Rand) round.Prompt {
	pool := s.Animals(sess.Level)
	if len(pool) == 0 {
		return round.Prompt{}
	}
	a := pool[rng.Intn(len(pool))]
	side := synth.Left
	if rng.Intn(2) == 1 {
		side = synth.Right
	}
	return s.prompt(a, side)
}

func (s *Source) prompt(a config.Animal, side synth.Direction) round.Prompt {
	profile := synth.Profile{
		Name:      a.Name,
		Frequency: a.Frequency,
		Duration:  a.Duration,
		Waveform:  core.Waveform(a.Waveform),
	}
	tone := profile.Tone(side)
	tone.Pan = side.Pan(s.cfg.Pan)

	return round.Prompt{
		ID:      strings.ToLower(a.Name) + "-" + string(side),
		Target:  string(side),
		Text:    fmt.Sprintf("the %s's %s", a.Name, a.Description),
		Subject: a.Name,
		Tone:    &tone,
	}
}

// Check implements round.Source.
func (s *Source) Check(p round.Prompt, answer string) bool {
	return answer == p.Target
}

// Narrate implements round.Source.
func (s *Source) Narrate(ev round.Event, sess round.Session, p round.Prompt) round.Line {
	switch ev {
	case round.EventAsk:
		return round.Say(fmt.Sprintf("Round %d. Listen carefully for %s.", sess.RoundIndex, p.Text))
	case round.EventCorrect:
		return round.Say(fmt.Sprintf("Correct! The %s was on the %s. Great listening!", p.Subject, p.Target))
	case round.EventIncorrect:
		return round.Say(fmt.Sprintf("Not quite right. The %s was on the %s. Try the next one!", p.Subject, p.Target))
	case round.EventLevelUp:
		return round.Say(fmt.Sprintf("Excellent! You've reached level %d!", sess.Level))
	case round.EventRestart:
		return round.Say("Game restarted. Press Enter or Space to start a new adventure!")
	case round.EventGreeting:
		return round.Say("Welcome to Sound Safari! Press I for instructions, or Enter to start your audio adventure!")
	case round.EventInstructions:
		return round.Say("Welcome to Sound Safari! Listen for animal sounds coming from the left or right. " +
			"Press the left arrow key if you hear the sound from the left, or the right arrow key if you hear it from the right. " +
			"Press Space or Enter to replay a sound. Press R to restart, or I for instructions. Good luck, safari explorer!")
	}
	return round.Line{}
}

type face struct {
	src *Source
}

func (f face) Label(answer string) quiz.Label {
	if answer == string(synth.Left) {
		return quiz.Label{Text: "◀ LEFT", Color: core.ColorBrightCyan}
	}
	return quiz.Label{Text: "RIGHT ▶", Color: core.ColorBrightCyan}
}

func (f face) Stimulus(v round.Snapshot) []string {
	if v.Round == nil {
		return []string{"Get ready…"}
	}
	line := "Listen for " + v.Round.Prompt.Text
	if v.Round.Resolved {
		return []string{line, fmt.Sprintf("The %s was on the %s.", v.Round.Prompt.Subject, v.Round.Prompt.Target)}
	}
	if v.State == round.StateAwaitingInput {
		return []string{line, "Where did it come from? ← or →"}
	}
	return []string{line}
}

func (f face) Status(v round.Snapshot) string {
	s := v.Session
	return fmt.Sprintf("Round %d · Level %d · Score %d · Streak %d", core.Max(s.RoundIndex, 1), s.Level, s.Score, s.Streak)
}

func (f face) Welcome(round.StartConfig) []string {
	return []string{
		"🦁 Sound Safari 🐘",
		"",
		"🎧 Put on your headphones!",
		"Listen for animal sounds coming from the left or right.",
		"← left  → right  space replay  i instructions",
	}
}

func (f face) Finale(round.Snapshot) []string { return nil }

func (f face) Help() string {
	return "←/→ answer · space replay · i instructions · r restart · b menu"
}

// New creates a Sound Safari game.
func New() *quiz.Game {
	var src *Source
	return quiz.New(quiz.Definition{
		ID:          ID,
		Title:       "Sound Safari",
		Description: "Explore animals and learn about wildlife",
		Theme:       core.ColorBrightYellow,
		BoxWidth:    16,
		BoxHeight:   5,
		NewSource: func() (round.Source, quiz.Face) {
			src = NewSource(loadConfig())
			return src, face{src: src}
		},
		StartConfig: func() round.StartConfig {
			return startConfig(src.cfg.Progression.MaxLevel)
		},
	})
}

func init() {
	registry.Register(ID, 20, func() registry.Game {
		return New()
	})
}
