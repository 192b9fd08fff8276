// Package colors implements Color Match: the narrator names a color and
// the player picks the matching block. Every five correct answers unlock a
// bigger palette, up to three levels.
package colors

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
)

// ID is the route name of the game.
const ID = "colors"

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

// SetDifficultyPreset picks the start level from a preset name
// ("easy", "normal", "hard"). Unknown names start on level 1.
func SetDifficultyPreset(preset string) {
	mu.Lock()
	defer mu.Unlock()
	difficultyPreset = config.DifficultyPreset(preset)
}

// SetStartLevel sets an explicit start level; it wins over the preset.
// Zero clears it.
func SetStartLevel(level int) {
	mu.Lock()
	defer mu.Unlock()
	startLevel = level
}

func loadConfig() config.ColorsConfig {
	mu.RLock()
	path := configPath
	mu.RUnlock()

	cfg, err := config.LoadColors(path)
	if err != nil {
		return config.DefaultColorsConfig()
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

// Source asks for the colors of the current level's palette in order,
// cycling back to the first one.
type Source struct {
	cfg config.ColorsConfig
}

// NewSource creates a color round source.
func NewSource(cfg config.ColorsConfig) *Source {
	if cfg.Progression.MaxLevel > len(cfg.Levels) {
		cfg.Progression.MaxLevel = len(cfg.Levels)
	}
	return &Source{cfg: cfg}
}

// Rules returns the engine rules.
func (s *Source) Rules() round.Rules {
	return round.Rules{
		Progression: s.cfg.Progression,
		RetryOnMiss: true,
		Timing:      s.cfg.Timing,
		Voice:       s.cfg.Voice,
	}
}

// Palette returns the swatches offered on level.
func (s *Source) Palette(level int) []config.ColorSwatch {
	if len(s.cfg.Levels) == 0 {
		return nil
	}
	i := core.Clamp(level-1, 0, len(s.cfg.Levels)-1)
	return s.cfg.Levels[i].Colors
}

// LevelNames describes each level by its colors, for the level picker.
func LevelNames() []string {
	src := NewSource(loadConfig())
	out := make([]string, src.cfg.Progression.MaxLevel)
	for i := range out {
		pal := src.Palette(i + 1)
		names := make([]string, len(pal))
		for j, c := range pal {
			names[j] = c.Name
		}
		out[i] = strings.Join(names, ", ")
	}
	return out
}

// Swatch looks up a color by name across all levels.
func (s *Source) Swatch(name string) (config.ColorSwatch, bool) {
	for _, l := range s.cfg.Levels {
		for _, c := range l.Colors {
			if c.Name == name {
				return c, true
			}
		}
	}
	return config.ColorSwatch{}, false
}

// Begin implements round.Source.
func (s *Source) Begin(*round.Session, *rand.Rand) {}

// Next returns the color under the cursor and moves the cursor on.
func (s *Source) Next(sess *round.Session, _ *rand.Rand) round.Prompt {
	pal := s.Palette(sess.Level)
	if len(pal) == 0 {
		return round.Prompt{}
	}
	target := pal[sess.Cursor%len(pal)]
	sess.Cursor = (sess.Cursor + 1) % len(pal)

	choices := make([]string, len(pal))
	for i, c := range pal {
		choices[i] = c.Name
	}
	return round.Prompt{
		ID:      target.Name,
		Target:  target.Name,
		Text:    fmt.Sprintf("Find the %s color", target.Name),
		Subject: target.Name,
		Choices: choices,
	}
}

// Check implements round.Source.
func (s *Source) Check(p round.Prompt, answer string) bool {
	return answer == p.Target
}

// Narrate implements round.Source.
func (s *Source) Narrate(ev round.Event, sess round.Session, p round.Prompt) round.Line {
	switch ev {
	case round.EventIntro:
		return round.Say("Welcome to the color matching game! Listen carefully and tap the right color.")
	case round.EventAsk:
		return round.Say(p.Text)
	case round.EventCorrect:
		return round.Say("Well done! Great job!")
	case round.EventIncorrect:
		return round.Say("Try again! You can do it!")
	case round.EventLevelUp:
		return round.Say(fmt.Sprintf("Level up! Now trying level %d!", sess.Level))
	case round.EventInstructions:
		return round.Say("Listen to the color name and tap the matching color block! Press space to hear it again.")
	}
	return round.Line{}
}

type face struct {
	src *Source
}

func (f face) Label(answer string) quiz.Label {
	sw, ok := f.src.Swatch(answer)
	if !ok {
		return quiz.Label{Text: quiz.TitleCase(answer)}
	}
	return quiz.Label{Text: sw.Name, Color: core.ColorByName(sw.Color), Swatch: true}
}

func (f face) Stimulus(v round.Snapshot) []string {
	if v.Round == nil {
		return []string{"Get ready…"}
	}
	return []string{v.Round.Prompt.Text, "Tap the color block that matches!"}
}

func (f face) Status(v round.Snapshot) string {
	done, total := f.src.cfg.Progression.Progress(v.Session.Score)
	if total == 0 || v.Session.Level >= f.src.cfg.Progression.MaxLevel {
		return fmt.Sprintf("Level %d · Score %d", v.Session.Level, v.Session.Score)
	}
	return fmt.Sprintf("Level %d · Score %d · Next level %d/%d", v.Session.Level, v.Session.Score, done, total)
}

func (f face) Welcome(round.StartConfig) []string {
	return []string{
		"Color Match Game",
		"",
		"🎧 Please use headphones for the best experience",
		"Listen to the color name and tap the matching color block!",
	}
}

func (f face) Finale(round.Snapshot) []string { return nil }

func (f face) Help() string {
	return "1-7/click pick · ←→ enter · space repeat · r restart · b menu"
}

// New creates a Color Match game.
func New() *quiz.Game {
	var src *Source
	return quiz.New(quiz.Definition{
		ID:          ID,
		Title:       "Color Match",
		Description: "Match spoken color names to the correct color blocks",
		Theme:       core.ColorBrightBlue,
		Columns:     4,
		BoxWidth:    14,
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
	registry.Register(ID, 30, func() registry.Game {
		return New()
	})
}
