// Package maths implements Multiplication Practice: ten questions from
// one times table, each answered by picking one of four products.
package maths

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/vovakirdan/learning-arcade/internal/config"
	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/games/quiz"
	"github.com/vovakirdan/learning-arcade/internal/registry"
	"github.com/vovakirdan/learning-arcade/internal/round"
)

// ID is the route name of the game.
const ID = "maths"

var (
	mu         sync.RWMutex
	configPath string
	table      int
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	configPath = path
}

// SetTable selects the times table to practice. Zero picks the first
// configured table.
func SetTable(n int) {
	mu.Lock()
	defer mu.Unlock()
	table = n
}

// Table returns the selected times table.
func Table() int {
	mu.RLock()
	defer mu.RUnlock()
	return table
}

// Tables returns the tables offered by the configuration.
func Tables() []int {
	return loadConfig().Tables
}

func loadConfig() config.MathsConfig {
	mu.RLock()
	path := configPath
	mu.RUnlock()

	cfg, err := config.LoadMaths(path)
	if err != nil {
		return config.DefaultMathsConfig()
	}
	return cfg
}

// Source draws distinct multipliers for one table.
type Source struct {
	cfg config.MathsConfig
}

// NewSource creates a multiplication round source.
func NewSource(cfg config.MathsConfig) *Source {
	return &Source{cfg: cfg}
}

// Rules returns the engine rules.
func (s *Source) Rules() round.Rules {
	return round.Rules{
		Questions:   s.cfg.Questions,
		RetryOnMiss: true,
		Timing:      s.cfg.Timing,
		Voice:       s.cfg.Voice,
	}
}

// ResolveTable maps a requested table onto the configured ones.
func (s *Source) ResolveTable(n int) int {
	if len(s.cfg.Tables) == 0 {
		return core.Max(n, 1)
	}
	for _, t := range s.cfg.Tables {
		if t == n {
			return n
		}
	}
	return s.cfg.Tables[0]
}

// Begin implements round.Source.
func (s *Source) Begin(*round.Session, *rand.Rand) {}

// Next asks the table times a multiplier not yet used this session.
func (s *Source) Next(sess *round.Session, rng *rand.Rand) round.Prompt {
	t := sess.Level
	limit := core.Max(s.cfg.MaxMultiplier, 1)

	var m int
	free := make([]int, 0, limit)
	for i := 1; i <= limit; i++ {
		if !sess.WasDrawn(problemID(t, i)) {
			free = append(free, i)
		}
	}
	if len(free) > 0 {
		m = free[rng.Intn(len(free))]
	} else {
		m = rng.Intn(limit) + 1
	}

	product := t * m
	return round.Prompt{
		ID:      problemID(t, m),
		Target:  strconv.Itoa(product),
		Text:    fmt.Sprintf("%d × %d", t, m),
		Subject: fmt.Sprintf("%d times %d", t, m),
		Choices: round.Itoa(round.NumericChoices(rng, product, s.cfg.Choices, s.cfg.Spread)),
	}
}

func problemID(table, m int) string {
	return fmt.Sprintf("%dx%d", table, m)
}

// Check implements round.Source.
func (s *Source) Check(p round.Prompt, answer string) bool {
	return answer == p.Target
}

// Narrate implements round.Source.
func (s *Source) Narrate(ev round.Event, sess round.Session, p round.Prompt) round.Line {
	switch ev {
	case round.EventIntro:
		return round.Say(fmt.Sprintf("Starting multiplication table of %d. Here's your first question.", sess.Level))
	case round.EventAsk:
		return round.Say(fmt.Sprintf("Question %d: %s", sess.RoundIndex, p.Subject))
	case round.EventCorrect:
		return round.Line{Text: "Good job!", Rate: s.cfg.PraiseRate}
	case round.EventIncorrect:
		return round.Say("Try again")
	case round.EventComplete:
		return round.Say(fmt.Sprintf("Congratulations! You completed the table of %d! You got %d out of %d correct.",
			sess.Level, sess.Score, s.cfg.Questions))
	case round.EventGreeting:
		return round.Say("Hello! I am your math buddy. Welcome to the multiplication game! Choose a table to practice.")
	case round.EventInstructions:
		return round.Say(fmt.Sprintf("First, choose a table to practice. You will see %d questions. "+
			"For each question, pick the right answer by clicking on it or pressing number keys 1, 2, 3, or 4. "+
			"I will cheer for you when you get it right!", s.cfg.Questions))
	}
	return round.Line{}
}

type face struct {
	src *Source
}

func (f face) Label(answer string) quiz.Label {
	return quiz.Label{Text: answer, Color: core.ColorBrightWhite}
}

func (f face) Stimulus(v round.Snapshot) []string {
	if v.Round == nil {
		return []string{"Get ready…"}
	}
	return []string{v.Round.Prompt.Text + " = ?"}
}

func (f face) Status(v round.Snapshot) string {
	n := core.Min(v.Session.RoundIndex, f.src.cfg.Questions)
	return fmt.Sprintf("Table of %d · Question %d of %d · Score %d", v.Session.Level, n, f.src.cfg.Questions, v.Session.Score)
}

func (f face) Welcome(start round.StartConfig) []string {
	t := start.Level
	return []string{
		"Multiplication Practice",
		"",
		"Hello! I am your math buddy.",
		fmt.Sprintf("Today we practice the table of %d.", t),
		fmt.Sprintf("You will see %d questions. Pick the answer with 1-4 or a click.", f.src.cfg.Questions),
	}
}

func (f face) Finale(v round.Snapshot) []string {
	lines := []string{
		"🌟 Congratulations! 🌟",
		"",
		fmt.Sprintf("You completed the table of %d!", v.Session.Level),
		fmt.Sprintf("You got %d out of %d correct.", v.Session.Score, f.src.cfg.Questions),
	}
	if v.Session.Misses > 0 {
		lines = append(lines, fmt.Sprintf("Tries that needed another go: %d", v.Session.Misses))
	}
	return lines
}

func (f face) Help() string {
	return "1-4/click answer · space repeat · i help · r restart · b menu"
}

// New creates a Multiplication Practice game.
func New() *quiz.Game {
	var src *Source
	return quiz.New(quiz.Definition{
		ID:          ID,
		Title:       "Multiplication Practice",
		Description: "Practice times tables from 2 to 12 with a friendly math buddy",
		Theme:       core.ColorBrightGreen,
		Columns:     4,
		BoxWidth:    12,
		BoxHeight:   5,
		NewSource: func() (round.Source, quiz.Face) {
			src = NewSource(loadConfig())
			return src, face{src: src}
		},
		StartConfig: func() round.StartConfig {
			return round.StartConfig{Level: src.ResolveTable(Table())}
		},
	})
}

func init() {
	registry.Register(ID, 40, func() registry.Game {
		return New()
	})
}
