// Package emoji implements Emoji Match: the narrator reads an everyday
// scenario and the player picks the emotion it would cause. A session is
// one pass over the scenarios.
package emoji

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/learning-arcade/internal/config"
	"github.com/vovakirdan/learning-arcade/internal/core"
	"github.com/vovakirdan/learning-arcade/internal/games/quiz"
	"github.com/vovakirdan/learning-arcade/internal/registry"
	"github.com/vovakirdan/learning-arcade/internal/round"
)

// ID is the route name of the game.
const ID = "emoji"

var (
	mu         sync.RWMutex
	configPath string
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	configPath = path
}

func loadConfig() config.EmojiConfig {
	mu.RLock()
	path := configPath
	mu.RUnlock()

	cfg, err := config.LoadEmoji(path)
	if err != nil {
		return config.DefaultEmojiConfig()
	}
	return cfg
}

// Source asks each scenario once, in file order or shuffled per session.
type Source struct {
	cfg config.EmojiConfig
}

// NewSource creates an emotion round source.
func NewSource(cfg config.EmojiConfig) *Source {
	return &Source{cfg: cfg}
}

// Rules returns the engine rules.
func (s *Source) Rules() round.Rules {
	return round.Rules{
		Questions:   len(s.cfg.Scenarios),
		RetryOnMiss: true,
		AutoStart:   true,
		Timing:      s.cfg.Timing,
		Voice:       s.cfg.Voice,
	}
}

// Emotion looks up an emotion by ID.
func (s *Source) Emotion(id string) (config.Emotion, bool) {
	for _, e := range s.cfg.Emotions {
		if e.ID == id {
			return e, true
		}
	}
	return config.Emotion{}, false
}

// Begin fixes the scenario order for the session.
func (s *Source) Begin(sess *round.Session, rng *rand.Rand) {
	sess.Order = make([]int, len(s.cfg.Scenarios))
	for i := range sess.Order {
		sess.Order[i] = i
	}
	if s.cfg.Shuffle {
		round.Shuffle(rng, sess.Order)
	}
}

// Next returns the next scenario of the session order.
func (s *Source) Next(sess *round.Session, _ *rand.Rand) round.Prompt {
	if len(sess.Order) == 0 {
		return round.Prompt{}
	}
	idx := sess.Order[sess.RoundIndex%len(sess.Order)]
	sc := s.cfg.Scenarios[idx]

	choices := make([]string, len(s.cfg.Emotions))
	for i, e := range s.cfg.Emotions {
		choices[i] = e.ID
	}
	subject := sc.Emotion
	if e, ok := s.Emotion(sc.Emotion); ok {
		subject = e.Name
	}
	return round.Prompt{
		ID:      fmt.Sprintf("scenario-%d", idx+1),
		Target:  sc.Emotion,
		Text:    sc.Text,
		Subject: subject,
		Choices: choices,
	}
}

// Check implements round.Source.
func (s *Source) Check(p round.Prompt, answer string) bool {
	return answer == p.Target
}

// Narrate implements round.Source.
func (s *Source) Narrate(ev round.Event, _ round.Session, p round.Prompt) round.Line {
	switch ev {
	case round.EventAsk:
		return round.Say(p.Text)
	case round.EventCorrect:
		return round.Say("Well done! That's correct!")
	case round.EventIncorrect:
		return round.Say("Try again! Think about how you would feel.")
	case round.EventComplete:
		return round.Say("Congratulations! You completed all the scenarios!")
	case round.EventRestart:
		return round.Say("Game restarted! Let's match emotions to scenarios.")
	case round.EventVoiceOn:
		return round.Say("Voice narration turned on")
	case round.EventInstructions:
		return round.Say("Listen to the story, then choose the face that shows how you would feel.")
	}
	return round.Line{}
}

type face struct {
	src *Source
}

func (f face) Label(answer string) quiz.Label {
	e, ok := f.src.Emotion(answer)
	if !ok {
		return quiz.Label{Text: quiz.TitleCase(answer)}
	}
	return quiz.Label{Text: e.Name, Icon: e.Emoji, Color: core.ColorByName(e.Color)}
}

func (f face) Stimulus(v round.Snapshot) []string {
	if v.Round == nil {
		return nil
	}
	return []string{"How would you feel?", "“" + v.Round.Prompt.Text + "”"}
}

func (f face) Status(v round.Snapshot) string {
	total := len(f.src.cfg.Scenarios)
	n := core.Min(v.Session.RoundIndex, total)
	return fmt.Sprintf("Scenario %d of %d · Score %d", n, total, v.Session.Score)
}

func (f face) Welcome(round.StartConfig) []string {
	return []string{"Emoji Match", "", "Match emotions and feelings with colorful emojis"}
}

func (f face) Finale(v round.Snapshot) []string {
	return []string{
		"🎉 Amazing Job! 🎉",
		"",
		"You completed all scenarios!",
		fmt.Sprintf("Final Score: %d/%d", v.Session.Score, len(f.src.cfg.Scenarios)),
	}
}

func (f face) Help() string {
	return "1-6/click pick · arrows+enter · space repeat · v voice · r restart · b menu"
}

// New creates an Emoji Match game.
func New() *quiz.Game {
	return quiz.New(quiz.Definition{
		ID:          ID,
		Title:       "Emoji Match",
		Description: "Match emotions and feelings with colorful emojis",
		Theme:       core.ColorBrightMagenta,
		Columns:     3,
		BoxWidth:    16,
		BoxHeight:   5,
		NewSource: func() (round.Source, quiz.Face) {
			src := NewSource(loadConfig())
			return src, face{src: src}
		},
	})
}

func init() {
	registry.Register(ID, 10, func() registry.Game {
		return New()
	})
}
