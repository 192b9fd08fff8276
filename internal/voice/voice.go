// Package voice provides narrators: text-to-speech outputs with a
// "latest wins" policy. Speaking cancels whatever is still being said.
package voice

import (
	"sync"
	"time"

	"github.com/vovakirdan/learning-arcade/internal/core"
)

// Narrator speaks short phrases. Speak returns immediately; there is no
// completion callback. A Narrator that lacks a speech capability skips
// silently.
type Narrator interface {
	Speak(text string, v core.Voice)
	Cancel()
}

// Nop discards all narration.
type Nop struct{}

// Speak does nothing.
func (Nop) Speak(string, core.Voice) {}

// Cancel does nothing.
func (Nop) Cancel() {}

// Multi fans narration out to several narrators.
type Multi []Narrator

// Speak forwards to every narrator.
func (m Multi) Speak(text string, v core.Voice) {
	for _, n := range m {
		n.Speak(text, v)
	}
}

// Cancel forwards to every narrator.
func (m Multi) Cancel() {
	for _, n := range m {
		n.Cancel()
	}
}

// Captions keeps the latest narration line for on-screen display.
// It is safe for concurrent use.
type Captions struct {
	mu    sync.Mutex
	text  string
	at    time.Time
	now   func() time.Time
	ttl   time.Duration
	count int
}

// NewCaptions creates a caption track. Lines older than ttl are hidden;
// a zero ttl keeps the last line until cancelled.
func NewCaptions(ttl time.Duration) *Captions {
	return &Captions{ttl: ttl, now: time.Now}
}

// Speak replaces the current caption.
func (c *Captions) Speak(text string, _ core.Voice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.at = c.now()
	c.count++
}

// Cancel clears the caption.
func (c *Captions) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = ""
}

// Line returns the caption to show, or "" when there is none.
func (c *Captions) Line() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl > 0 && c.now().Sub(c.at) > c.ttl {
		return ""
	}
	return c.text
}

// Count returns how many lines have been spoken.
func (c *Captions) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
