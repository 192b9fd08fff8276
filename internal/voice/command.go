package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/learning-arcade/internal/core"
)

// ErrNoEngine is returned when no speech command is installed.
var ErrNoEngine = errors.New("voice: no text-to-speech command found")

// Engine describes a command-line speech synthesizer.
type Engine struct {
	Name string
	// Args builds the command line for one utterance.
	Args func(text string, v core.Voice) []string
	// StopArgs, if set, is run on cancel for engines that speak through a
	// daemon, where killing the client does not stop the audio.
	StopArgs []string
}

// Engines lists the supported speech commands in detection order.
var Engines = []Engine{
	{Name: "espeak-ng", Args: espeakArgs},
	{Name: "espeak", Args: espeakArgs},
	{Name: "spd-say", Args: spdArgs, StopArgs: []string{"-C"}},
	{Name: "say", Args: sayArgs},
}

// espeak: -s words per minute (175 normal), -p pitch 0-99 (50 normal),
// -a amplitude 0-200 (100 normal).
func espeakArgs(text string, v core.Voice) []string {
	return []string{
		"-s", strconv.Itoa(scale(v.Rate, 175, 80, 450)),
		"-p", strconv.Itoa(scale(v.Pitch, 50, 0, 99)),
		"-a", strconv.Itoa(scale(v.Volume, 100, 0, 200)),
		text,
	}
}

// spd-say: rate, pitch and volume on -100..100 with 0 as normal (volume
// 0.5 maps to 0). -w waits for the utterance so the process lives as long
// as the speech.
func spdArgs(text string, v core.Voice) []string {
	return []string{
		"-w",
		"-r", strconv.Itoa(offset(v.Rate)),
		"-p", strconv.Itoa(offset(v.Pitch)),
		"-i", strconv.Itoa(offset(v.Volume * 2)),
		text,
	}
}

// say (macOS): -r words per minute. Pitch and volume are not exposed.
func sayArgs(text string, v core.Voice) []string {
	return []string{"-r", strconv.Itoa(scale(v.Rate, 175, 80, 450)), text}
}

func scale(f float64, normal, lo, hi int) int {
	if f <= 0 {
		f = 1
	}
	n := int(math.Round(f * float64(normal)))
	return min(max(n, lo), hi)
}

func offset(f float64) int {
	if f <= 0 {
		f = 1
	}
	n := int(math.Round((f - 1) * 100))
	return min(max(n, -100), 100)
}

// Runner runs a command until it exits or ctx is cancelled.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Detect returns the first installed speech engine.
func Detect() (Engine, string, error) {
	for _, e := range Engines {
		if path, err := exec.LookPath(e.Name); err == nil {
			return e, path, nil
		}
	}
	return Engine{}, "", ErrNoEngine
}

// Command speaks through an external TTS program. Each utterance runs in
// its own process; starting a new one kills the previous.
type Command struct {
	engine Engine
	path   string
	run    Runner
	logger *log.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc // set while an utterance is live
	seq     uint64
	stopped <-chan struct{} // closed when the last stop command finished
	wg      sync.WaitGroup
}

// CommandOption configures a Command narrator.
type CommandOption func(*Command)

// WithRunner replaces process execution, for tests.
func WithRunner(r Runner) CommandOption {
	return func(c *Command) { c.run = r }
}

// WithLogger sets the logger used for speech failures.
func WithLogger(l *log.Logger) CommandOption {
	return func(c *Command) { c.logger = l }
}

// NewCommand creates a narrator for a specific engine binary.
func NewCommand(engine Engine, path string, opts ...CommandOption) *Command {
	c := &Command{
		engine: engine,
		path:   path,
		run:    execRunner,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// DetectCommand creates a narrator for the first installed engine.
func DetectCommand(opts ...CommandOption) (*Command, error) {
	engine, path, err := Detect()
	if err != nil {
		return nil, err
	}
	return NewCommand(engine, path, opts...), nil
}

// Engine returns the engine name.
func (c *Command) Engine() string {
	return c.engine.Name
}

// Speak cancels the current utterance and starts text. It never waits on
// a process: speech and any stop command run in the background, in order.
func (c *Command) Speak(text string, v core.Voice) {
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c.seq++
	id := c.seq
	c.cancel = cancel
	after := c.stopped
	args := c.engine.Args(text, v)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.finish(id, cancel)
		if after != nil {
			select {
			case <-after:
			case <-ctx.Done():
				return
			}
		}
		if err := c.run(ctx, c.path, args...); err != nil && ctx.Err() == nil {
			c.logger.Debug("speech failed", "engine", c.engine.Name, "error", err)
		}
	}()
}

// finish marks utterance id as done unless a newer one replaced it.
func (c *Command) finish(id uint64, cancel context.CancelFunc) {
	cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == id {
		c.cancel = nil
	}
}

// Cancel stops the current utterance.
func (c *Command) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Wait blocks until the current utterance has been spoken.
func (c *Command) Wait() {
	c.wg.Wait()
}

// Close stops speech and waits for the speaking process to exit.
func (c *Command) Close() error {
	c.Cancel()
	c.wg.Wait()
	return nil
}

// stopLocked cancels the live utterance, if any. Daemon engines also get
// their stop command; the next utterance waits for it.
func (c *Command) stopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	if len(c.engine.StopArgs) == 0 {
		return
	}

	done := make(chan struct{})
	c.stopped = done
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)
		if err := c.run(context.Background(), c.path, c.engine.StopArgs...); err != nil {
			c.logger.Debug("speech stop failed", "engine", c.engine.Name, "error", err)
		}
	}()
}

// String implements fmt.Stringer.
func (c *Command) String() string {
	return fmt.Sprintf("%s (%s)", c.engine.Name, c.path)
}
