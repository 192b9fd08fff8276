package synth

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// Player is an external program that plays a WAV file.
type Player struct {
	Name string
	Args []string // placed before the file name
}

// Players lists the supported audio players in detection order.
var Players = []Player{
	{Name: "paplay"},
	{Name: "aplay", Args: []string{"-q"}},
	{Name: "afplay"},
}

// CommandSink plays audio by writing a temporary WAV file and running an
// external player on it.
type CommandSink struct {
	player Player
	path   string
	run    func(ctx context.Context, name string, args ...string) error
}

// NewCommandSink detects an installed player.
func NewCommandSink() (*CommandSink, error) {
	for _, p := range Players {
		if path, err := exec.LookPath(p.Name); err == nil {
			return &CommandSink{player: p, path: path, run: runCommand}, nil
		}
	}
	return nil, ErrNoSink
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Player returns the name of the player in use.
func (s *CommandSink) Player() string {
	return s.player.Name
}

// Play writes pcm to a temporary file and plays it.
func (s *CommandSink) Play(ctx context.Context, f Format, pcm []byte) error {
	tmp, err := os.CreateTemp("", "arcade-tone-*.wav")
	if err != nil {
		return fmt.Errorf("synth: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteWAV(tmp, f, pcm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("synth: close temp file: %w", err)
	}

	args := append(append([]string(nil), s.player.Args...), tmp.Name())
	if err := s.run(ctx, s.path, args...); err != nil {
		return fmt.Errorf("synth: %s: %w", s.player.Name, err)
	}
	return nil
}

// MemorySink records played audio instead of sounding it.
type MemorySink struct {
	mu    sync.Mutex
	clips [][]byte
}

// Play stores a copy of pcm.
func (m *MemorySink) Play(_ context.Context, _ Format, pcm []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clips = append(m.clips, append([]byte(nil), pcm...))
	return nil
}

// Clips returns the recorded clips.
func (m *MemorySink) Clips() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.clips...)
}
