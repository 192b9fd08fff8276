package synth

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/learning-arcade/internal/core"
)

// Direction is the side a sound comes from.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// Pan returns the stereo position for d at the given magnitude.
func (d Direction) Pan(magnitude float64) float64 {
	if d == Left {
		return -magnitude
	}
	return magnitude
}

// DefaultPan is how far left or right a sound is placed.
const DefaultPan = 0.8

// Profile is an animal call.
type Profile struct {
	Name      string
	Frequency float64
	Duration  time.Duration
	Waveform  core.Waveform
}

// Tone places p on one side.
func (p Profile) Tone(d Direction) core.Tone {
	return core.Tone{
		Name:      p.Name,
		Frequency: p.Frequency,
		Duration:  p.Duration,
		Waveform:  p.Waveform,
		Pan:       d.Pan(DefaultPan),
	}
}

// Sink plays PCM audio. Play blocks until playback ends or ctx is done.
type Sink interface {
	Play(ctx context.Context, f Format, pcm []byte) error
}

// ErrNoSink is returned when no audio output is available.
var ErrNoSink = errors.New("synth: no audio output available")

// Graph is the shared output chain: master gain, panner, sink. It is
// created once and reused for every tone. Safe for concurrent use.
type Graph struct {
	mu     sync.Mutex
	sink   Sink
	gain   float64
	logger *log.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	played int
}

// NewGraph connects a graph to sink. A nil sink yields a graph that
// silently drops every tone.
func NewGraph(sink Sink, logger *log.Logger) *Graph {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Graph{sink: sink, gain: 1, logger: logger, ctx: ctx, cancel: cancel}
}

// SetGain sets the master gain, 0..1.
func (g *Graph) SetGain(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gain = core.ClampF(v, 0, 1)
}

// PlaySound plays profile p from direction d.
func (g *Graph) PlaySound(ctx context.Context, p Profile, d Direction) {
	g.Play(ctx, p.Tone(d))
}

// Play renders t and plays it in the background. It returns at once.
func (g *Graph) Play(ctx context.Context, t core.Tone) {
	g.mu.Lock()
	sink, gain := g.sink, g.gain
	if sink == nil || g.ctx.Err() != nil {
		g.mu.Unlock()
		return
	}
	g.played++
	g.wg.Add(1)
	g.mu.Unlock()

	go func() {
		defer g.wg.Done()
		playCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		stop := context.AfterFunc(g.ctx, cancel)
		defer stop()

		pcm := PCM(Render(t, gain))
		if err := sink.Play(playCtx, StereoFormat, pcm); err != nil && playCtx.Err() == nil {
			g.logger.Debug("tone playback failed", "tone", t.Name, "error", err)
		}
	}()
}

// Played returns how many tones were sent to the sink.
func (g *Graph) Played() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.played
}

// Wait blocks until every tone started so far has played.
func (g *Graph) Wait() {
	g.wg.Wait()
}

// Close stops playback and waits for it to finish.
func (g *Graph) Close() error {
	g.cancel()
	g.wg.Wait()
	return nil
}

// Lazy builds a Graph on first use.
type Lazy struct {
	mu    sync.Mutex
	graph *Graph
	build func() *Graph
}

// NewLazy defers graph construction to the first Get.
func NewLazy(build func() *Graph) *Lazy {
	return &Lazy{build: build}
}

// Get returns the graph, creating it if needed.
func (l *Lazy) Get() *Graph {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.graph == nil {
		l.graph = l.build()
	}
	return l.graph
}

// Created reports whether the graph exists yet.
func (l *Lazy) Created() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.graph != nil
}

// Close closes the graph if it was created.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.graph == nil {
		return nil
	}
	return l.graph.Close()
}
