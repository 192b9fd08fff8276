package voice

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/learning-arcade/internal/core"
)

// fakeRunner records calls and blocks each utterance until cancelled.
type fakeRunner struct {
	mu        sync.Mutex
	calls     [][]string
	cancelled []string
	started   chan string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{started: make(chan string, 16)}
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) error {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()
	if len(args) == 0 || args[0] == "-C" {
		return nil
	}
	text := args[len(args)-1]
	f.started <- text
	<-ctx.Done()
	f.mu.Lock()
	f.cancelled = append(f.cancelled, text)
	f.mu.Unlock()
	return ctx.Err()
}

func (f *fakeRunner) wasCancelled(text string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cancelled {
		if c == text {
			return true
		}
	}
	return false
}

func TestCommandLatestWins(t *testing.T) {
	fr := newFakeRunner()
	n := NewCommand(Engines[0], "/usr/bin/espeak-ng", WithRunner(fr.run))

	n.Speak("first", core.DefaultVoice())
	require.Equal(t, "first", <-fr.started)

	n.Speak("second", core.DefaultVoice())
	require.Equal(t, "second", <-fr.started)

	assert.Eventually(t, func() bool { return fr.wasCancelled("first") }, time.Second, 5*time.Millisecond)
	assert.False(t, fr.wasCancelled("second"))

	require.NoError(t, n.Close())
	assert.True(t, fr.wasCancelled("second"))
}

func TestCommandWaitLetsSpeechFinish(t *testing.T) {
	var spoken []string
	run := func(_ context.Context, _ string, args ...string) error {
		spoken = append(spoken, args[len(args)-1])
		return nil
	}
	n := NewCommand(Engines[0], "espeak-ng", WithRunner(run))

	n.Speak("hello", core.DefaultVoice())
	n.Wait()
	assert.Equal(t, []string{"hello"}, spoken)
	require.NoError(t, n.Close())
}

func TestCommandSkipsEmptyText(t *testing.T) {
	fr := newFakeRunner()
	n := NewCommand(Engines[0], "espeak-ng", WithRunner(fr.run))
	n.Speak("", core.DefaultVoice())
	require.NoError(t, n.Close())
	assert.Empty(t, fr.calls)
}

func TestDaemonEngineStopsOnCancel(t *testing.T) {
	fr := newFakeRunner()
	n := NewCommand(Engines[2], "spd-say", WithRunner(fr.run))

	n.Speak("hello", core.DefaultVoice())
	<-fr.started
	n.Cancel()
	require.NoError(t, n.Close())

	fr.mu.Lock()
	defer fr.mu.Unlock()
	require.Len(t, fr.calls, 2)
	assert.Equal(t, []string{"spd-say", "-C"}, fr.calls[1])
}

func TestDaemonEngineSkipsStopAfterSpeechEnds(t *testing.T) {
	var mu sync.Mutex
	var calls [][]string
	run := func(_ context.Context, _ string, args ...string) error {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, args)
		return nil
	}
	n := NewCommand(Engines[2], "spd-say", WithRunner(run))

	n.Speak("one", core.DefaultVoice())
	n.Wait()
	n.Speak("two", core.DefaultVoice())
	n.Wait()
	n.Cancel()
	require.NoError(t, n.Close())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.NotEqual(t, "-C", c[0], "finished speech needs no stop command")
	}
}

func TestDaemonStopDoesNotBlockSpeak(t *testing.T) {
	release := make(chan struct{})
	started := make(chan string, 4)
	run := func(ctx context.Context, _ string, args ...string) error {
		if args[0] == "-C" {
			<-release
			return nil
		}
		started <- args[len(args)-1]
		<-ctx.Done()
		return ctx.Err()
	}
	n := NewCommand(Engines[2], "spd-say", WithRunner(run))

	n.Speak("one", core.DefaultVoice())
	require.Equal(t, "one", <-started)

	returned := make(chan struct{})
	go func() {
		n.Speak("two", core.DefaultVoice())
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Speak waited on the stop command")
	}

	select {
	case text := <-started:
		t.Fatalf("%q started before the previous speech was stopped", text)
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	require.Equal(t, "two", <-started)
	require.NoError(t, n.Close())
}

func TestEngineArgs(t *testing.T) {
	v := core.Voice{Rate: 0.8, Pitch: 1.1, Volume: 0.8}

	assert.Equal(t, []string{"-s", "140", "-p", "55", "-a", "80", "hi"}, espeakArgs("hi", v))
	assert.Equal(t, []string{"-w", "-r", "-20", "-p", "10", "-i", "60", "hi"}, spdArgs("hi", v))
	assert.Equal(t, []string{"-r", "140", "hi"}, sayArgs("hi", v))

	// Zero values fall back to normal speech.
	assert.Equal(t, []string{"-s", "175", "-p", "50", "-a", "100", "x"}, espeakArgs("x", core.Voice{}))
}

func TestCaptions(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewCaptions(3 * time.Second)
	c.now = func() time.Time { return now }

	assert.Equal(t, "", c.Line())
	c.Speak("Find the red color", core.DefaultVoice())
	assert.Equal(t, "Find the red color", c.Line())
	assert.Equal(t, 1, c.Count())

	now = now.Add(4 * time.Second)
	assert.Equal(t, "", c.Line(), "expired")

	c.Speak("Well done!", core.DefaultVoice())
	c.Cancel()
	assert.Equal(t, "", c.Line())
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewCaptions(0), NewCaptions(0)
	m := Multi{a, b, Nop{}}
	m.Speak("Starting Color Match!", core.DefaultVoice())
	assert.Equal(t, "Starting Color Match!", a.Line())
	assert.Equal(t, "Starting Color Match!", b.Line())

	m.Cancel()
	assert.Equal(t, "", a.Line())
	assert.Equal(t, "", b.Line())
}
