package synth

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/learning-arcade/internal/core"
)

var lion = Profile{Name: "Lion", Frequency: 150, Duration: 1500 * time.Millisecond, Waveform: core.WaveSawtooth}

func TestEnvelopeStages(t *testing.T) {
	d := 2 * time.Second
	assert.InDelta(t, 0.0, Envelope(0, d), 1e-9)
	assert.InDelta(t, 0.15, Envelope(50*time.Millisecond, d), 1e-9)
	assert.InDelta(t, 0.3, Envelope(100*time.Millisecond, d), 1e-9)
	assert.InDelta(t, 0.1, Envelope(1400*time.Millisecond, d), 1e-9)
	assert.InDelta(t, 0.01, Envelope(d, d), 1e-9)
	assert.Equal(t, 0.0, Envelope(d+time.Millisecond, d))

	// Decay is monotonic after the attack.
	prev := Envelope(100*time.Millisecond, d)
	for at := 150 * time.Millisecond; at <= d; at += 50 * time.Millisecond {
		g := Envelope(at, d)
		assert.LessOrEqual(t, g, prev)
		prev = g
	}
}

func TestPanGains(t *testing.T) {
	l, r := PanGains(0)
	assert.InDelta(t, l, r, 1e-9)

	l, r = PanGains(-0.8)
	assert.Greater(t, l, r)
	assert.InDelta(t, 1.0, l*l+r*r, 1e-9, "equal power")

	l, r = PanGains(1)
	assert.InDelta(t, 0.0, l, 1e-9)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestRenderPansToDirection(t *testing.T) {
	left := Render(lion.Tone(Left), 1)
	require.Len(t, left, 2*int(1.5*SampleRate))
	l, r := Peak(left)
	assert.Greater(t, l, 2*r, "left tone is louder on the left channel")

	right := Render(lion.Tone(Right), 1)
	l, r = Peak(right)
	assert.Greater(t, r, 2*l)
}

func TestRenderPeakFollowsEnvelope(t *testing.T) {
	bird := Profile{Name: "Bird", Frequency: 2000, Duration: 800 * time.Millisecond, Waveform: core.WaveSine}
	samples := Render(core.Tone{Frequency: bird.Frequency, Duration: bird.Duration, Waveform: bird.Waveform}, 1)
	l, r := Peak(samples)
	// Centered: each channel carries cos(pi/4) of a 0.3 peak.
	want := 0.3 * 0.7071 * 32767
	assert.InDelta(t, want, float64(l), want*0.05)
	assert.InDelta(t, float64(l), float64(r), 2)
}

func TestRenderEmpty(t *testing.T) {
	assert.Nil(t, Render(core.Tone{Frequency: 100}, 1))
	assert.Nil(t, Render(core.Tone{Duration: time.Second}, 1))
}

func TestWriteWAVHeader(t *testing.T) {
	pcm := PCM([]int16{1, -1, 2, -2})
	var buf bytes.Buffer
	require.NoError(t, WriteWAV(&buf, StereoFormat, pcm))

	b := buf.Bytes()
	require.Len(t, b, 44+len(pcm))
	assert.Equal(t, "RIFF", string(b[0:4]))
	assert.Equal(t, "WAVE", string(b[8:12]))
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(b[22:24]))
	assert.Equal(t, uint32(SampleRate), binary.LittleEndian.Uint32(b[24:28]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(b[40:44]))
	assert.Equal(t, pcm, b[44:])
}

func TestGraphPlaysThroughSink(t *testing.T) {
	sink := &MemorySink{}
	g := NewGraph(sink, nil)
	g.PlaySound(context.Background(), lion, Left)
	require.NoError(t, g.Close())

	clips := sink.Clips()
	require.Len(t, clips, 1)
	assert.Len(t, clips[0], 4*int(1.5*SampleRate))
	assert.Equal(t, 1, g.Played())

	g.PlaySound(context.Background(), lion, Right)
	assert.Equal(t, 1, g.Played(), "closed graph drops tones")
}

func TestGraphWaitAndGain(t *testing.T) {
	sink := &MemorySink{}
	g := NewGraph(sink, nil)
	defer g.Close()

	g.SetGain(0)
	g.PlaySound(context.Background(), lion, Right)
	g.Wait()

	clips := sink.Clips()
	require.Len(t, clips, 1, "Wait returns after playback")
	assert.Equal(t, make([]byte, len(clips[0])), clips[0], "zero gain is silent")
}

func TestGraphWithoutSink(t *testing.T) {
	g := NewGraph(nil, nil)
	g.PlaySound(context.Background(), lion, Left)
	assert.Equal(t, 0, g.Played())
	require.NoError(t, g.Close())
}

func TestLazyBuildsOnce(t *testing.T) {
	builds := 0
	l := NewLazy(func() *Graph {
		builds++
		return NewGraph(&MemorySink{}, nil)
	})
	assert.False(t, l.Created())
	require.NoError(t, l.Close())

	g1, g2 := l.Get(), l.Get()
	assert.Same(t, g1, g2)
	assert.Equal(t, 1, builds)
	assert.True(t, l.Created())
	require.NoError(t, l.Close())
}

func TestCommandSinkWritesWAV(t *testing.T) {
	var gotName string
	var gotArgs []string
	var header []byte
	s := &CommandSink{
		player: Player{Name: "aplay", Args: []string{"-q"}},
		path:   "/usr/bin/aplay",
		run: func(_ context.Context, name string, args ...string) error {
			gotName, gotArgs = name, args
			data, err := os.ReadFile(args[len(args)-1])
			if err == nil {
				header = data[:4]
			}
			return err
		},
	}

	require.NoError(t, s.Play(context.Background(), StereoFormat, PCM([]int16{0, 0})))
	assert.Equal(t, "/usr/bin/aplay", gotName)
	require.Len(t, gotArgs, 2)
	assert.Equal(t, "-q", gotArgs[0])
	assert.Equal(t, "RIFF", string(header))

	_, err := os.Stat(gotArgs[1])
	assert.True(t, os.IsNotExist(err), "temp file removed")
}
