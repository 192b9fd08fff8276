//go:build !linux

package synth

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

var (
	otoCtx   *oto.Context
	otoErr   error
	otoOnce  sync.Once
	otoSetup = StereoFormat
)

func initOto() {
	var ready chan struct{}
	otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
		SampleRate:   otoSetup.SampleRate,
		ChannelCount: otoSetup.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	})
	if otoErr != nil {
		return
	}
	<-ready
}

// OtoSink plays audio through the system mixer via oto. oto allows one
// context per process, so every OtoSink shares it.
type OtoSink struct{}

// Play plays pcm and waits for it to finish.
func (OtoSink) Play(ctx context.Context, f Format, pcm []byte) error {
	otoOnce.Do(initOto)
	if otoErr != nil {
		return fmt.Errorf("synth: oto init: %w", otoErr)
	}
	if f != otoSetup {
		return fmt.Errorf("synth: oto: unsupported format %+v", f)
	}

	player := otoCtx.NewPlayer(bytes.NewReader(pcm))
	defer player.Close()
	player.Play()

	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return nil
		case <-tick.C:
		}
	}
	return nil
}

// DefaultSink returns the platform audio output.
func DefaultSink() (Sink, error) {
	return OtoSink{}, nil
}
