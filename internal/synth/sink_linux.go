//go:build linux

package synth

// DefaultSink returns the platform audio output. On Linux that is an
// installed command-line player (PulseAudio or ALSA).
func DefaultSink() (Sink, error) {
	s, err := NewCommandSink()
	if err != nil {
		return nil, err
	}
	return s, nil
}
