// Package synth renders and plays the short synthetic animal calls used
// by the listening game: an oscillator with vibrato, a three-stage gain
// envelope and a stereo pan.
package synth

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/vovakirdan/learning-arcade/internal/core"
)

// SampleRate is the rate all tones are rendered at.
const SampleRate = 44100

const (
	lfoRate   = 5.0 // Hz
	lfoDepth  = 0.1 // fraction of the base frequency
	attack    = 100 * time.Millisecond
	peakGain  = 0.3
	holdGain  = 0.1 // reached at 70% of the duration
	floorGain = 0.01
)

// Format describes interleaved signed 16-bit little-endian PCM.
type Format struct {
	SampleRate int
	Channels   int
}

// StereoFormat is the format Render produces.
var StereoFormat = Format{SampleRate: SampleRate, Channels: 2}

// Envelope returns the gain at offset t into a tone of length d: a linear
// rise to 0.3 over the first 100ms, then exponential decays to 0.1 at 70%
// of d and to 0.01 at d.
func Envelope(t, d time.Duration) float64 {
	if t < 0 || t > d {
		return 0
	}
	if t < attack {
		return peakGain * float64(t) / float64(attack)
	}
	hold := time.Duration(float64(d) * 0.7)
	if hold <= attack {
		hold = attack
	}
	if t < hold {
		return expRamp(peakGain, holdGain, float64(t-attack)/float64(hold-attack))
	}
	if d <= hold {
		return holdGain
	}
	return expRamp(holdGain, floorGain, float64(t-hold)/float64(d-hold))
}

func expRamp(from, to, frac float64) float64 {
	return from * math.Pow(to/from, frac)
}

// PanGains returns equal-power left and right gains for pan in [-1, 1].
func PanGains(pan float64) (left, right float64) {
	pan = core.ClampF(pan, -1, 1)
	x := (pan + 1) / 2 * math.Pi / 2
	return math.Cos(x), math.Sin(x)
}

func oscillate(w core.Waveform, phase float64) float64 {
	cycle := phase / (2 * math.Pi)
	frac := cycle - math.Floor(cycle)
	switch w {
	case core.WaveSawtooth:
		return 2*frac - 1
	case core.WaveSquare:
		if frac < 0.5 {
			return 1
		}
		return -1
	case core.WaveTriangle:
		return 1 - 4*math.Abs(frac-0.5)
	default:
		return math.Sin(phase)
	}
}

// Render synthesizes t as interleaved stereo samples scaled by gain.
// The vibrato oscillator and the tone stop together at t.Duration.
func Render(t core.Tone, gain float64) []int16 {
	n := int(t.Duration.Seconds() * SampleRate)
	if n <= 0 || t.Frequency <= 0 {
		return nil
	}
	left, right := PanGains(t.Pan)
	out := make([]int16, 2*n)

	dt := 1.0 / SampleRate
	depth := t.Frequency * lfoDepth
	phase := 0.0
	for i := 0; i < n; i++ {
		sec := float64(i) * dt
		at := time.Duration(sec * float64(time.Second))

		s := oscillate(t.Waveform, phase) * Envelope(at, t.Duration) * gain
		out[2*i] = toInt16(s * left)
		out[2*i+1] = toInt16(s * right)

		freq := t.Frequency + depth*math.Sin(2*math.Pi*lfoRate*sec)
		phase += 2 * math.Pi * freq * dt
	}
	return out
}

func toInt16(f float64) int16 {
	f = core.ClampF(f, -1, 1)
	return int16(math.Round(f * math.MaxInt16))
}

// PCM encodes samples as little-endian bytes.
func PCM(samples []int16) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	return buf
}

// Peak returns the largest absolute sample per channel of interleaved
// stereo samples.
func Peak(samples []int16) (left, right int) {
	for i := 0; i+1 < len(samples); i += 2 {
		left = max(left, abs(int(samples[i])))
		right = max(right, abs(int(samples[i+1])))
	}
	return left, right
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
