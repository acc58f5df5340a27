package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDetectShortWindowIsNotOK(t *testing.T) {
	d := NewDetector(Audible)
	_, ok := d.Detect(make([]float64, Audible.SamplesPerSymbol()-1))
	assert.False(t, ok)
}

func TestToneDetectRoundTripNoNoise(t *testing.T) {
	for _, p := range []Profile{Audible, Ultrasonic} {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			d := NewDetector(p)
			for s := range p.Freqs {
				got, ok := d.Detect(Tone(p, s))
				assert.True(t, ok)
				assert.Equal(t, s, got, "tone for symbol %d detected as %d", s, got)
			}
		})
	}
}

func TestDetectAllRecoversSymbolSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.SampledFrom([]Profile{Audible, Ultrasonic}).Draw(t, "profile")
		n := rapid.IntRange(0, 16).Draw(t, "n")

		syms := make([]int, n)
		for i := range syms {
			syms[i] = rapid.IntRange(0, len(p.Freqs)-1).Draw(t, "sym")
		}

		pcm := ToneSequence(p, syms)
		got := NewDetector(p).DetectAll(pcm)
		assert.Equal(t, syms, got)
	})
}
