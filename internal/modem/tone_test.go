package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestQuantizeNormalizeRoundTripIsCloseWithinOneLSB(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 256).Draw(t, "n")
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = rapid.Float64Range(-1, 1).Draw(t, "sample")
		}

		pcm := Quantize(Audible, samples)
		back := Normalize(pcm)

		for i, s := range samples {
			assert.InDelta(t, s*Audible.AmplitudeScale, back[i], 1.0/32767.0+1e-9)
		}
	})
}

func TestQuantizeClampsOverflow(t *testing.T) {
	pcm := Quantize(Profile{AmplitudeScale: 1.0}, []float64{2.0, -2.0})
	assert.Equal(t, int16(32767), pcm[0])
	assert.Equal(t, int16(-32768), pcm[1])
}
