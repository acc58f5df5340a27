package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAudibleProfileShape(t *testing.T) {
	assert.Equal(t, 4, len(Audible.Freqs))
	assert.Equal(t, 2, Audible.BitsPerSymbol())
	assert.Equal(t, 221, Audible.SamplesPerSymbol())
	assert.False(t, Audible.UsesPreamble())
}

func TestUltrasonicProfileShape(t *testing.T) {
	assert.Equal(t, 8, len(Ultrasonic.Freqs))
	assert.Equal(t, 3, Ultrasonic.BitsPerSymbol())
	assert.Equal(t, []float64{17000, 17485, 17970, 18455, 18940, 19425, 19910, 20395}, Ultrasonic.Freqs)
	assert.True(t, Ultrasonic.UsesPreamble())
}

func TestByNameResolvesFixedProfiles(t *testing.T) {
	p, ok := ByName("audible")
	assert.True(t, ok)
	assert.Equal(t, Audible, p)

	_, ok = ByName("not-a-profile")
	assert.False(t, ok)
}
