package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeFrameRoundTripNoNoise(t *testing.T) {
	for _, p := range []Profile{Audible, Ultrasonic} {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			frame := []byte{0x03, 0x2A, 0x04, 'p', 'i', 'n', 'g', 0x00, 0x9D}
			pcm := EncodeFrameToPCM16(p, frame)
			got := DecodeFramePCM16(p, pcm)
			assert.Equal(t, frame, got)
		})
	}
}

func TestEncodeFrameUsesPreambleOnlyWhenConfigured(t *testing.T) {
	frame := []byte{0x00}
	audiblePCM := EncodeFrame(Audible, frame)
	ultrasonicPCM := EncodeFrame(Ultrasonic, frame)

	assert.Equal(t, len(BitsToSymbols(BytesToBits(frame), Audible.BitsPerSymbol()))*Audible.SamplesPerSymbol(), len(audiblePCM))

	expectedUltrasonicSymbols := len(Ultrasonic.Preamble) + len(BitsToSymbols(BytesToBits(frame), Ultrasonic.BitsPerSymbol()))
	assert.Equal(t, expectedUltrasonicSymbols*Ultrasonic.SamplesPerSymbol(), len(ultrasonicPCM))
}
