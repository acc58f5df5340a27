package proto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/acoustictx/acoustic-modem/internal/modemerr"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		typ := Type(rapid.SampledFrom([]byte{0, 1, 2, 3, 4}).Draw(t, "type"))
		seq := rapid.Byte().Draw(t, "seq")
		payload := rapid.SliceOfN(rapid.Byte(), 0, 255).Draw(t, "payload")

		frame := Encode(typ, seq, payload)
		gotType, gotSeq, gotPayload, valid, err := Decode(frame)

		require.NoError(t, err)
		assert.True(t, valid)
		assert.Equal(t, typ, gotType)
		assert.Equal(t, seq, gotSeq)
		assert.Equal(t, payload, gotPayload)
	})
}

// A single-bit corruption anywhere in a frame must be caught: either the
// checksum fails to validate, or (if the flip landed in the length byte
// and pushed it out of range) Decode reports a structural error instead.
// Either outcome means the corruption was detected.
func TestDecodeDetectsSingleBitFlip(t *testing.T) {
	frame := Encode(TypeDATA, 5, []byte("hello"))
	for i := range frame {
		for bit := 0; bit < 8; bit++ {
			corrupted := make([]byte, len(frame))
			copy(corrupted, frame)
			corrupted[i] ^= 1 << bit

			_, _, _, valid, err := Decode(corrupted)
			if err != nil {
				structural := errors.Is(err, modemerr.ErrMalformedFrame) || errors.Is(err, modemerr.ErrUnknownType)
				assert.True(t, structural, "byte %d bit %d: unexpected error %v", i, bit, err)
				continue
			}
			assert.False(t, valid, "flipping byte %d bit %d should invalidate the checksum", i, bit)
		}
	}
}

func TestDecodeRejectsShortFrames(t *testing.T) {
	_, _, _, _, err := Decode([]byte{1, 2, 3})
	assert.ErrorIs(t, err, modemerr.ErrMalformedFrame)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	frame := Encode(TypeDATA, 0, nil)
	frame[0] = 0xFF
	_, _, _, _, err := Decode(frame)
	assert.ErrorIs(t, err, modemerr.ErrUnknownType)
}

func TestFileSYNRoundTrip(t *testing.T) {
	for _, compress := range []bool{true, false} {
		frame := EncodeFileSYN(compress)
		_, _, payload, valid, err := Decode(frame)
		require.NoError(t, err)
		assert.True(t, valid)
		assert.Equal(t, compress, DecodeFileSYN(payload))
	}
}

func TestStreamSYNRoundTripTruncatesLongNames(t *testing.T) {
	longName := "this-name-is-much-longer-than-the-32-byte-budget.bin"
	frame := EncodeStreamSYN(true, longName)
	_, _, payload, valid, err := Decode(frame)
	require.NoError(t, err)
	assert.True(t, valid)

	compressed, name := DecodeStreamSYN(payload)
	assert.True(t, compressed)
	assert.Equal(t, longName[:32], name)
}

func TestFINCarriesTotalCountInSeq(t *testing.T) {
	frame := EncodeFIN(17)
	typ, seq, payload, valid, err := Decode(frame)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, TypeFIN, typ)
	assert.Equal(t, byte(17), seq)
	assert.Empty(t, payload)
}
