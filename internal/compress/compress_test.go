package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/acoustictx/acoustic-modem/internal/modemerr"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.SliceOf(rapid.Byte()).Draw(t, "in")

		compressed, err := Compress(in)
		require.NoError(t, err)

		out, err := Decompress(compressed)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestDecompressRejectsGarbage(t *testing.T) {
	_, err := Decompress([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	assert.ErrorIs(t, err, modemerr.ErrPayloadCorrupt)
}
