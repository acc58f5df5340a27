package wavio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadArtifactRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.wav")
	pcm := []int16{0, 100, -100, 32767, -32768, 1, -1}

	require.NoError(t, WriteArtifact(path, pcm, 44100))

	got, sampleRate, err := ReadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, 44100, sampleRate)
	assert.Equal(t, pcm, got)
}

func TestReadArtifactMissingFile(t *testing.T) {
	_, _, err := ReadArtifact(filepath.Join(t.TempDir(), "does-not-exist.wav"))
	assert.Error(t, err)
}
