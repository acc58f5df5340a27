// Package wavio is the PCM artifact codec: mono 16-bit signed
// little-endian samples in a standard RIFF/WAVE container. This is one
// of the two "external collaborators" the core modem never touches
// directly (the other is internal/audiodevice); file-mode sessions
// depend only on the Write/Read functions below.
//
// Grounded on the go-audio/wav + go-audio/audio encode path in
// internal/extract/extract.go of this codebase's CS2-voice-tools
// lineage (IntBuffer -> wav.Encoder.Write).
package wavio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/acoustictx/acoustic-modem/internal/modemerr"
)

const (
	bitDepth    = 16
	numChannels = 1
)

// WriteArtifact encodes pcm as a mono 16-bit WAV file at sampleRate.
func WriteArtifact(path string, pcm []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", modemerr.ErrIO, path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, numChannels, 1)

	data := make([]int, len(pcm))
	for i, v := range pcm {
		data[i] = int(v)
	}

	buf := &audio.IntBuffer{
		Data:           data,
		SourceBitDepth: bitDepth,
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: numChannels,
		},
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w: writing %s: %v", modemerr.ErrIO, path, err)
	}
	return enc.Close()
}

// ReadArtifact decodes a mono 16-bit WAV file into its raw samples and
// sample rate.
func ReadArtifact(path string) (pcm []int16, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: opening %s: %w", modemerr.ErrIO, path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s is not a valid WAV file", modemerr.ErrIO, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: decoding %s: %v", modemerr.ErrIO, path, err)
	}

	pcm = make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		pcm[i] = int16(v)
	}
	return pcm, int(dec.SampleRate), nil
}
