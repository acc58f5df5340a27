package session

import (
	"fmt"
	"log/slog"

	"github.com/acoustictx/acoustic-modem/internal/compress"
	"github.com/acoustictx/acoustic-modem/internal/modem"
	"github.com/acoustictx/acoustic-modem/internal/modemerr"
	"github.com/acoustictx/acoustic-modem/internal/proto"
	"github.com/acoustictx/acoustic-modem/internal/wavio"
)

// SendOptions configures a file-mode send.
type SendOptions struct {
	Profile  modem.Profile
	Prefix   string
	Compress bool
}

// SendResult reports what a Send call produced.
type SendResult struct {
	DataPackets int
}

// Send implements spec.md §4.7's sender algorithm: optionally compress
// the payload, emit one SYN artifact, one DATA artifact per chunk in
// ascending seq starting at 0, then one FIN artifact whose seq is the
// total DATA count.
func Send(opts SendOptions, payload []byte) (SendResult, error) {
	p := opts.Profile
	originalSize := len(payload)

	body := payload
	if opts.Compress {
		compressed, err := compress.Compress(payload)
		if err != nil {
			return SendResult{}, err
		}
		body = compressed
	}

	reduction := 0.0
	if originalSize > 0 {
		reduction = 100 * (1 - float64(len(body))/float64(originalSize))
	}
	slog.Debug("payload prepared for transmission",
		"original_bytes", originalSize,
		"transmitted_bytes", len(body),
		"reduction_pct", reduction,
		"estimated_seconds", float64(len(body)*8)/p.BitRate())

	chunks := chunkPayload(body, p.PayloadChunkSize)
	if len(chunks) > 255 {
		return SendResult{}, fmt.Errorf("%w: session requires %d DATA packets, but FIN's seq is a single byte and must also hold the total count (max 255)", modemerr.ErrUsage, len(chunks))
	}

	if err := writeArtifact(p, synPath(opts.Prefix), proto.EncodeFileSYN(opts.Compress)); err != nil {
		return SendResult{}, err
	}

	for seq, chunk := range chunks {
		frame := proto.EncodeDATA(byte(seq), chunk)
		if err := writeArtifact(p, dataPath(opts.Prefix, seq), frame); err != nil {
			return SendResult{}, err
		}
		slog.Debug("data artifact written", "seq", seq, "bytes", len(chunk))
	}

	if err := writeArtifact(p, finPath(opts.Prefix), proto.EncodeFIN(len(chunks))); err != nil {
		return SendResult{}, err
	}

	return SendResult{DataPackets: len(chunks)}, nil
}

// chunkPayload splits data into chunks of at most size bytes each, in
// order. A zero-length payload yields zero chunks, so an empty transfer
// is just a SYN immediately followed by FIN(seq=0).
func chunkPayload(data []byte, size int) [][]byte {
	var chunks [][]byte
	for i := 0; i < len(data); i += size {
		end := i + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[i:end])
	}
	return chunks
}

func writeArtifact(p modem.Profile, path string, frame []byte) error {
	pcm := modem.EncodeFrameToPCM16(p, frame)
	return wavio.WriteArtifact(path, pcm, p.SampleRate)
}
