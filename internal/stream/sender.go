// Package stream implements the streaming session of spec.md §4.8:
// continuous device capture/playback, preamble search over a rolling
// sample buffer, and frame extraction without retransmission. Grounded
// on the original dpareja/audioprotocol Python scripts
// audio_stream_sender.py and audio_stream_receiver.py, re-expressed
// against internal/modem + internal/proto + internal/audiodevice.
package stream

import (
	"fmt"
	"log/slog"

	"github.com/acoustictx/acoustic-modem/internal/audiodevice"
	"github.com/acoustictx/acoustic-modem/internal/compress"
	"github.com/acoustictx/acoustic-modem/internal/modem"
	"github.com/acoustictx/acoustic-modem/internal/modemerr"
	"github.com/acoustictx/acoustic-modem/internal/proto"
)

// SendOptions configures a streaming send.
type SendOptions struct {
	Profile  modem.Profile
	Name     string
	Compress bool
}

// Send plays one session's worth of packets (SYN, DATA*, FIN) live
// through player, blocking only on player.WriteBlock — the cooperative
// loop's one playback suspension point.
func Send(player audiodevice.Player, opts SendOptions, payload []byte) error {
	p := opts.Profile

	body := payload
	if opts.Compress {
		compressed, err := compress.Compress(payload)
		if err != nil {
			return err
		}
		body = compressed
	}

	chunks := chunkPayload(body, p.PayloadChunkSize)
	if len(chunks) > 255 {
		return fmt.Errorf("%w: session requires %d DATA packets, but FIN's seq is a single byte and must also hold the total count (max 255)", modemerr.ErrUsage, len(chunks))
	}

	if err := sendFrame(player, p, proto.EncodeStreamSYN(opts.Compress, opts.Name)); err != nil {
		return fmt.Errorf("sending SYN: %w", err)
	}
	slog.Debug("streaming SYN sent", "name", opts.Name, "compressed", opts.Compress)

	for seq, chunk := range chunks {
		if err := sendFrame(player, p, proto.EncodeDATA(byte(seq), chunk)); err != nil {
			return fmt.Errorf("sending DATA seq=%d: %w", seq, err)
		}
	}

	if err := sendFrame(player, p, proto.EncodeFIN(len(chunks))); err != nil {
		return fmt.Errorf("sending FIN: %w", err)
	}
	slog.Debug("streaming session sent", "packets", len(chunks))
	return nil
}

func sendFrame(player audiodevice.Player, p modem.Profile, frame []byte) error {
	pcm := modem.EncodeFrameToPCM16(p, frame)
	return player.WriteBlock(pcm)
}

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
