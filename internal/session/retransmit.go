package session

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/acoustictx/acoustic-modem/internal/modem"
	"github.com/acoustictx/acoustic-modem/internal/modemerr"
	"github.com/acoustictx/acoustic-modem/internal/proto"
)

// RetransmitOptions configures a retransmission pass: scan NackPrefix
// for NACK artifacts, and for each valid one, re-emit the matching
// DATA artifact from DataPrefix under RetxPrefix.
type RetransmitOptions struct {
	Profile    modem.Profile
	DataPrefix string
	NackPrefix string
	RetxPrefix string
}

// RetransmitResult reports which sequence numbers were re-emitted.
type RetransmitResult struct {
	Retransmitted []int
}

// Retransmit implements spec.md §4.7's retransmitter: it never
// re-modulates — it copies the sender's original DATA artifact bytes
// to a new name, exactly like audio_retransmit.py's retransmit_packets.
func Retransmit(opts RetransmitOptions) (RetransmitResult, error) {
	var result RetransmitResult

	for seq := 0; seq <= 255; seq++ {
		nackFile := nackPath(opts.NackPrefix, seq)
		frame, err := readArtifact(opts.Profile, nackFile)
		if err != nil {
			if os.IsNotExist(unwrapIO(err)) {
				continue
			}
			slog.Warn("nack artifact unreadable", "path", nackFile, "error", err)
			continue
		}

		t, nseq, _, valid, err := proto.Decode(frame)
		if err != nil || t != proto.TypeNACK || !valid {
			slog.Warn("nack artifact did not validate", "path", nackFile)
			continue
		}

		src := dataPath(opts.DataPrefix, int(nseq))
		data, err := os.ReadFile(src)
		if err != nil {
			slog.Warn("original data artifact not found for retransmission", "seq", nseq, "path", src)
			continue
		}

		dst := retxPath(opts.RetxPrefix, int(nseq))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return result, fmt.Errorf("%w: writing %s: %v", modemerr.ErrIO, dst, err)
		}

		result.Retransmitted = append(result.Retransmitted, int(nseq))
		slog.Debug("retransmitted data artifact", "seq", nseq, "path", dst)
	}

	return result, nil
}
