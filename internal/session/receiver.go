package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/acoustictx/acoustic-modem/internal/compress"
	"github.com/acoustictx/acoustic-modem/internal/modem"
	"github.com/acoustictx/acoustic-modem/internal/modemerr"
	"github.com/acoustictx/acoustic-modem/internal/proto"
	"github.com/acoustictx/acoustic-modem/internal/wavio"
)

// ReceiveOptions configures a file-mode receive.
type ReceiveOptions struct {
	Profile modem.Profile
	Prefix  string

	// RequestRetransmit controls whether NACK artifacts are produced
	// for missing sequence numbers.
	RequestRetransmit bool

	// NackPrefix is the prefix used for emitted NACK artifacts,
	// conventionally distinct from Prefix (the sender's prefix).
	NackPrefix string
}

// ReceiveResult is returned when the session completed and every DATA
// packet was accounted for.
type ReceiveResult struct {
	Payload []byte
}

// Receive implements spec.md §4.7's receiver algorithm and state
// machine: decode SYN, probe DATA artifacts by ascending sequence
// number until a read miss, decode FIN to learn the expected count,
// compute the missing set, and either reassemble or emit NACKs.
func Receive(opts ReceiveOptions) (ReceiveResult, error) {
	p := opts.Profile

	synFrame, err := readArtifact(p, synPath(opts.Prefix))
	if err != nil {
		return ReceiveResult{}, fmt.Errorf("%w: reading SYN: %v", modemerr.ErrFailedHandshake, err)
	}
	t, _, payload, valid, err := proto.Decode(synFrame)
	if err != nil || t != proto.TypeSYN || !valid {
		return ReceiveResult{}, fmt.Errorf("%w: SYN did not validate", modemerr.ErrFailedHandshake)
	}
	compressed := proto.DecodeFileSYN(payload)
	slog.Debug("SYN received", "compressed", compressed)

	received := map[int][]byte{}
	seq := 0
	for {
		frame, err := readArtifact(p, dataPath(opts.Prefix, seq))
		if err != nil {
			if os.IsNotExist(unwrapIO(err)) {
				break
			}
			// Unreadable for another reason: treat as a gap and keep
			// probing, matching the Python receiver's "paquete no
			// disponible" behavior rather than aborting the session.
			slog.Warn("data artifact unreadable, recording as gap", "seq", seq, "error", err)
			seq++
			continue
		}
		dt, dseq, ddata, dvalid, err := proto.Decode(frame)
		if err == nil && dt == proto.TypeDATA && dvalid {
			received[int(dseq)] = ddata
			slog.Debug("data packet received", "seq", dseq, "bytes", len(ddata))
		} else {
			slog.Warn("data packet failed to validate, recording as gap", "seq", seq)
		}
		seq++
	}

	finFrame, err := readArtifact(p, finPath(opts.Prefix))
	if err != nil {
		return ReceiveResult{}, fmt.Errorf("%w: reading FIN: %v", modemerr.ErrFailedHandshake, err)
	}
	ft, fseq, _, fvalid, err := proto.Decode(finFrame)
	if err != nil || ft != proto.TypeFIN || !fvalid {
		return ReceiveResult{}, fmt.Errorf("%w: FIN did not validate", modemerr.ErrFailedHandshake)
	}
	expected := int(fseq)

	var missing []int
	for i := 0; i < expected; i++ {
		if _, ok := received[i]; !ok {
			missing = append(missing, i)
		}
	}

	if len(missing) > 0 {
		slog.Info("session incomplete", "missing", missing)
		if opts.RequestRetransmit {
			for _, s := range missing {
				nackFrame := proto.EncodeNACK(byte(s))
				if err := writeArtifact(p, nackPath(opts.NackPrefix, s), nackFrame); err != nil {
					return ReceiveResult{}, err
				}
			}
		}
		return ReceiveResult{}, &modemerr.IncompleteError{Missing: missing}
	}

	ordered := make([]int, 0, len(received))
	for i := range received {
		ordered = append(ordered, i)
	}
	sort.Ints(ordered)

	var out []byte
	for _, i := range ordered {
		out = append(out, received[i]...)
	}

	if compressed {
		decoded, err := compress.Decompress(out)
		if err != nil {
			return ReceiveResult{}, err
		}
		out = decoded
	}

	return ReceiveResult{Payload: out}, nil
}

func readArtifact(p modem.Profile, path string) ([]byte, error) {
	pcm, _, err := wavio.ReadArtifact(path)
	if err != nil {
		return nil, err
	}
	return modem.DecodeFramePCM16(p, pcm), nil
}

// unwrapIO pulls the underlying *os.PathError (if any) back out of the
// %w-wrapped error wavio.ReadArtifact returns, so the DATA probe loop
// can recognize "file does not exist" distinctly from other I/O
// failures.
func unwrapIO(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr
	}
	return err
}
