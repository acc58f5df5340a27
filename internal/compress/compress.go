// Package compress provides the optional lossless byte-stream
// compression applied to a payload before framing. Deflate-family at
// maximum level, via klauspost/compress's flate implementation (used
// elsewhere in this codebase's lineage for a different compressor —
// zstd in the streaming-audio server this project borrows its
// dependency stack from — but flate is the deflate family the protocol
// calls for).
package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/acoustictx/acoustic-modem/internal/modemerr"
)

// Compress deflates data at the best-compression level.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: opening deflate writer: %v", modemerr.ErrIO, err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: deflating payload: %v", modemerr.ErrIO, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing deflate writer: %v", modemerr.ErrIO, err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates data. Failure here is terminal for the session
// that called it — the caller should surface ErrPayloadCorrupt.
func Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", modemerr.ErrPayloadCorrupt, err)
	}
	return out, nil
}
