// Package modemerr defines the sentinel error taxonomy shared across the
// modem, proto, session, and stream packages, following the
// errors.New + fmt.Errorf("%w: ...") wrapping style used throughout
// this codebase's lower layers.
package modemerr

import "errors"

var (
	// ErrUsage is returned for invalid CLI arguments or flag combinations.
	ErrUsage = errors.New("usage error")

	// ErrIO covers filesystem and artifact I/O failures.
	ErrIO = errors.New("io error")

	// ErrMalformedFrame is returned when a byte string is too short to
	// be a packet, or otherwise structurally invalid before checksum
	// verification is even possible. A checksum mismatch itself is not
	// one of these — proto.Decode reports that as a soft valid=false,
	// never as an error.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrUnknownType is returned when a frame's type byte is outside
	// the DATA/ACK/NACK/SYN/FIN enum.
	ErrUnknownType = errors.New("unknown packet type")

	// ErrFailedHandshake is returned when a SYN artifact is missing,
	// unreadable, or decodes to an invalid/wrong-type frame.
	ErrFailedHandshake = errors.New("failed handshake")

	// ErrIncompleteNeedsRetx is returned when a FIN closes a session
	// with one or more DATA sequence numbers still missing.
	ErrIncompleteNeedsRetx = errors.New("incomplete, needs retransmission")

	// ErrPayloadCorrupt is a terminal, session-scoped decompression
	// failure.
	ErrPayloadCorrupt = errors.New("payload corrupt")

	// ErrDeviceUnavailable is returned when the capture or playback
	// device cannot be opened or fails mid-stream.
	ErrDeviceUnavailable = errors.New("audio device unavailable")

	// ErrCancelled is returned when the streaming loop is terminated by
	// an external interrupt or a watchdog timeout before completion.
	ErrCancelled = errors.New("cancelled")
)

// IncompleteError wraps ErrIncompleteNeedsRetx with the specific
// sequence numbers that never arrived, so callers can report them
// without re-deriving the gap set.
type IncompleteError struct {
	Missing []int
}

func (e *IncompleteError) Error() string {
	return ErrIncompleteNeedsRetx.Error()
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncompleteNeedsRetx
}
