package stream

import (
	"log/slog"
	"sort"
	"time"

	"github.com/acoustictx/acoustic-modem/internal/audiodevice"
	"github.com/acoustictx/acoustic-modem/internal/compress"
	"github.com/acoustictx/acoustic-modem/internal/modem"
	"github.com/acoustictx/acoustic-modem/internal/modemerr"
	"github.com/acoustictx/acoustic-modem/internal/proto"
)

// receiverState mirrors spec.md §3's receiver session states.
type receiverState int

const (
	stateIdle receiverState = iota
	stateReceiving
	stateComplete
	stateFailed
)

// sessionData accumulates one SYN-through-FIN exchange.
type sessionData struct {
	compressed bool
	filename   string
	packets    map[int][]byte
	state      receiverState
}

func newSessionData() *sessionData {
	return &sessionData{packets: map[int][]byte{}, state: stateIdle}
}

// Delivered is reported once a session closes with every DATA packet
// accounted for.
type Delivered struct {
	Name    string
	Payload []byte
}

// Receiver runs the cooperative, single-threaded streaming loop: feed
// a rolling sample buffer from cap in fixed blocks, search it for the
// preamble (only on profiles that use one), extract and validate
// frames, and dispatch them to the session state machine. It never
// retransmits — a FIN that closes with gaps discards the session.
type Receiver struct {
	profile  modem.Profile
	detector *modem.Detector
	cap      audiodevice.Capturer
	onDone   func(Delivered)

	buf     []float64
	session *sessionData

	// Watchdog, if non-zero, aborts a session that makes no progress
	// (no DATA or FIN dispatched) within the duration. The spec frames
	// this as a caller-supplied MAY.
	watchdog     time.Duration
	lastProgress time.Time
}

// NewReceiver constructs a streaming receiver profile and capture
// source. onDone is called once per successfully completed session.
func NewReceiver(p modem.Profile, cap audiodevice.Capturer, onDone func(Delivered)) *Receiver {
	return &Receiver{
		profile:  p,
		detector: modem.NewDetector(p),
		cap:      cap,
		onDone:   onDone,
		session:  newSessionData(),
	}
}

// SetWatchdog arms a progress watchdog: if the receiver spends more
// than d without a DATA/FIN dispatch inside an active session, Run
// returns ErrCancelled and discards the partial session.
func (r *Receiver) SetWatchdog(d time.Duration) {
	r.watchdog = d
}

const (
	blockMultiple = 4  // capture blocks are 4*samplesPerSymbol
	probeMultiple = 20 // minimum buffer before probing: preamble + minimal packet
	scanMultiple  = 50 // how many symbols to demodulate per probe
	trimMultiple  = 50 // buffer is trimmed to this many symbols after a miss
	headerBytes   = 3  // type + seq + len, before checksum
)

// Run drives the loop until stop is closed, the watchdog expires, or the
// capture device fails, releasing the capture device before returning. It is
// the streaming session's only blocking operation besides the
// capture read itself.
func (r *Receiver) Run(stop <-chan struct{}) error {
	defer r.cap.Close()

	n := r.profile.SamplesPerSymbol()
	block := make([]int16, blockMultiple*n)

	for {
		select {
		case <-stop:
			return modemerr.ErrCancelled
		default:
		}

		if err := r.cap.ReadBlock(block); err != nil {
			return err
		}
		r.buf = append(r.buf, modem.Normalize(block)...)

		if r.watchdog > 0 && r.session.state == stateReceiving {
			if r.lastProgress.IsZero() {
				r.lastProgress = time.Now()
			} else if time.Since(r.lastProgress) > r.watchdog {
				slog.Warn("streaming session watchdog expired, discarding partial session")
				r.session = newSessionData()
				return modemerr.ErrCancelled
			}
		}

		for len(r.buf) >= probeMultiple*n {
			if !r.tryExtractFrame() {
				break
			}
		}
	}
}

// tryExtractFrame implements spec.md §4.8 steps 1-5 for one pass over
// the current buffer. It returns true if a frame was consumed (so the
// caller should try again immediately in case another is already
// queued), false otherwise.
func (r *Receiver) tryExtractFrame() bool {
	n := r.profile.SamplesPerSymbol()

	scanLen := scanMultiple * n
	if scanLen > len(r.buf) {
		scanLen = len(r.buf)
	}
	symbols := r.detector.DetectAll(r.buf[:scanLen])

	preamble := r.profile.Preamble
	if len(preamble) == 0 {
		// No preamble configured: treat the buffer start as the frame
		// start directly.
		return r.decodeFrameAt(0)
	}

	for i := 0; i+len(preamble) <= len(symbols); i++ {
		if matchesPreamble(symbols[i:i+len(preamble)], preamble) {
			start := (i + len(preamble)) * n
			if r.decodeFrameAt(start) {
				return true
			}
			return false
		}
	}

	if len(r.buf) > trimMultiple*n {
		r.buf = r.buf[len(r.buf)-trimMultiple*n:]
	}
	return false
}

func matchesPreamble(got, want []int) bool {
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// decodeFrameAt attempts to demodulate a minimal header at sample
// offset start, then the full frame once len is known, and dispatches
// it if framing validates. Returns true if it consumed a frame (valid
// or not) and advanced the buffer past it.
func (r *Receiver) decodeFrameAt(start int) bool {
	n := r.profile.SamplesPerSymbol()
	bitsPerSymbol := r.profile.BitsPerSymbol()

	headerBits := headerBytes * 8
	headerSymbols := (headerBits + bitsPerSymbol - 1) / bitsPerSymbol
	headerSampleLen := headerSymbols * n

	if start+headerSampleLen > len(r.buf) {
		return false
	}
	headerSyms := r.detector.DetectAll(r.buf[start : start+headerSampleLen])
	headerFrameBits := modem.SymbolsToBits(headerSyms, bitsPerSymbol)
	headerFrame := modem.BitsToBytes(headerFrameBits)
	if len(headerFrame) < headerBytes {
		return false
	}
	length := int(headerFrame[2])

	totalBytes := headerBytes + length + 2
	totalBits := totalBytes * 8
	totalSymbols := (totalBits + bitsPerSymbol - 1) / bitsPerSymbol
	totalSampleLen := totalSymbols * n

	if start+totalSampleLen > len(r.buf) {
		return false
	}

	frameSyms := r.detector.DetectAll(r.buf[start : start+totalSampleLen])
	frameBits := modem.SymbolsToBits(frameSyms, bitsPerSymbol)
	frame := modem.BitsToBytes(frameBits)

	r.buf = r.buf[start+totalSampleLen:]

	t, seq, payload, valid, err := proto.Decode(frame)
	if err != nil || !valid {
		slog.Warn("streaming frame failed to validate, dropping")
		return true
	}

	r.dispatch(t, seq, payload)
	return true
}

// dispatch applies one validated frame to the session state machine,
// mirroring spec.md §3's receiver states: Idle --SYN--> Receiving,
// Receiving --FIN(complete)--> Complete / --FIN(gaps)--> discarded.
// DATA outside Receiving is ignored.
func (r *Receiver) dispatch(t proto.Type, seq byte, payload []byte) {
	switch t {
	case proto.TypeSYN:
		compressed, name := proto.DecodeStreamSYN(payload)
		r.session = newSessionData()
		r.session.compressed = compressed
		r.session.filename = name
		r.session.state = stateReceiving
		r.lastProgress = time.Now()
		slog.Info("streaming session started", "name", name, "compressed", compressed)

	case proto.TypeDATA:
		if r.session.state != stateReceiving {
			return
		}
		r.session.packets[int(seq)] = payload
		r.lastProgress = time.Now()
		slog.Debug("streaming data packet received", "seq", seq, "bytes", len(payload))

	case proto.TypeFIN:
		if r.session.state != stateReceiving {
			return
		}
		r.lastProgress = time.Now()
		r.finish(int(seq))
	}
}

func (r *Receiver) finish(expected int) {
	var missing []int
	for i := 0; i < expected; i++ {
		if _, ok := r.session.packets[i]; !ok {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		slog.Warn("streaming session incomplete, discarding", "missing", missing)
		r.session.state = stateFailed
		r.session = newSessionData()
		return
	}

	ordered := make([]int, 0, len(r.session.packets))
	for i := range r.session.packets {
		ordered = append(ordered, i)
	}
	sort.Ints(ordered)

	var out []byte
	for _, i := range ordered {
		out = append(out, r.session.packets[i]...)
	}

	if r.session.compressed {
		decoded, err := compress.Decompress(out)
		if err != nil {
			slog.Error("streaming session payload corrupt", "error", err)
			r.session = newSessionData()
			return
		}
		out = decoded
	}

	r.session.state = stateComplete
	name := r.session.filename
	if r.onDone != nil {
		r.onDone(Delivered{Name: name, Payload: out})
	}
	r.session = newSessionData()
}
