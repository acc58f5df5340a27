// Package proto implements packet framing: [type][seq][len][payload][checksum],
// the SYN payload shapes for file and streaming mode, and parsing that
// always returns a valid flag rather than erroring on a bad checksum —
// only structural problems (short buffers, unknown type bytes) are hard
// errors. Mirrors the frame-then-validate shape of
// internal/decoder/chunk.go's DecodeChunk in the teacher repo.
package proto

import (
	"fmt"

	"github.com/acoustictx/acoustic-modem/internal/modemerr"
)

// Type is the packet type byte.
type Type byte

const (
	TypeDATA Type = 0
	TypeACK  Type = 1
	TypeNACK Type = 2
	TypeSYN  Type = 3
	TypeFIN  Type = 4
)

func (t Type) String() string {
	switch t {
	case TypeDATA:
		return "DATA"
	case TypeACK:
		return "ACK"
	case TypeNACK:
		return "NACK"
	case TypeSYN:
		return "SYN"
	case TypeFIN:
		return "FIN"
	default:
		return fmt.Sprintf("Type(%d)", byte(t))
	}
}

func validType(t byte) bool {
	switch Type(t) {
	case TypeDATA, TypeACK, TypeNACK, TypeSYN, TypeFIN:
		return true
	default:
		return false
	}
}

// frameOverhead is the fixed byte cost of type + seq + len + checksum.
const frameOverhead = 4

// Encode concatenates type, seq, len(payload), payload, then appends the
// checksum as two big-endian bytes of sum(prefix) mod 2^16.
func Encode(t Type, seq byte, payload []byte) []byte {
	out := make([]byte, 0, frameOverhead+len(payload))
	out = append(out, byte(t), seq, byte(len(payload)&0xFF))
	out = append(out, payload...)

	var sum uint32
	for _, b := range out {
		sum += uint32(b)
	}
	sum &= 0xFFFF
	out = append(out, byte(sum>>8), byte(sum))
	return out
}

// Decode parses a frame and reports whether its checksum validates.
// Fields are returned regardless of validity — valid=false is a soft
// error the caller decides how to handle (record a gap, ignore, etc).
// A structural problem — too short to contain a frame, or an unknown
// type byte — is a hard error instead.
func Decode(frame []byte) (t Type, seq byte, payload []byte, valid bool, err error) {
	if len(frame) < 5 {
		return 0, 0, nil, false, fmt.Errorf("%w: frame is %d bytes, need at least 5", modemerr.ErrMalformedFrame, len(frame))
	}

	if !validType(frame[0]) {
		return 0, 0, nil, false, fmt.Errorf("%w: %d", modemerr.ErrUnknownType, frame[0])
	}
	t = Type(frame[0])
	seq = frame[1]
	length := int(frame[2])

	if 3+length+2 > len(frame) {
		return 0, 0, nil, false, fmt.Errorf("%w: len field %d exceeds frame of %d bytes", modemerr.ErrMalformedFrame, length, len(frame))
	}
	payload = frame[3 : 3+length]

	prefix := frame[:3+length]
	var sum uint32
	for _, b := range prefix {
		sum += uint32(b)
	}
	sum &= 0xFFFF

	received := uint32(frame[3+length])<<8 | uint32(frame[3+length+1])
	valid = received == sum
	return t, seq, payload, valid, nil
}

// EncodeFileSYN builds a complete file-mode SYN frame whose payload is
// one byte, the compression flag.
func EncodeFileSYN(compress bool) []byte {
	var flag byte
	if compress {
		flag = 1
	}
	return Encode(TypeSYN, 0, []byte{flag})
}

// DecodeFileSYN extracts the compression flag from a file-mode SYN
// payload.
func DecodeFileSYN(payload []byte) (compressed bool) {
	return len(payload) > 0 && payload[0] == 1
}

// EncodeStreamSYN builds a complete streaming-mode SYN frame whose payload
// is compress_flag(1) || name_len(1) || name_bytes, truncating name to 32
// bytes (the invariant spec.md places on name_len).
func EncodeStreamSYN(compress bool, name string) []byte {
	nb := []byte(name)
	if len(nb) > 32 {
		nb = nb[:32]
	}
	var flag byte
	if compress {
		flag = 1
	}
	payload := make([]byte, 0, 2+len(nb))
	payload = append(payload, flag, byte(len(nb)))
	payload = append(payload, nb...)
	return Encode(TypeSYN, 0, payload)
}

// DecodeStreamSYN extracts the compression flag and filename from a
// streaming-mode SYN payload.
func DecodeStreamSYN(payload []byte) (compressed bool, name string) {
	if len(payload) == 0 {
		return false, ""
	}
	compressed = payload[0] == 1
	if len(payload) < 2 {
		return compressed, ""
	}
	nameLen := int(payload[1])
	if 2+nameLen > len(payload) {
		nameLen = len(payload) - 2
	}
	return compressed, string(payload[2 : 2+nameLen])
}

// EncodeFIN builds a FIN packet: seq is the total count of DATA packets
// sent, payload is always empty.
func EncodeFIN(totalDataPackets int) []byte {
	return Encode(TypeFIN, byte(totalDataPackets), nil)
}

// EncodeNACK builds a NACK packet requesting retransmission of seq.
func EncodeNACK(seq byte) []byte {
	return Encode(TypeNACK, seq, nil)
}

// EncodeACK builds an ACK packet for seq. Nothing in the session state
// machine currently emits this on the wire (spec.md's receiver
// algorithm only ever NACKs gaps), but it stays encodable/decodable
// like any other frame type.
func EncodeACK(seq byte) []byte {
	return Encode(TypeACK, seq, nil)
}

// EncodeDATA builds a DATA packet carrying chunk as its payload.
func EncodeDATA(seq byte, chunk []byte) []byte {
	return Encode(TypeDATA, seq, chunk)
}
