// Package modem implements the MFSK symbol coder: tone generation, the
// bit/symbol packer, and the Goertzel-based symbol detector, parameterized
// by a fixed Profile so the audible and ultrasonic variants share one
// engine instead of duplicating the pipeline.
package modem

import "math"

// Profile is a fixed, immutable configuration chosen at session start.
// Both the audible and ultrasonic variants are values of this one type;
// nothing downstream branches on which profile it is.
type Profile struct {
	Name string

	SampleRate    int
	SymbolSeconds float64

	// Freqs maps symbol index to carrier frequency in Hz. len(Freqs)
	// is M, the alphabet size (4 or 8).
	Freqs []float64

	// PayloadChunkSize is the maximum DATA payload in bytes.
	PayloadChunkSize int

	// Preamble is the symbol-index sequence prepended ahead of every
	// encoded frame, in file-mode artifacts and in streaming mode alike.
	// Empty for profiles that don't use one.
	Preamble []int

	// AmplitudeScale is the peak fraction of full scale, in (0, 1].
	AmplitudeScale float64
}

// SamplesPerSymbol returns round(SampleRate * SymbolSeconds).
func (p Profile) SamplesPerSymbol() int {
	return int(math.Round(float64(p.SampleRate) * p.SymbolSeconds))
}

// BitsPerSymbol returns log2(len(Freqs)).
func (p Profile) BitsPerSymbol() int {
	bits := 0
	for n := len(p.Freqs); n > 1; n >>= 1 {
		bits++
	}
	return bits
}

// BitRate returns the steady-state bits/second this profile sustains,
// ignoring preamble and framing overhead.
func (p Profile) BitRate() float64 {
	return float64(p.BitsPerSymbol()) / p.SymbolSeconds
}

// UsesPreamble reports whether Preamble is prepended ahead of each frame
// (and skipped on decode) for this profile.
func (p Profile) UsesPreamble() bool {
	return len(p.Preamble) > 0
}

// Audible is the 4-FSK, audible-tone profile: 4 symbols at 1000-2500 Hz,
// 5ms/symbol, 32-byte DATA chunks, no preamble.
var Audible = Profile{
	Name:             "audible",
	SampleRate:       44100,
	SymbolSeconds:    0.005,
	Freqs:            []float64{1000, 1500, 2000, 2500},
	PayloadChunkSize: 32,
	Preamble:         nil,
	AmplitudeScale:   1.0,
}

// Ultrasonic is the 8-FSK, ultrasonic-tone profile: 8 symbols spaced
// 485Hz apart starting at 17kHz, 4ms/symbol, 64-byte DATA chunks, with
// a preamble for streaming-mode frame sync.
var Ultrasonic = Profile{
	Name:             "ultrasonic",
	SampleRate:       44100,
	SymbolSeconds:    0.004,
	Freqs:            ultrasonicFreqs(),
	PayloadChunkSize: 64,
	Preamble:         []int{0, 7, 0, 7},
	AmplitudeScale:   0.9,
}

func ultrasonicFreqs() []float64 {
	freqs := make([]float64, 8)
	for i := range freqs {
		freqs[i] = 17000 + 485*float64(i)
	}
	return freqs
}

// ByName resolves one of the two fixed profiles by name ("audible" or
// "ultrasonic"). ok is false for any other name.
func ByName(name string) (p Profile, ok bool) {
	switch name {
	case Audible.Name:
		return Audible, true
	case Ultrasonic.Name:
		return Ultrasonic, true
	default:
		return Profile{}, false
	}
}
