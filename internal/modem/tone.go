package modem

import "math"

// Tone produces exactly p.SamplesPerSymbol() samples of a pure sine at
// the carrier frequency for symbol index s, in [-1, 1]. No windowing is
// applied; concatenating the output of successive calls yields a signal
// with no inter-symbol gap, as required for the detector's fixed-stride
// walk over the PCM buffer.
func Tone(p Profile, s int) []float64 {
	freq := p.Freqs[s]
	n := p.SamplesPerSymbol()
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(p.SampleRate)
		samples[i] = math.Sin(2 * math.Pi * freq * t)
	}
	return samples
}

// ToneSequence concatenates Tone(p, s) for each symbol in syms, forming
// one contiguous PCM block.
func ToneSequence(p Profile, syms []int) []float64 {
	out := make([]float64, 0, len(syms)*p.SamplesPerSymbol())
	for _, s := range syms {
		out = append(out, Tone(p, s)...)
	}
	return out
}

// Quantize scales normalized float samples in [-1, 1] by
// p.AmplitudeScale and converts them to 16-bit signed PCM, clamping
// against overflow from floating-point rounding at full scale.
func Quantize(p Profile, samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		v := s * p.AmplitudeScale * 32767.0
		switch {
		case v > 32767:
			v = 32767
		case v < -32768:
			v = -32768
		}
		out[i] = int16(math.Round(v))
	}
	return out
}

// Normalize converts 16-bit signed PCM back to floats in [-1, 1].
func Normalize(pcm []int16) []float64 {
	out := make([]float64, len(pcm))
	for i, v := range pcm {
		out[i] = float64(v) / 32767.0
	}
	return out
}
