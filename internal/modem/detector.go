package modem

import "math"

// goertzelCoeffs holds the per-tone constants the Goertzel recursion
// needs, precomputed once per profile rather than once per window —
// the inner loop below is the hot path.
type goertzelCoeffs struct {
	coeff float64 // 2*cos(omega)
	cosOm float64
	sinOm float64
}

// Detector estimates, for a fixed-length PCM window, the most-likely
// symbol the window encodes, via a bank of second-order Goertzel
// filters, one per candidate tone in the profile's alphabet.
type Detector struct {
	profile Profile
	bank    []goertzelCoeffs
}

// NewDetector precomputes the Goertzel coefficients for every tone in
// p's alphabet.
func NewDetector(p Profile) *Detector {
	n := p.SamplesPerSymbol()
	bank := make([]goertzelCoeffs, len(p.Freqs))
	for s, f := range p.Freqs {
		k := math.Round(float64(n) * f / float64(p.SampleRate))
		omega := 2 * math.Pi * k / float64(n)
		bank[s] = goertzelCoeffs{
			coeff: 2 * math.Cos(omega),
			cosOm: math.Cos(omega),
			sinOm: math.Sin(omega),
		}
	}
	return &Detector{profile: p, bank: bank}
}

// ErrShortWindow-style signal: Detect returns ok=false when window is
// shorter than the profile's SamplesPerSymbol — the caller treats that
// as end-of-stream, never as a detection failure.
func (d *Detector) Detect(window []float64) (symbol int, ok bool) {
	if len(window) < d.profile.SamplesPerSymbol() {
		return 0, false
	}

	bestSymbol := 0
	bestMag := -1.0
	for s, c := range d.bank {
		var q1, q2 float64
		for _, x := range window {
			q0 := c.coeff*q1 - q2 + x
			q2 = q1
			q1 = q0
		}
		real := q1 - q2*c.cosOm
		imag := q2 * c.sinOm
		mag := real*real + imag*imag
		if mag > bestMag {
			bestMag = mag
			bestSymbol = s
		}
	}
	return bestSymbol, true
}

// DetectAll walks samples in fixed strides of SamplesPerSymbol, running
// Detect on each full window and stopping at the first short tail.
func (d *Detector) DetectAll(samples []float64) []int {
	n := d.profile.SamplesPerSymbol()
	syms := make([]int, 0, len(samples)/n)
	for i := 0; i+n <= len(samples); i += n {
		s, ok := d.Detect(samples[i : i+n])
		if !ok {
			break
		}
		syms = append(syms, s)
	}
	return syms
}
