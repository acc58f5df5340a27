package modem

// EncodeFrame turns a framed packet into PCM samples ready for
// quantization: an optional preamble (if p uses one), then the tones
// for each MSB-first symbol of frame's bits.
func EncodeFrame(p Profile, frame []byte) []float64 {
	bits := BytesToBits(frame)
	syms := BitsToSymbols(bits, p.BitsPerSymbol())

	var pcm []float64
	if p.UsesPreamble() {
		pcm = append(pcm, ToneSequence(p, p.Preamble)...)
	}
	pcm = append(pcm, ToneSequence(p, syms)...)
	return pcm
}

// EncodeFrameToPCM16 is EncodeFrame followed by amplitude scaling and
// 16-bit quantization — the full §4.5 file-mode encode pipeline short
// of writing the .wav container.
func EncodeFrameToPCM16(p Profile, frame []byte) []int16 {
	return Quantize(p, EncodeFrame(p, frame))
}

// DecodeFrame recovers a framed packet's raw bytes from normalized PCM
// samples: skip the preamble region if the profile uses one, walk the
// remainder in symbol-length strides through the detector, then pack
// the resulting symbols back to bytes. Any trailing bits short of a
// full byte are dropped, never fabricated.
func DecodeFrame(p Profile, samples []float64) []byte {
	if p.UsesPreamble() {
		skip := len(p.Preamble) * p.SamplesPerSymbol()
		if skip > len(samples) {
			skip = len(samples)
		}
		samples = samples[skip:]
	}

	det := NewDetector(p)
	syms := det.DetectAll(samples)
	bits := SymbolsToBits(syms, p.BitsPerSymbol())
	return BitsToBytes(bits)
}

// DecodeFramePCM16 is DecodeFrame preceded by normalizing raw 16-bit
// PCM samples into [-1, 1] — the full §4.6 file-mode decode pipeline
// given an already-read .wav artifact's samples.
func DecodeFramePCM16(p Profile, pcm []int16) []byte {
	return DecodeFrame(p, Normalize(pcm))
}
