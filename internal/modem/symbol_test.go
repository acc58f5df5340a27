package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestBytesToBitsMSBFirst(t *testing.T) {
	bits := BytesToBits([]byte{0b10110001})
	assert.Equal(t, []int{1, 0, 1, 1, 0, 0, 0, 1}, bits)
}

func TestBitsToBytesDropsTrailingPartialGroup(t *testing.T) {
	bits := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1}
	out := BitsToBytes(bits)
	assert.Equal(t, []byte{0xFF}, out)
}

func TestBytesBitsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.SliceOf(rapid.Byte()).Draw(t, "in")
		out := BitsToBytes(BytesToBits(in))
		assert.Equal(t, in, out)
	})
}

func TestBitsToSymbolsZeroPadsTrailingGroup(t *testing.T) {
	syms := BitsToSymbols([]int{1, 0}, 3)
	assert.Equal(t, []int{0b100}, syms)
}

func TestSymbolsBitsRoundTripWhenBitsAreAMultipleOfBitsPerSymbol(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bitsPerSymbol := rapid.SampledFrom([]int{2, 3}).Draw(t, "bitsPerSymbol")
		numSymbols := rapid.IntRange(0, 64).Draw(t, "numSymbols")

		syms := make([]int, numSymbols)
		for i := range syms {
			syms[i] = rapid.IntRange(0, (1<<bitsPerSymbol)-1).Draw(t, "sym")
		}

		bits := SymbolsToBits(syms, bitsPerSymbol)
		assert.Equal(t, numSymbols*bitsPerSymbol, len(bits))

		roundTripped := BitsToSymbols(bits, bitsPerSymbol)
		assert.Equal(t, syms, roundTripped)
	})
}
