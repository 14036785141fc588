package fuzztests

import (
	"math"
	"testing"
)

const maxFuzzInput = 1 << 10

// rawSeeds are discriminant bit patterns around every width boundary.
var rawSeeds = []uint64{
	0, 1, 0x7f, 0x80, 0xff, 0x100,
	0x7fff, 0x8000, 0xffff, 0x1_0000,
	math.MaxInt32, 0x8000_0000, math.MaxUint32, 0x1_0000_0000,
	math.MaxInt64, 1 << 63, math.MaxUint64,
}

func addRawSeeds(f *testing.F) {
	for i, raw := range rawSeeds {
		f.Add(raw, rawSeeds[len(rawSeeds)-1-i])
	}
}

func addOrderSeeds(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 1, 2, 3, 4, 5, 6})
	f.Add([]byte{6, 5, 4, 3, 2, 1, 0})
	f.Add([]byte{3, 3, 3, 0, 250, 17})
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return input[:maxFuzzInput]
	}
	return input
}

// permutation shuffles 0..n-1 driven by seed.
func permutation(n int, seed []byte) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	for i, b := range seed {
		if n < 2 {
			break
		}
		j := i % n
		k := int(b) % n
		out[j], out[k] = out[k], out[j]
	}
	return out
}
