// SPDX-License-Identifier: MIT

package vrp

import "math/rand"

// defaultRNGSeed replaces a zero seed.
const defaultRNGSeed int64 = 1

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id with the SplitMix64
// finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// deriveRNG returns an independent stream for restart number stream.
// base advances by one draw per call.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(base.Int63(), stream)))
}

// order returns 0..n-1, shuffled when rng is non-nil.
func order(n int, rng *rand.Rand) []int {
	if rng != nil {
		return rng.Perm(n)
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
