package sampling

import "math/rand"

// RunSeed derives a per-run seed from the ensemble base seed and the run
// index via a splitmix64-style mix. Each trajectory owns its own stream, so
// results are bit-reproducible regardless of how many workers execute runs.
func RunSeed(base int64, run int) int64 {
	x := uint64(base) + (uint64(run)+1)*0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}

// NewRunRNG creates the random stream for one trajectory.
func NewRunRNG(base int64, run int) *rand.Rand {
	return rand.New(rand.NewSource(RunSeed(base, run)))
}
