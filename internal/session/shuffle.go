package session

import "math/rand/v2"

// Shuffle returns a uniformly random permutation of ids using Fisher–Yates.
// The input slice is not modified.
func Shuffle(ids []string, rng *rand.Rand) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
