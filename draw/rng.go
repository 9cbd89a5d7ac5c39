// RNG utilities shared by the draw strategies.
//
// Goals:
//   - Determinism: same seed ⇒ identical results across platforms.
//   - Encapsulation: a single source factory; entropy is only consulted by Seed.Resolve.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Every Draw builds its own generator.
package draw

import "math/rand/v2"

// pcgStream is the stream identifier mixed into the second PCG word.
const pcgStream uint64 = 0x5eed_5a3b_1e00_0001

// newSource returns a deterministic PCG source for seed.
//
// Complexity: O(1).
func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, DeriveSeed(seed, pcgStream))
}

// newRand wraps newSource in a *rand.Rand.
func newRand(seed uint64) *rand.Rand {
	return rand.New(newSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed.
// Designs use it to give every class an independent stream derived from one
// run seed, so adding a sample to one class never perturbs another class.
//
// The mix is a SplitMix64 finalizer (Vigna 2014 constants); small changes in
// either input produce well-distributed output changes.
//
// Complexity: O(1).
func DeriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// partialShuffle performs the first k steps of a Fisher–Yates shuffle of a,
// leaving a uniform random k-subset, in draw order, in a[:k].
//
// Complexity: O(k) time, O(1) extra space.
func partialShuffle(a []int, k int, r *rand.Rand) {
	n := len(a)
	for i := 0; i < k && i < n-1; i++ {
		j := i + r.IntN(n-i)
		a[i], a[j] = a[j], a[i]
	}
}
