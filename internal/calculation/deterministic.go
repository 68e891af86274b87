package calculation

import "time"

// seedFunc returns a pseudo-random seed (override for deterministic Monte Carlo tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// resolveBaseSeed keeps a caller-supplied seed and draws one otherwise.
func resolveBaseSeed(requested int64) int64 {
	if requested != 0 {
		return requested
	}
	return seedFunc()
}

// runSeed derives the seed of run r (1-based) from the base seed.
func runSeed(base int64, run int) int64 {
	return base + int64(run)
}
