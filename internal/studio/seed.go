package studio

import "time"

const randomSeedModulus = 1_000_000_000

type SeedConfig struct {
	Value  int64
	Random bool
}

// ResolveSeed picks the seed for one submission. Random seeds are derived
// from the wall clock and always fall in [0, 1e9).
func ResolveSeed(cfg SeedConfig, now time.Time) int64 {
	if !cfg.Random {
		return cfg.Value
	}
	seed := now.UnixMilli() % randomSeedModulus
	if seed < 0 {
		seed += randomSeedModulus
	}
	return seed
}
