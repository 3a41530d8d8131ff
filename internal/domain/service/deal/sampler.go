package service

import (
	"math/rand"
	"time"
)

// Sampler draws a bounded uniform subset of the configured queries each
// cycle, so outbound request volume stays capped while the full keyword
// space is eventually covered across cycles.
type Sampler struct {
	random *rand.Rand
}

// NewSampler returns a sampler seeded for reproducibility. Seed 0 falls back
// to the clock.
func NewSampler(seed int64) Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return Sampler{random: rand.New(rand.NewSource(seed))} //nolint:gosec // not security sensitive
}

// Sample returns min(n, len(keywords)) distinct keywords drawn uniformly.
// The input slice is not modified.
func (s Sampler) Sample(keywords []string, n int) []string {
	if n >= len(keywords) {
		n = len(keywords)
	}
	if n <= 0 {
		return nil
	}

	shuffled := make([]string, len(keywords))
	copy(shuffled, keywords)
	s.random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:n]
}
