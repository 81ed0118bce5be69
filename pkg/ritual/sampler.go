package ritual

import (
	"math/rand"
	"sort"
	"sync"
)

// Sampler draws step counts and step types from a weight distribution. It
// owns its RNG so tests can seed it for reproducible sequences; the mutex
// makes it safe to share across concurrent requests (rand.Rand is not).
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSampler(seed int64) *Sampler {
	return &Sampler{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// StepCount draws a uniform integer in [min, max] inclusive.
func (s *Sampler) StepCount(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

// Sample draws n step types by weighted sampling with replacement. Duplicate
// types across the n draws are allowed. Keys are iterated in sorted order so
// a fixed seed always yields the same sequence.
func (s *Sampler) Sample(weights map[string]float64, n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]string, 0, len(weights))
	for stepType := range weights {
		types = append(types, stepType)
	}
	sort.Strings(types)

	var total float64
	for _, stepType := range types {
		total += weights[stepType]
	}

	picked := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if total <= 0 {
			// Degenerate table: fall back to uniform choice.
			picked = append(picked, types[s.rng.Intn(len(types))])
			continue
		}
		target := s.rng.Float64() * total
		for _, stepType := range types {
			target -= weights[stepType]
			if target < 0 {
				picked = append(picked, stepType)
				break
			}
		}
	}
	return picked
}
