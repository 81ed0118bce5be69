package ritual

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepCountBounds(t *testing.T) {
	s := NewSampler(1)
	for i := 0; i < 1000; i++ {
		n := s.StepCount(4, 7)
		assert.GreaterOrEqual(t, n, 4)
		assert.LessOrEqual(t, n, 7)
	}
}

func TestStepCountDegenerateRange(t *testing.T) {
	s := NewSampler(1)
	assert.Equal(t, 5, s.StepCount(5, 5))
	assert.Equal(t, 5, s.StepCount(5, 3))
}

func TestSampleReproducibleWithFixedSeed(t *testing.T) {
	weights := map[string]float64{
		"breathing":  5,
		"grounding":  3,
		"journaling": 2,
	}

	a := NewSampler(42).Sample(weights, 20)
	b := NewSampler(42).Sample(weights, 20)
	assert.Equal(t, a, b)

	c := NewSampler(43).Sample(weights, 20)
	assert.NotEqual(t, a, c)
}

func TestSampleOnlyDrawsKnownTypes(t *testing.T) {
	weights := map[string]float64{
		"breathing": 1,
		"movement":  1,
	}

	s := NewSampler(7)
	for _, picked := range s.Sample(weights, 100) {
		assert.Contains(t, weights, picked)
	}
}

func TestSampleIgnoresZeroWeightTypes(t *testing.T) {
	weights := map[string]float64{
		"breathing": 5,
		"movement":  0,
	}

	s := NewSampler(9)
	for _, picked := range s.Sample(weights, 200) {
		assert.Equal(t, "breathing", picked)
	}
}

func TestSampleRoughlyFollowsWeights(t *testing.T) {
	weights := map[string]float64{
		"breathing":  9,
		"journaling": 1,
	}

	s := NewSampler(3)
	counts := map[string]int{}
	for _, picked := range s.Sample(weights, 10000) {
		counts[picked]++
	}

	// 9:1 distribution; allow a generous band around the expected 9000.
	assert.Greater(t, counts["breathing"], 8500)
	assert.Less(t, counts["breathing"], 9500)
}

func TestSampleAllZeroWeightsFallsBackToUniform(t *testing.T) {
	weights := map[string]float64{
		"breathing": 0,
		"movement":  0,
	}

	s := NewSampler(11)
	picked := s.Sample(weights, 50)
	assert.Len(t, picked, 50)
	for _, p := range picked {
		assert.Contains(t, weights, p)
	}
}
