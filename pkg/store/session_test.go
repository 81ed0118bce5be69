package store

import (
	"testing"

	"focusforge-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRitual(steps int) *entity.Ritual {
	r := &entity.Ritual{
		SessionId: uuid.New(),
		UserState: "Burnout",
	}
	for i := 1; i <= steps; i++ {
		r.Steps = append(r.Steps, entity.RitualStep{
			StepNumber: i,
			Title:      "Step",
			Content:    "Do the thing",
			StepType:   "breathing",
		})
	}
	return r
}

func TestNewSessionStartsAtFirstStep(t *testing.T) {
	session := NewRitualSession(testRitual(4))

	step, progress, complete := session.Current()
	require.NotNil(t, step)

	assert.Equal(t, 1, step.StepNumber)
	assert.False(t, complete)
	assert.Equal(t, 0, progress.CompletedSteps)
	assert.Equal(t, 0, progress.Percentage)
	assert.Equal(t, StateActive, session.State())
}

func TestCompletedStaysOneBehindCurrent(t *testing.T) {
	session := NewRitualSession(testRitual(5))

	for i := 0; i < 4; i++ {
		_, progress, _ := session.Advance()
		assert.Equal(t, progress.CurrentStepNumber-1, progress.CompletedSteps)
	}
}

func TestAdvanceThroughWholeRitual(t *testing.T) {
	total := 4
	session := NewRitualSession(testRitual(total))

	for i := 1; i < total; i++ {
		step, progress, complete := session.Advance()
		require.NotNil(t, step)
		assert.Equal(t, i+1, step.StepNumber)
		assert.False(t, complete)
		assert.Equal(t, i, progress.CompletedSteps)
	}

	// Advancing off the last step completes the ritual exactly once.
	step, progress, complete := session.Advance()
	assert.Nil(t, step)
	assert.True(t, complete)
	assert.Equal(t, total, progress.CompletedSteps)
	assert.Equal(t, 100, progress.Percentage)
	assert.Equal(t, StateComplete, session.State())
}

func TestProgressPercentageFloors(t *testing.T) {
	session := NewRitualSession(testRitual(7))

	session.Advance()
	session.Advance()

	progress := session.Progress()
	// 2 of 7 completed, 200/7 = 28.57 floors to 28.
	assert.Equal(t, 28, progress.Percentage)
}

func TestProgressZeroTotalSteps(t *testing.T) {
	session := NewRitualSession(testRitual(0))
	progress := session.Progress()
	assert.Equal(t, 0, progress.Percentage)

	_, _, complete := session.Current()
	assert.True(t, complete)
}
