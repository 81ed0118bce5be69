package mapper

import (
	"testing"
	"time"

	"focusforge-be/internal/entity"
	"focusforge-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelAndBack(t *testing.T) {
	m := NewSessionMemoryMapper()
	src := &entity.SessionMemory{
		SessionId:   uuid.New(),
		UserInput:   "racing thoughts",
		UserState:   "Anxiety and Overwhelm",
		RitualSteps: []string{"breathing", "grounding", "journaling"},
		Rating:      4,
		Timestamp:   time.Now(),
	}

	got := m.ToEntity(m.ToModel(src))
	require.NotNil(t, got)
	assert.Equal(t, src.SessionId, got.SessionId)
	assert.Equal(t, src.RitualSteps, got.RitualSteps)
	assert.Equal(t, src.Rating, got.Rating)
}

func TestToModelNilStepsBecomesEmptyArray(t *testing.T) {
	m := NewSessionMemoryMapper()
	out := m.ToModel(&entity.SessionMemory{SessionId: uuid.New()})
	assert.JSONEq(t, "[]", string(out.RitualSteps))
}

func TestToEntityTolerantOfBadStepsJSON(t *testing.T) {
	m := NewSessionMemoryMapper()
	got := m.ToEntity(&model.SessionMemory{
		SessionId:   uuid.New(),
		UserInput:   "x",
		UserState:   "Sadness",
		RitualSteps: []byte("{broken"),
	})
	require.NotNil(t, got)
	assert.Empty(t, got.RitualSteps)
}

func TestNilRoundTrips(t *testing.T) {
	m := NewSessionMemoryMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
