package mapper

import (
	"encoding/json"

	"focusforge-be/internal/entity"
	"focusforge-be/internal/model"
)

type SessionMemoryMapper struct{}

func NewSessionMemoryMapper() *SessionMemoryMapper {
	return &SessionMemoryMapper{}
}

func (m *SessionMemoryMapper) ToEntity(s *model.SessionMemory) *entity.SessionMemory {
	if s == nil {
		return nil
	}

	var steps []string
	if len(s.RitualSteps) > 0 {
		// A row with unreadable step types is still a valid memory; keep
		// steps empty rather than failing the whole read.
		_ = json.Unmarshal(s.RitualSteps, &steps)
	}

	return &entity.SessionMemory{
		SessionId:   s.SessionId,
		UserInput:   s.UserInput,
		UserState:   s.UserState,
		RitualSteps: steps,
		Rating:      s.Rating,
		Timestamp:   s.Timestamp,
	}
}

func (m *SessionMemoryMapper) ToModel(s *entity.SessionMemory) *model.SessionMemory {
	if s == nil {
		return nil
	}

	steps := s.RitualSteps
	if steps == nil {
		steps = []string{}
	}
	stepsJson, _ := json.Marshal(steps)

	return &model.SessionMemory{
		SessionId:   s.SessionId,
		UserInput:   s.UserInput,
		UserState:   s.UserState,
		RitualSteps: stepsJson,
		Rating:      s.Rating,
		Timestamp:   s.Timestamp,
	}
}
