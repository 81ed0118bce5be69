package store

import (
	"sync"
	"time"

	"focusforge-be/internal/entity"
)

// Session lifecycle states.
const (
	StateActive   = "ACTIVE"
	StateComplete = "COMPLETE"
)

// Progress is the derived view of how far a user is through a ritual.
type Progress struct {
	CompletedSteps    int `json:"completed_steps"`
	TotalSteps        int `json:"total_steps"`
	Percentage        int `json:"percentage"`
	CurrentStepNumber int `json:"current_step_number"`
}

// RitualSession is the in-memory serving state for one active ritual. It owns
// its Ritual exclusively; the durable record lives in the session memory
// store. All accessors lock, so two requests racing on the same session id
// cannot observe a partial update.
type RitualSession struct {
	mu sync.RWMutex

	Ritual         *entity.Ritual
	CurrentStep    int
	TotalSteps     int
	CompletedSteps []int
	StartedAt      time.Time
}

func NewRitualSession(ritual *entity.Ritual) *RitualSession {
	return &RitualSession{
		Ritual:         ritual,
		CurrentStep:    1,
		TotalSteps:     len(ritual.Steps),
		CompletedSteps: make([]int, 0, len(ritual.Steps)),
		StartedAt:      time.Now(),
	}
}

// Current returns the step the user is on, the progress snapshot, and whether
// the ritual is complete (no step remains).
func (s *RitualSession) Current() (*entity.RitualStep, Progress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stepLocked(s.CurrentStep), s.progressLocked(), s.completeLocked()
}

// Advance marks the current step completed and moves to the next one. It
// returns the new current step (nil once the ritual is complete).
func (s *RitualSession) Advance() (*entity.RitualStep, Progress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CompletedSteps = append(s.CompletedSteps, s.CurrentStep)
	s.CurrentStep++
	return s.stepLocked(s.CurrentStep), s.progressLocked(), s.completeLocked()
}

// Progress returns a consistent progress snapshot.
func (s *RitualSession) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progressLocked()
}

// State reports ACTIVE or COMPLETE.
func (s *RitualSession) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.completeLocked() {
		return StateComplete
	}
	return StateActive
}

func (s *RitualSession) completeLocked() bool {
	return s.CurrentStep > s.TotalSteps
}

func (s *RitualSession) stepLocked(stepNumber int) *entity.RitualStep {
	for i := range s.Ritual.Steps {
		if s.Ritual.Steps[i].StepNumber == stepNumber {
			return &s.Ritual.Steps[i]
		}
	}
	return nil
}

func (s *RitualSession) progressLocked() Progress {
	completed := len(s.CompletedSteps)
	percentage := 0
	if s.TotalSteps > 0 {
		percentage = completed * 100 / s.TotalSteps
	}
	return Progress{
		CompletedSteps:    completed,
		TotalSteps:        s.TotalSteps,
		Percentage:        percentage,
		CurrentStepNumber: s.CurrentStep,
	}
}
