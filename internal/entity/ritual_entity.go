package entity

import (
	"time"

	"github.com/google/uuid"
)

// RitualStep is one exercise inside a ritual. StepNumber always equals the
// step's 1-based position in the owning ritual.
type RitualStep struct {
	StepNumber int
	Title      string
	Content    string
	StepType   string
}

// Ritual is the ordered set of steps generated for one session. It is built
// once by the architect and never mutated afterwards.
type Ritual struct {
	SessionId uuid.UUID
	UserState string
	Steps     []RitualStep
	CreatedAt time.Time
}
