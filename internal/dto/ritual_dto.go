package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRitualRequest struct {
	Text string `json:"text" validate:"required,min=1"`
	// Optional feedback payload; when present the workflow runs its feedback
	// stage immediately after presentation.
	Feedback *FeedbackRequest `json:"feedback,omitempty" validate:"omitempty"`
}

type FeedbackRequest struct {
	Rating int `json:"rating" validate:"required,gte=1,lte=5"`
}

type RitualStepResponse struct {
	StepNumber int    `json:"step_number"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	StepType   string `json:"step_type"`
}

type RitualResponse struct {
	SessionId uuid.UUID            `json:"session_id"`
	UserState string               `json:"user_state"`
	Steps     []RitualStepResponse `json:"steps"`
	CreatedAt time.Time            `json:"created_at"`
}

type ProgressResponse struct {
	CompletedSteps    int `json:"completed_steps"`
	TotalSteps        int `json:"total_steps"`
	Percentage        int `json:"percentage"`
	CurrentStepNumber int `json:"current_step_number"`
}

type StartSessionResponse struct {
	SessionId   uuid.UUID           `json:"session_id"`
	TotalSteps  int                 `json:"total_steps"`
	CurrentStep *RitualStepResponse `json:"current_step"`
	Progress    ProgressResponse    `json:"progress"`
	Message     string              `json:"message"`
}

type CurrentStepResponse struct {
	SessionId   uuid.UUID           `json:"session_id"`
	CurrentStep *RitualStepResponse `json:"current_step"`
	Progress    ProgressResponse    `json:"progress"`
	IsComplete  bool                `json:"is_complete"`
}

type NextStepResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	// Nil once the ritual is complete.
	CurrentStep    *RitualStepResponse `json:"current_step,omitempty"`
	Progress       ProgressResponse    `json:"progress"`
	RitualComplete bool                `json:"ritual_complete"`
	Message        string              `json:"message,omitempty"`
}

type FeedbackResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
}

// WorkflowResponse is the aggregate result of one ritual-creation pipeline.
type WorkflowResponse struct {
	SessionId uuid.UUID             `json:"session_id"`
	Ritual    *RitualResponse       `json:"ritual"`
	Session   *StartSessionResponse `json:"session"`
	Feedback  *FeedbackResponse     `json:"feedback,omitempty"`
}

// PublishEmbedSessionMessage is the payload for the async embedding topic.
type PublishEmbedSessionMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}
