package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"focusforge-be/internal/apperrors"
	"focusforge-be/internal/constant"
	"focusforge-be/internal/dto"
	"focusforge-be/internal/entity"
	"focusforge-be/internal/pkg/logger"
	"focusforge-be/internal/repository/unitofwork"
	"focusforge-be/pkg/events"
	pktNats "focusforge-be/pkg/nats"

	"github.com/google/uuid"
)

type IWorkflowService interface {
	// Run executes the ritual-creation pipeline: input -> presentation ->
	// feedback (the last stage only when a feedback payload is supplied).
	// Any stage failure aborts the pipeline; the already-persisted session
	// memory record is deliberately not rolled back.
	Run(ctx context.Context, text string, feedback *dto.FeedbackRequest) (*dto.WorkflowResponse, error)
}

type workflowService struct {
	architect        IRitualArchitectService
	guide            IRitualGuideService
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	sysLogger        logger.ILogger
}

func NewWorkflowService(
	architect IRitualArchitectService,
	guide IRitualGuideService,
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IWorkflowService {
	return &workflowService{
		architect:        architect,
		guide:            guide,
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		sysLogger:        sysLogger,
	}
}

func (s *workflowService) Run(ctx context.Context, text string, feedback *dto.FeedbackRequest) (*dto.WorkflowResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Validation("input text must not be empty")
	}

	// Session ids are generated server-side; clients never supply them.
	sessionId := uuid.New()
	s.sysLogger.Info("workflow", "Starting workflow", map[string]interface{}{
		"session_id": sessionId,
	})

	ritual, err := s.inputStage(ctx, sessionId, text)
	if err != nil {
		return nil, err
	}

	session, err := s.presentationStage(ctx, ritual)
	if err != nil {
		return nil, err
	}

	result := &dto.WorkflowResponse{
		SessionId: sessionId,
		Ritual:    toRitualResponse(ritual),
		Session:   session,
	}

	if feedback != nil {
		feedbackRes, err := s.feedbackStage(ctx, sessionId, feedback)
		if err != nil {
			return nil, err
		}
		result.Feedback = feedbackRes
	}

	return result, nil
}

// inputStage generates the ritual and persists the durable session memory
// record with an unset rating.
func (s *workflowService) inputStage(ctx context.Context, sessionId uuid.UUID, text string) (*entity.Ritual, error) {
	ritual, err := s.architect.Generate(ctx, text, sessionId)
	if err != nil {
		return nil, err
	}

	stepTypes := make([]string, len(ritual.Steps))
	for i, step := range ritual.Steps {
		stepTypes[i] = step.StepType
	}

	memoryRecord := &entity.SessionMemory{
		SessionId:   sessionId,
		UserInput:   text,
		UserState:   ritual.UserState,
		RitualSteps: stepTypes,
		Rating:      0, // unset until feedback
		Timestamp:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionMemoryRepository().Create(ctx, memoryRecord); err != nil {
		return nil, apperrors.Persistence("failed to store session memory", err)
	}

	// The similarity vector is computed off the request path.
	msg := dto.PublishEmbedSessionMessage{SessionId: sessionId}
	msgJson, _ := json.Marshal(msg)
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.sysLogger.Warn("workflow", "Failed to queue session embedding", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: constant.EventRitualCreated,
			Data: map[string]interface{}{
				"session_id": sessionId,
				"user_state": ritual.UserState,
				"steps":      len(ritual.Steps),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.sysLogger.Warn("workflow", "Failed to publish ritual created event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return ritual, nil
}

func (s *workflowService) presentationStage(ctx context.Context, ritual *entity.Ritual) (*dto.StartSessionResponse, error) {
	return s.guide.StartSession(ctx, ritual)
}

func (s *workflowService) feedbackStage(ctx context.Context, sessionId uuid.UUID, feedback *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	return s.guide.CollectFeedback(ctx, sessionId, feedback.Rating)
}

func toRitualResponse(ritual *entity.Ritual) *dto.RitualResponse {
	steps := make([]dto.RitualStepResponse, len(ritual.Steps))
	for i, step := range ritual.Steps {
		steps[i] = dto.RitualStepResponse{
			StepNumber: step.StepNumber,
			Title:      step.Title,
			Content:    step.Content,
			StepType:   step.StepType,
		}
	}
	return &dto.RitualResponse{
		SessionId: ritual.SessionId,
		UserState: ritual.UserState,
		Steps:     steps,
		CreatedAt: ritual.CreatedAt,
	}
}
