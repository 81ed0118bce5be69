package service

import (
	"context"
	"fmt"
	"time"

	"focusforge-be/internal/apperrors"
	"focusforge-be/internal/constant"
	"focusforge-be/internal/dto"
	"focusforge-be/internal/entity"
	"focusforge-be/internal/pkg/logger"
	"focusforge-be/internal/repository/memory"
	"focusforge-be/internal/repository/specification"
	"focusforge-be/internal/repository/unitofwork"
	"focusforge-be/pkg/events"
	pktNats "focusforge-be/pkg/nats"
	"focusforge-be/pkg/store"

	"github.com/google/uuid"
)

type IRitualGuideService interface {
	StartSession(ctx context.Context, ritual *entity.Ritual) (*dto.StartSessionResponse, error)
	GetCurrentStep(ctx context.Context, sessionId uuid.UUID) (*dto.CurrentStepResponse, error)
	NextStep(ctx context.Context, sessionId uuid.UUID) (*dto.NextStepResponse, error)
	CollectFeedback(ctx context.Context, sessionId uuid.UUID, rating int) (*dto.FeedbackResponse, error)
}

type guideService struct {
	registry       *memory.SessionRegistry
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	sysLogger      logger.ILogger
}

func NewRitualGuideService(
	registry *memory.SessionRegistry,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IRitualGuideService {
	return &guideService{
		registry:       registry,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		sysLogger:      sysLogger,
	}
}

func (s *guideService) StartSession(ctx context.Context, ritual *entity.Ritual) (*dto.StartSessionResponse, error) {
	session := store.NewRitualSession(ritual)
	if !s.registry.Add(ritual.SessionId.String(), session) {
		return nil, apperrors.DuplicateSession(ritual.SessionId.String())
	}

	first, progress, _ := session.Current()
	s.sysLogger.Info("guide", "Ritual session started", map[string]interface{}{
		"session_id":  ritual.SessionId,
		"total_steps": len(ritual.Steps),
	})

	return &dto.StartSessionResponse{
		SessionId:   ritual.SessionId,
		TotalSteps:  len(ritual.Steps),
		CurrentStep: toStepResponse(first),
		Progress:    toProgressResponse(progress),
		Message:     fmt.Sprintf("Let's begin your %s ritual!", ritual.UserState),
	}, nil
}

func (s *guideService) GetCurrentStep(ctx context.Context, sessionId uuid.UUID) (*dto.CurrentStepResponse, error) {
	session, found := s.registry.Get(sessionId.String())
	if !found {
		return nil, apperrors.SessionNotFound(sessionId.String())
	}

	current, progress, complete := session.Current()
	return &dto.CurrentStepResponse{
		SessionId:   sessionId,
		CurrentStep: toStepResponse(current),
		Progress:    toProgressResponse(progress),
		IsComplete:  complete,
	}, nil
}

func (s *guideService) NextStep(ctx context.Context, sessionId uuid.UUID) (*dto.NextStepResponse, error) {
	session, found := s.registry.Get(sessionId.String())
	if !found {
		return nil, apperrors.SessionNotFound(sessionId.String())
	}

	next, progress, complete := session.Advance()
	s.sysLogger.Info("guide", "Session advanced", map[string]interface{}{
		"session_id":   sessionId,
		"current_step": progress.CurrentStepNumber,
	})

	if complete {
		return &dto.NextStepResponse{
			SessionId:      sessionId,
			Progress:       toProgressResponse(progress),
			RitualComplete: true,
			Message:        constant.MessageRitualComplete,
		}, nil
	}

	return &dto.NextStepResponse{
		SessionId:      sessionId,
		CurrentStep:    toStepResponse(next),
		Progress:       toProgressResponse(progress),
		RitualComplete: false,
	}, nil
}

// CollectFeedback requires the session in both the registry and the durable
// store. The registry entry is only evicted after the rating is durably
// saved, so a persistence failure leaves the session retryable.
func (s *guideService) CollectFeedback(ctx context.Context, sessionId uuid.UUID, rating int) (*dto.FeedbackResponse, error) {
	if rating < constant.MinRating || rating > constant.MaxRating {
		return nil, apperrors.Validation(fmt.Sprintf("rating must be between %d and %d", constant.MinRating, constant.MaxRating))
	}

	if _, found := s.registry.Get(sessionId.String()); !found {
		return nil, apperrors.SessionNotFound(sessionId.String())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.SessionMemoryRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, apperrors.Persistence("failed to load session memory", err)
	}
	if record == nil {
		return nil, apperrors.SessionNotFound(sessionId.String())
	}

	updated, err := uow.SessionMemoryRepository().UpdateRating(ctx, sessionId, rating)
	if err != nil {
		return nil, apperrors.Persistence("failed to save feedback", err)
	}
	if !updated {
		return nil, apperrors.Persistence("feedback update matched no session", nil)
	}

	s.registry.Delete(sessionId.String())
	s.sysLogger.Info("guide", "Feedback saved, session closed", map[string]interface{}{
		"session_id": sessionId,
		"rating":     rating,
	})

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: constant.EventFeedbackCollected,
			Data: map[string]interface{}{
				"session_id": sessionId,
				"rating":     rating,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.sysLogger.Warn("guide", "Failed to publish feedback event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.FeedbackResponse{
		SessionId: sessionId,
		Rating:    rating,
		Message:   constant.MessageFeedbackSaved,
	}, nil
}

func toStepResponse(step *entity.RitualStep) *dto.RitualStepResponse {
	if step == nil {
		return nil
	}
	return &dto.RitualStepResponse{
		StepNumber: step.StepNumber,
		Title:      step.Title,
		Content:    step.Content,
		StepType:   step.StepType,
	}
}

func toProgressResponse(p store.Progress) dto.ProgressResponse {
	return dto.ProgressResponse{
		CompletedSteps:    p.CompletedSteps,
		TotalSteps:        p.TotalSteps,
		Percentage:        p.Percentage,
		CurrentStepNumber: p.CurrentStepNumber,
	}
}
