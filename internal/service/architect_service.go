package service

import (
	"context"
	"time"

	"focusforge-be/internal/apperrors"
	"focusforge-be/internal/constant"
	"focusforge-be/internal/entity"
	"focusforge-be/internal/pkg/logger"
	"focusforge-be/internal/repository/unitofwork"
	"focusforge-be/pkg/ai/state"
	"focusforge-be/pkg/ai/step"
	"focusforge-be/pkg/embedding"
	"focusforge-be/pkg/ritual"

	"github.com/google/uuid"
)

// StateClassifier resolves free text to an emotional state.
type StateClassifier interface {
	Classify(ctx context.Context, text string) (*state.Result, error)
}

// StepGenerator produces content for one ritual step.
type StepGenerator interface {
	GenerateStep(ctx context.Context, stepType, userState string, position int, previousTitles []string) (*step.GeneratedStep, error)
}

type IRitualArchitectService interface {
	// Generate assembles a complete ritual for the given input text. A ritual
	// is all-or-nothing: any failure while generating the initial steps
	// aborts the whole call.
	Generate(ctx context.Context, text string, sessionId uuid.UUID) (*entity.Ritual, error)
}

type architectService struct {
	classifier        StateClassifier
	generator         StepGenerator
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	weights           ritual.WeightTable
	sampler           *ritual.Sampler
	sysLogger         logger.ILogger
}

func NewRitualArchitectService(
	classifier StateClassifier,
	generator StepGenerator,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	weights ritual.WeightTable,
	sampler *ritual.Sampler,
	sysLogger logger.ILogger,
) IRitualArchitectService {
	return &architectService{
		classifier:        classifier,
		generator:         generator,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		weights:           weights,
		sampler:           sampler,
		sysLogger:         sysLogger,
	}
}

func (s *architectService) Generate(ctx context.Context, text string, sessionId uuid.UUID) (*entity.Ritual, error) {
	// 1. Classify the emotional state
	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, apperrors.Classification("failed to classify user state", err)
	}
	s.sysLogger.Info("architect", "User state classified", map[string]interface{}{
		"session_id": sessionId,
		"state":      result.State,
		"confidence": result.Confidence,
	})

	// 2. Retrieve well-rated similar sessions for augmentation. Retrieval is
	// best-effort: a ritual without augmentation is still a valid ritual.
	similar := s.retrieveSimilar(ctx, text, result.State)

	// 3. Resolve the sampling distribution, falling back when unmapped
	weights := s.weights.Resolve(result.State)

	// 4-5. Draw the step count and step types (with replacement)
	n := s.sampler.StepCount(constant.MinRitualSteps, constant.MaxRitualSteps)
	stepTypes := s.sampler.Sample(weights, n)

	// 6. Generate content sequentially; each call sees the earlier titles
	steps := make([]entity.RitualStep, 0, constant.MaxRitualSteps)
	titles := make([]string, 0, constant.MaxRitualSteps)
	for i, stepType := range stepTypes {
		generated, err := s.generator.GenerateStep(ctx, stepType, result.State, i+1, titles)
		if err != nil {
			return nil, apperrors.Generation("failed to generate ritual step", err)
		}
		steps = append(steps, entity.RitualStep{
			StepNumber: i + 1,
			Title:      generated.Title,
			Content:    generated.Content,
			StepType:   generated.StepType,
		})
		titles = append(titles, generated.Title)
	}

	// 7. Augment from similar sessions, best first, capped at the maximum
	steps, titles = s.augment(ctx, steps, titles, similar, weights, result.State)

	// 8. Restore the numbering invariant
	if len(steps) > constant.MaxRitualSteps {
		steps = steps[:constant.MaxRitualSteps]
	}
	for i := range steps {
		steps[i].StepNumber = i + 1
	}

	s.sysLogger.Info("architect", "Ritual generated", map[string]interface{}{
		"session_id": sessionId,
		"state":      result.State,
		"steps":      len(steps),
	})

	return &entity.Ritual{
		SessionId: sessionId,
		UserState: result.State,
		Steps:     steps,
		CreatedAt: time.Now(),
	}, nil
}

func (s *architectService) retrieveSimilar(ctx context.Context, text, userState string) []*entity.SimilarSession {
	res, err := s.embeddingProvider.Generate(text+" "+userState, "RETRIEVAL_QUERY")
	if err != nil {
		s.sysLogger.Warn("architect", "Similarity query embedding failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	similar, err := uow.SessionMemoryRepository().SearchSimilar(
		ctx,
		res.Embedding.Values,
		constant.SimilarSessionTopK,
		constant.RetrievalRatingThreshold,
	)
	if err != nil {
		s.sysLogger.Warn("architect", "Similar session retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return similar
}

// augment appends steps mined from well-rated similar sessions, keeping their
// similarity-ranked order. A failed augmentation attempt is skipped, not
// fatal.
func (s *architectService) augment(
	ctx context.Context,
	steps []entity.RitualStep,
	titles []string,
	similar []*entity.SimilarSession,
	weights map[string]float64,
	userState string,
) ([]entity.RitualStep, []string) {
	for _, session := range similar {
		if session.Rating < constant.AugmentRatingThreshold {
			continue
		}
		for _, stepType := range session.RitualSteps {
			if len(steps) >= constant.MaxRitualSteps {
				return steps, titles
			}
			if _, known := weights[stepType]; !known {
				continue
			}
			generated, err := s.generator.GenerateStep(ctx, stepType, userState, len(steps)+1, titles)
			if err != nil {
				s.sysLogger.Warn("architect", "Augmentation step skipped", map[string]interface{}{
					"step_type": stepType,
					"error":     err.Error(),
				})
				continue
			}
			steps = append(steps, entity.RitualStep{
				StepNumber: len(steps) + 1,
				Title:      generated.Title,
				Content:    generated.Content,
				StepType:   generated.StepType,
			})
			titles = append(titles, generated.Title)
		}
	}
	return steps, titles
}
