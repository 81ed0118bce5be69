package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"focusforge-be/internal/apperrors"
	"focusforge-be/internal/dto"
	"focusforge-be/internal/entity"
	"focusforge-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchitect struct {
	err   error
	calls int
}

func (f *fakeArchitect) Generate(ctx context.Context, text string, sessionId uuid.UUID) (*entity.Ritual, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Ritual{
		SessionId: sessionId,
		UserState: "Sadness",
		Steps: []entity.RitualStep{
			{StepNumber: 1, Title: "Gratitude List", Content: "Write three things.", StepType: "gratitude"},
			{StepNumber: 2, Title: "Journal", Content: "Write freely.", StepType: "journaling"},
			{StepNumber: 3, Title: "Affirm", Content: "Say it out loud.", StepType: "affirmation"},
			{StepNumber: 4, Title: "Walk", Content: "Ten minutes outside.", StepType: "movement"},
		},
		CreatedAt: time.Now(),
	}, nil
}

type capturingPublisher struct {
	payloads [][]byte
	err      error
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func newWorkflow(architect IRitualArchitectService, repo *fakeSessionMemoryRepo, publisher IPublisherService) IWorkflowService {
	registry := memory.NewSessionRegistry(time.Minute, time.Minute)
	factory := &fakeUowFactory{repo: repo}
	guide := NewRitualGuideService(registry, factory, nil, noopLogger{})
	return NewWorkflowService(architect, guide, factory, publisher, nil, noopLogger{})
}

func TestRunCreatesRitualSessionAndMemory(t *testing.T) {
	repo := newFakeSessionMemoryRepo()
	publisher := &capturingPublisher{}
	workflow := newWorkflow(&fakeArchitect{}, repo, publisher)

	res, err := workflow.Run(context.Background(), "feeling down today", nil)
	require.NoError(t, err)

	require.NotNil(t, res.Ritual)
	require.NotNil(t, res.Session)
	assert.Nil(t, res.Feedback)
	assert.Equal(t, res.SessionId, res.Ritual.SessionId)
	assert.Equal(t, res.SessionId, res.Session.SessionId)
	assert.Equal(t, 4, res.Session.TotalSteps)

	// Durable memory row exists with an unset rating and the step types.
	row := repo.rows[res.SessionId]
	require.NotNil(t, row)
	assert.Equal(t, "feeling down today", row.UserInput)
	assert.Equal(t, "Sadness", row.UserState)
	assert.Equal(t, []string{"gratitude", "journaling", "affirmation", "movement"}, row.RitualSteps)
	assert.Equal(t, 0, row.Rating)

	// The embedding job was queued for this session.
	require.Len(t, publisher.payloads, 1)
	var msg dto.PublishEmbedSessionMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, res.SessionId, msg.SessionId)
}

func TestRunRejectsEmptyText(t *testing.T) {
	architect := &fakeArchitect{}
	workflow := newWorkflow(architect, newFakeSessionMemoryRepo(), &capturingPublisher{})

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := workflow.Run(context.Background(), text, nil)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation), "text %q", text)
	}
	assert.Equal(t, 0, architect.calls)
}

func TestRunGenerationFailureStopsPipeline(t *testing.T) {
	repo := newFakeSessionMemoryRepo()
	architect := &fakeArchitect{err: apperrors.Generation("boom", errors.New("llm down"))}
	workflow := newWorkflow(architect, repo, &capturingPublisher{})

	_, err := workflow.Run(context.Background(), "text", nil)
	assert.True(t, apperrors.Is(err, apperrors.KindGeneration))
	assert.Empty(t, repo.rows)
}

func TestRunPersistenceFailureStopsPipeline(t *testing.T) {
	repo := newFakeSessionMemoryRepo()
	repo.createErr = errors.New("db down")
	workflow := newWorkflow(&fakeArchitect{}, repo, &capturingPublisher{})

	_, err := workflow.Run(context.Background(), "text", nil)
	assert.True(t, apperrors.Is(err, apperrors.KindPersistence))
}

func TestRunQueueFailureIsNotFatal(t *testing.T) {
	repo := newFakeSessionMemoryRepo()
	workflow := newWorkflow(&fakeArchitect{}, repo, &capturingPublisher{err: errors.New("bus down")})

	res, err := workflow.Run(context.Background(), "text", nil)
	require.NoError(t, err)
	assert.NotNil(t, res.Session)
}

func TestRunWithInlineFeedback(t *testing.T) {
	repo := newFakeSessionMemoryRepo()
	workflow := newWorkflow(&fakeArchitect{}, repo, &capturingPublisher{})

	res, err := workflow.Run(context.Background(), "text", &dto.FeedbackRequest{Rating: 5})
	require.NoError(t, err)

	require.NotNil(t, res.Feedback)
	assert.Equal(t, 5, res.Feedback.Rating)
	assert.Equal(t, 5, repo.rows[res.SessionId].Rating)
}

func TestRunGeneratesDistinctSessionIds(t *testing.T) {
	workflow := newWorkflow(&fakeArchitect{}, newFakeSessionMemoryRepo(), &capturingPublisher{})

	a, err := workflow.Run(context.Background(), "first", nil)
	require.NoError(t, err)
	b, err := workflow.Run(context.Background(), "second", nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionId, b.SessionId)
}
