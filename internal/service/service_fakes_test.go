package service

import (
	"context"
	"fmt"
	"sync"

	"focusforge-be/internal/entity"
	"focusforge-be/internal/repository/contract"
	"focusforge-be/internal/repository/specification"
	"focusforge-be/internal/repository/unitofwork"
	"focusforge-be/pkg/ai/state"
	"focusforge-be/pkg/ai/step"
	"focusforge-be/pkg/embedding"

	"github.com/google/uuid"
)

// Shared in-memory fakes for the service tests.

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeClassifier struct {
	result *state.Result
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (*state.Result, error) {
	return f.result, f.err
}

type generatorCall struct {
	stepType       string
	position       int
	previousTitles []string
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls []generatorCall
	// failAt makes the Nth call (1-based) fail; 0 disables.
	failAt int
}

func (f *fakeGenerator) GenerateStep(ctx context.Context, stepType, userState string, position int, previousTitles []string) (*step.GeneratedStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, generatorCall{
		stepType:       stepType,
		position:       position,
		previousTitles: append([]string(nil), previousTitles...),
	})
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return nil, fmt.Errorf("model unavailable")
	}
	return &step.GeneratedStep{
		Title:    fmt.Sprintf("%s #%d", stepType, len(f.calls)),
		Content:  "Do the exercise.",
		StepType: stepType,
	}, nil
}

type fakeEmbedding struct {
	err error
}

func (f *fakeEmbedding) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

// fakeSessionMemoryRepo is a map-backed stand-in for the gorm repository.
type fakeSessionMemoryRepo struct {
	mu         sync.Mutex
	rows       map[uuid.UUID]*entity.SessionMemory
	similar    []*entity.SimilarSession
	embeddings map[uuid.UUID][]float32

	createErr error
	findErr   error
	updateErr error
	searchErr error

	searchCalls int
}

func newFakeSessionMemoryRepo() *fakeSessionMemoryRepo {
	return &fakeSessionMemoryRepo{rows: make(map[uuid.UUID]*entity.SessionMemory)}
}

func (r *fakeSessionMemoryRepo) Create(ctx context.Context, memory *entity.SessionMemory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.rows[memory.SessionId] = memory
	return nil
}

func (r *fakeSessionMemoryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionMemory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, spec := range specs {
		if byID, ok := spec.(specification.BySessionID); ok {
			return r.rows[byID.SessionID], nil
		}
	}
	return nil, nil
}

func (r *fakeSessionMemoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionMemory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.SessionMemory, 0, len(r.rows))
	for _, row := range r.rows {
		all = append(all, row)
	}
	return all, nil
}

func (r *fakeSessionMemoryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeSessionMemoryRepo) UpdateRating(ctx context.Context, sessionId uuid.UUID, rating int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return false, r.updateErr
	}
	row, ok := r.rows[sessionId]
	if !ok {
		return false, nil
	}
	row.Rating = rating
	return true, nil
}

func (r *fakeSessionMemoryRepo) UpdateEmbedding(ctx context.Context, sessionId uuid.UUID, embedding []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.embeddings == nil {
		r.embeddings = make(map[uuid.UUID][]float32)
	}
	r.embeddings[sessionId] = embedding
	return nil
}

func (r *fakeSessionMemoryRepo) embeddingFor(sessionId uuid.UUID) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.embeddings[sessionId]
}

func (r *fakeSessionMemoryRepo) SearchSimilar(ctx context.Context, embedding []float32, topK int, minRating int) ([]*entity.SimilarSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchCalls++
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.similar, nil
}

type fakeUow struct {
	repo contract.SessionMemoryRepository
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }
func (u *fakeUow) SessionMemoryRepository() contract.SessionMemoryRepository {
	return u.repo
}

type fakeUowFactory struct {
	repo contract.SessionMemoryRepository
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{repo: f.repo}
}
