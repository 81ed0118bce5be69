package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"focusforge-be/internal/entity"
	"focusforge-be/internal/mapper"
	"focusforge-be/internal/model"
	"focusforge-be/internal/repository/contract"
	"focusforge-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SessionMemoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMemoryMapper
}

func NewSessionMemoryRepository(db *gorm.DB) contract.SessionMemoryRepository {
	return &SessionMemoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMemoryMapper(),
	}
}

func (r *SessionMemoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionMemoryRepositoryImpl) Create(ctx context.Context, memory *entity.SessionMemory) error {
	m := r.mapper.ToModel(memory)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*memory = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionMemoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionMemory, error) {
	var m model.SessionMemory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionMemoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionMemory, error) {
	var models []*model.SessionMemory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SessionMemory, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *SessionMemoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SessionMemory{}).Count(&count).Error
	return count, err
}

func (r *SessionMemoryRepositoryImpl) UpdateRating(ctx context.Context, sessionId uuid.UUID, rating int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SessionMemory{}).
		Where("session_id = ?", sessionId).
		Update("rating", rating)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *SessionMemoryRepositoryImpl) UpdateEmbedding(ctx context.Context, sessionId uuid.UUID, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	return r.db.WithContext(ctx).
		Model(&model.SessionMemory{}).
		Where("session_id = ?", sessionId).
		Update("embedding", vec).Error
}

// SearchSimilar ranks embedded sessions by cosine similarity to the query
// vector. Cosine distance in pgvector is 1 - cosine_similarity, so the score
// is computed as 1 - (embedding <=> query). Rows without an embedding have
// not been processed by the consumer yet and are skipped.
func (r *SessionMemoryRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, topK int, minRating int) ([]*entity.SimilarSession, error) {
	if topK <= 0 {
		topK = 3
	}

	type result struct {
		model.SessionMemory
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("session_memories").
		Select("session_memories.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("embedding IS NOT NULL").
		Where("rating >= ?", minRating).
		Order("similarity DESC").
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*entity.SimilarSession, len(results))
	for i, res := range results {
		var steps []string
		if len(res.RitualSteps) > 0 {
			_ = json.Unmarshal(res.RitualSteps, &steps)
		}
		sessions[i] = &entity.SimilarSession{
			SessionId:   res.SessionId,
			Score:       res.Similarity,
			UserState:   res.UserState,
			RitualSteps: steps,
			Rating:      res.Rating,
		}
	}
	return sessions, nil
}
