package contract

import (
	"context"

	"focusforge-be/internal/entity"
	"focusforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionMemoryRepository interface {
	Create(ctx context.Context, memory *entity.SessionMemory) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionMemory, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionMemory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateRating sets the final rating for a session. Returns false when no
	// row matched the id.
	UpdateRating(ctx context.Context, sessionId uuid.UUID, rating int) (bool, error)

	// UpdateEmbedding stores the similarity vector computed for a session.
	UpdateEmbedding(ctx context.Context, sessionId uuid.UUID, embedding []float32) error

	// SearchSimilar returns up to topK embedded sessions rated >= minRating,
	// ordered by cosine similarity to the query vector (best first).
	SearchSimilar(ctx context.Context, embedding []float32, topK int, minRating int) ([]*entity.SimilarSession, error)
}
