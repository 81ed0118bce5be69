package unitofwork

import (
	"context"

	"focusforge-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionMemoryRepository() contract.SessionMemoryRepository
}
