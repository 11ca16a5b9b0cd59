package unitofwork

import (
	"context"

	"exam-proctor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ExamSessionRepository() contract.ExamSessionRepository
	DetectionEventRepository() contract.DetectionEventRepository
}
