package contract

import (
	"context"

	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/repository/specification"
)

type ExamSessionRepository interface {
	Create(ctx context.Context, session *entity.ExamSession) error
	Update(ctx context.Context, session *entity.ExamSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExamSession, error)
	// FindOneForUpdate locks the session row (FOR UPDATE) for the duration
	// of the surrounding transaction. Counter increments and end() both go
	// through this lock so appends on the same session are serialized.
	FindOneForUpdate(ctx context.Context, specs ...specification.Specification) (*entity.ExamSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExamSession, error)
	// IncrementCounter bumps the counter column for a recognized category
	// with an in-database expression, never a read-modify-write in Go.
	IncrementCounter(ctx context.Context, session *entity.ExamSession, category string) error
	// UpdateScore overwrites the cached integrity score from a recompute.
	UpdateScore(ctx context.Context, session *entity.ExamSession, score int) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
