package contract

import (
	"context"

	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/repository/specification"
)

// DetectionEventRepository is the append-only audit log. Events are never
// updated or deleted by the core; cascade removal belongs to storage.
type DetectionEventRepository interface {
	Create(ctx context.Context, event *entity.DetectionEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DetectionEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
