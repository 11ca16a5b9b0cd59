package implementation

import (
	"context"

	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/mapper"
	"exam-proctor-be/internal/model"
	"exam-proctor-be/internal/repository/contract"
	"exam-proctor-be/internal/repository/specification"

	"gorm.io/gorm"
)

type DetectionEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DetectionEventMapper
}

func NewDetectionEventRepository(db *gorm.DB) contract.DetectionEventRepository {
	return &DetectionEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewDetectionEventMapper(),
	}
}

func (r *DetectionEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DetectionEventRepositoryImpl) Create(ctx context.Context, event *entity.DetectionEvent) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *DetectionEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DetectionEvent, error) {
	var models []*model.DetectionEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DetectionEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DetectionEvent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
