package implementation

import (
	"context"
	"errors"
	"fmt"

	"exam-proctor-be/internal/constant"
	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/mapper"
	"exam-proctor-be/internal/model"
	"exam-proctor-be/internal/repository/contract"
	"exam-proctor-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// counterColumns maps recognized categories to their counter column.
// Unrecognized categories have no column and increment nothing.
var counterColumns = map[string]string{
	constant.CategoryFocusLost:      "focus_lost_count",
	constant.CategoryMultipleFaces:  "multiple_faces_count",
	constant.CategoryNoFace:         "no_face_count",
	constant.CategoryPhoneDetected:  "phone_detected_count",
	constant.CategoryBooksDetected:  "books_detected_count",
	constant.CategoryDeviceDetected: "device_detected_count",
}

type ExamSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExamSessionMapper
}

func NewExamSessionRepository(db *gorm.DB) contract.ExamSessionRepository {
	return &ExamSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewExamSessionMapper(),
	}
}

func (r *ExamSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExamSessionRepositoryImpl) Create(ctx context.Context, session *entity.ExamSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExamSessionRepositoryImpl) Update(ctx context.Context, session *entity.ExamSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExamSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExamSession, error) {
	var m model.ExamSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExamSessionRepositoryImpl) FindOneForUpdate(ctx context.Context, specs ...specification.Specification) (*entity.ExamSession, error) {
	var m model.ExamSession
	query := r.applySpecifications(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		specs...,
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExamSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExamSession, error) {
	var models []*model.ExamSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ExamSessionRepositoryImpl) IncrementCounter(ctx context.Context, session *entity.ExamSession, category string) error {
	column, ok := counterColumns[category]
	if !ok {
		// Logged for audit only; nothing to count.
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&model.ExamSession{}).
		Where("id = ?", session.Id).
		UpdateColumn(column, gorm.Expr(fmt.Sprintf("%s + 1", column)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ExamSessionRepositoryImpl) UpdateScore(ctx context.Context, session *entity.ExamSession, score int) error {
	return r.db.WithContext(ctx).
		Model(&model.ExamSession{}).
		Where("id = ?", session.Id).
		UpdateColumn("integrity_score", score).Error
}

func (r *ExamSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ExamSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
