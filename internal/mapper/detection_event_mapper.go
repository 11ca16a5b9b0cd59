package mapper

import (
	"encoding/json"

	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/model"

	"gorm.io/datatypes"
)

type DetectionEventMapper struct{}

func NewDetectionEventMapper() *DetectionEventMapper {
	return &DetectionEventMapper{}
}

func (m *DetectionEventMapper) ToEntity(e *model.DetectionEvent) *entity.DetectionEvent {
	if e == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		// Metadata is detector-supplied JSON; a decode failure just drops it.
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.DetectionEvent{
		Id:              e.Id,
		SessionId:       e.SessionId,
		EventType:       e.EventType,
		Description:     e.Description,
		DetectedAt:      e.DetectedAt,
		DurationSeconds: e.DurationSeconds,
		ConfidenceScore: e.ConfidenceScore,
		Metadata:        metadata,
		CreatedAt:       e.CreatedAt,
	}
}

func (m *DetectionEventMapper) ToModel(e *entity.DetectionEvent) *model.DetectionEvent {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.DetectionEvent{
		Id:              e.Id,
		SessionId:       e.SessionId,
		EventType:       e.EventType,
		Description:     e.Description,
		DetectedAt:      e.DetectedAt,
		DurationSeconds: e.DurationSeconds,
		ConfidenceScore: e.ConfidenceScore,
		Metadata:        metadata,
		CreatedAt:       e.CreatedAt,
	}
}

func (m *DetectionEventMapper) ToEntities(events []*model.DetectionEvent) []*entity.DetectionEvent {
	entities := make([]*entity.DetectionEvent, len(events))
	for i, e := range events {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
