package mapper

import (
	"reflect360-be/internal/entity"
	"reflect360-be/internal/model"
)

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(r *model.FeedbackResponse) *entity.FeedbackResponse {
	if r == nil {
		return nil
	}
	return &entity.FeedbackResponse{
		Id:           r.Id,
		SurveyId:     r.SurveyId,
		Relationship: entity.Relationship(r.Relationship),
		QChange:      r.QChange,
		QActions:     r.QActions,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *FeedbackMapper) ToModel(r *entity.FeedbackResponse) *model.FeedbackResponse {
	if r == nil {
		return nil
	}
	return &model.FeedbackResponse{
		Id:           r.Id,
		SurveyId:     r.SurveyId,
		Relationship: string(r.Relationship),
		QChange:      r.QChange,
		QActions:     r.QActions,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *FeedbackMapper) ToEntities(models []*model.FeedbackResponse) []*entity.FeedbackResponse {
	out := make([]*entity.FeedbackResponse, 0, len(models))
	for _, r := range models {
		out = append(out, m.ToEntity(r))
	}
	return out
}
