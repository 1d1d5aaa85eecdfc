package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySurveyID filters feedback responses by the surveyed user's id.
type BySurveyID struct {
	SurveyID uuid.UUID
}

func (s BySurveyID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("survey_id = ?", s.SurveyID)
}

// ByRelationship filters feedback responses by relationship group.
type ByRelationship struct {
	Relationship string
}

func (s ByRelationship) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("relationship = ?", s.Relationship)
}
