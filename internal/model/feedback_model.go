package model

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackResponse rows are write-once; there is no update or delete path.
type FeedbackResponse struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SurveyId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Relationship string    `gorm:"type:varchar(50);not null"`
	QChange      string    `gorm:"type:text;not null;column:q1_change"`
	QActions     string    `gorm:"type:text;not null;column:q2_actions"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (FeedbackResponse) TableName() string {
	return "feedback_responses"
}
