// FILE: internal/dto/feedback_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitResponseRequest struct {
	Relationship string `json:"relationship" validate:"required,oneof=manager peer subordinate friend other"`
	QChange      string `json:"q1_change" validate:"required"`
	QActions     string `json:"q2_actions" validate:"required"`
}

type FeedbackResponseDTO struct {
	Id           uuid.UUID `json:"id"`
	Relationship string    `json:"relationship"`
	QChange      string    `json:"q1_change"`
	QActions     string    `json:"q2_actions"`
	CreatedAt    time.Time `json:"created_at"`
}

type ResponseListResponse struct {
	Responses []FeedbackResponseDTO `json:"responses"`
	Total     int64                 `json:"total"`
}

type ShareLinkResponse struct {
	Link string `json:"link"`
}

type InviteRequest struct {
	Emails []string `json:"emails" validate:"required,min=1,dive,email"`
}

type AnalysisResponse struct {
	Summary  string            `json:"summary"`
	Themes   []string          `json:"themes"`
	PerGroup map[string]string `json:"per_group"`
	Advice   string            `json:"advice"`
	Cached   bool              `json:"cached"`
}
