package dto

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"
)

type NotificationResponse struct {
	Id        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"created_at"`
}
