package contract

import (
	"context"

	"reflect360-be/internal/model"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
}
