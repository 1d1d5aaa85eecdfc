package contract

import (
	"context"

	"reflect360-be/internal/entity"
	"reflect360-be/internal/repository/specification"
)

// FeedbackRepository is create-and-read only; responses are immutable.
type FeedbackRepository interface {
	Create(ctx context.Context, response *entity.FeedbackResponse) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeedbackResponse, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
