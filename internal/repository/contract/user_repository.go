package contract

import (
	"context"

	"reflect360-be/internal/entity"
	"reflect360-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdatePassword(ctx context.Context, userId uuid.UUID, passwordHash string) error
}
