package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Delete removes the user; patients go with it through the cascading FK.
	Delete(ctx context.Context, id uuid.UUID) error
}
