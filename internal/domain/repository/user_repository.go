package repository

import (
	"context"

	"hospital-directory/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository finders return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*entity.User, error)
	Search(ctx context.Context, query string) ([]entity.User, error)
}
