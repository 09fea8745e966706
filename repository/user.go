package repository

import (
	"context"

	"github.com/fastygo/users/domain"
)

// UserRepository persists users. Implementations return domain errors:
// ErrUserNotFound when no document matches, CONFLICT on uniqueness
// violations, UNAVAILABLE or INTERNAL for everything else.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id domain.ID, patch domain.UserPatch) error
	Delete(ctx context.Context, id domain.ID) error
}
