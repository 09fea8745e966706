package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/repository"
)

// CreateInput is a validated create request. An empty ID lets the store
// generate one.
type CreateInput struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

// List returns every user in ascending id order.
func (uc *UseCase) List(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}

func (uc *UseCase) Get(ctx context.Context, rawID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, domain.ResolveID(rawID))
}

// Create stores a new user. A client supplied id is kept verbatim, even when it
// looks like a generated one.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrMissingFields
	}

	user := &domain.User{
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	}
	if in.ID != "" {
		user.ID = domain.CustomID(in.ID)
	}

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("user created", zap.Stringer("id", created.ID))
	return created, nil
}

// Update applies patch to an existing user and returns the stored result.
func (uc *UseCase) Update(ctx context.Context, rawID string, patch domain.UserPatch) (*domain.User, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrNoUpdatableFields
	}

	id := domain.ResolveID(rawID)
	if _, err := uc.users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.users.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return uc.users.GetByID(ctx, id)
}

// Delete removes at most one user and returns the id as given by the caller.
func (uc *UseCase) Delete(ctx context.Context, rawID string) (string, error) {
	if err := uc.users.Delete(ctx, domain.ResolveID(rawID)); err != nil {
		return "", err
	}
	uc.logger.Debug("user deleted", zap.String("id", rawID))
	return rawID, nil
}
