// Package memory is a test double for repository.UserRepository. It is not
// wired into the server; tests use it in place of the document store. It
// mirrors the store's id ordering and its id and email uniqueness constraints.
package memory

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fastygo/users/domain"
	"github.com/fastygo/users/repository"
)

// ErrStoreDown is returned by every call while the repository is marked down.
var ErrStoreDown = errors.New("server selection error: server selection timeout")

type UserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
	down  bool
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

var _ repository.UserRepository = (*UserRepository)(nil)

// SetDown toggles simulated store unavailability.
func (r *UserRepository) SetDown(down bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.down = down
}

func (r *UserRepository) Ping(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return ErrStoreDown
	}
	return nil
}

func (r *UserRepository) List(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return nil, unavailable("List failed")
	}

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return idLess(users[i].ID, users[j].ID) })
	return users, nil
}

func (r *UserRepository) GetByID(_ context.Context, id domain.ID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return nil, unavailable("Lookup failed")
	}

	u, ok := r.users[key(id)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return nil, unavailable("Insert failed")
	}

	created := *user
	if created.ID == nil {
		created.ID = domain.GeneratedID(primitive.NewObjectID())
	}
	if _, exists := r.users[key(created.ID)]; exists {
		return nil, domain.NewError(domain.ErrCodeConflict, "ID or Email already exists")
	}
	if r.emailTaken(created.Email, "") {
		return nil, domain.NewError(domain.ErrCodeConflict, "ID or Email already exists")
	}
	r.users[key(created.ID)] = created
	return &created, nil
}

func (r *UserRepository) Update(_ context.Context, id domain.ID, patch domain.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return unavailable("Update failed")
	}
	if patch.IsEmpty() {
		return domain.ErrNoUpdatableFields
	}

	k := key(id)
	u, ok := r.users[k]
	if !ok {
		return domain.ErrUserNotFound
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, k) {
		return domain.NewError(domain.ErrCodeConflict, "Email already exists")
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	r.users[k] = u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.down {
		return unavailable("Delete failed")
	}

	k := key(id)
	if _, ok := r.users[k]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, k)
	return nil
}

func (r *UserRepository) emailTaken(email, exceptKey string) bool {
	for k, u := range r.users {
		if k != exceptKey && u.Email == email {
			return true
		}
	}
	return false
}

// key keeps the two id kinds apart, as the store does for a string and an
// ObjectID with the same hex text.
func key(id domain.ID) string {
	switch v := id.(type) {
	case domain.GeneratedID:
		return "oid:" + v.String()
	default:
		return "str:" + id.String()
	}
}

// idLess orders strings before object ids, matching the store's type ordering.
func idLess(a, b domain.ID) bool {
	ga, aGenerated := a.(domain.GeneratedID)
	gb, bGenerated := b.(domain.GeneratedID)
	switch {
	case aGenerated && bGenerated:
		oa, ob := ga.ObjectID(), gb.ObjectID()
		return bytes.Compare(oa[:], ob[:]) < 0
	case aGenerated != bGenerated:
		return bGenerated
	default:
		return a.String() < b.String()
	}
}

func unavailable(message string) error {
	return domain.WrapError(domain.ErrCodeUnavailable, message, ErrStoreDown)
}
