package memory

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
)

type userRecord struct {
	user models.User
}

type UserRepository struct {
	store *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	saved := *user
	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.RegisteredOn.IsZero() {
		saved.RegisteredOn = now()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, rec := range r.store.users {
		if id != saved.ID && rec.user.Email == saved.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	r.store.touchUser(ctx, saved.ID)
	r.store.users[saved.ID] = userRecord{user: saved}

	out := saved
	return &out, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, rec := range r.store.users {
		if rec.user.Email == email {
			u := rec.user
			return &u, nil
		}
	}

	return nil, common.ErrorNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound):
		return false, nil
	default:
		return false, err
	}
}
