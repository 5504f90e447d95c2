package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/coworkflow/coworkflow/internal/model"
	"github.com/coworkflow/coworkflow/internal/utils"
)

// UserRepo keeps user accounts keyed by normalised email.
type UserRepo struct {
	mu     sync.RWMutex
	nextID uint64
	byMail map[string]model.User
	byID   map[uint64]string // id -> email
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byMail: make(map[string]model.User), byID: make(map[uint64]string)}
}

// Create hashes the password and inserts the user.  The role is normalised
// with model.NormalizeRole.
func (r *UserRepo) Create(_ context.Context, email, password, name, role string, cost int) (model.User, error) {
	email = normalizeEmail(email)
	// hash outside the lock
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byMail[email]; ok {
		return model.User{}, ErrEmailExists
	}
	r.nextID++
	u := model.User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.NormalizeRole(role),
	}
	r.byMail[email] = u
	r.byID[u.ID] = email
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byMail[normalizeEmail(email)]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(_ context.Context, id uint64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email, ok := r.byID[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return r.byMail[email], nil
}

// List returns every user ordered by id.
func (r *UserRepo) List(_ context.Context) []model.User {
	r.mu.RLock()
	out := make([]model.User, 0, len(r.byMail))
	for _, u := range r.byMail {
		out = append(out, u)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
