package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/bracket-pool/internal/domain/admin"
)

type AdminRepository struct {
	mu     sync.RWMutex
	users  map[string]admin.User
	nextID int64
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{users: make(map[string]admin.User), nextID: 1}
}

func (r *AdminRepository) GetByUsername(_ context.Context, username string) (admin.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	return user, ok, nil
}

func (r *AdminRepository) Create(_ context.Context, username, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[username]; exists {
		return fmt.Errorf("admin %q already exists", username)
	}

	r.users[username] = admin.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
	}
	r.nextID++
	return nil
}

func (r *AdminRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, username)
	return nil
}

func (r *AdminRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users), nil
}
