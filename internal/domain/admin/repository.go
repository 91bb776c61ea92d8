package admin

import (
	"context"
	"errors"
)

// ErrNotFound reports a write against an admin user that does not
// exist.
var ErrNotFound = errors.New("admin user not found")

// Repository describes admin credential persistence needs from use cases.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	Create(ctx context.Context, username, passwordHash string) error
	Delete(ctx context.Context, username string) error
	Count(ctx context.Context) (int, error)
}
