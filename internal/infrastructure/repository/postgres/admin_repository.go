package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/bracket-pool/internal/domain/admin"
)

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (admin.User, bool, error) {
	const query = "SELECT id, username, password_hash FROM admin_users WHERE username = $1"

	var row adminUserModel
	if err := r.db.GetContext(ctx, &row, query, username); err != nil {
		if isNotFound(err) {
			return admin.User{}, false, nil
		}
		return admin.User{}, false, fmt.Errorf("select admin %q: %w", username, err)
	}

	return admin.User{ID: row.ID, Username: row.Username, PasswordHash: row.PasswordHash}, true, nil
}

func (r *AdminRepository) Create(ctx context.Context, username, passwordHash string) error {
	const query = "INSERT INTO admin_users (username, password_hash) VALUES ($1, $2)"

	if _, err := r.db.ExecContext(ctx, query, username, passwordHash); err != nil {
		return fmt.Errorf("insert admin %q: %w", username, err)
	}

	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM admin_users WHERE username = $1", username)
	if err != nil {
		return fmt.Errorf("delete admin %q: %w", username, err)
	}

	return requireAffected(res, fmt.Sprintf("admin %q", username), admin.ErrNotFound)
}

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM admin_users"); err != nil {
		return 0, fmt.Errorf("count admin users: %w", err)
	}

	return count, nil
}
