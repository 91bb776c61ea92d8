package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/bracket-pool/internal/domain/admin"
)

// AuthService verifies and manages admin credentials. Login reports
// the same error for an unknown username and a wrong password.
type AuthService struct {
	adminRepo admin.Repository
	logger    *slog.Logger
}

func NewAuthService(adminRepo admin.Repository, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{adminRepo: adminRepo, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, exists, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("get admin user: %w", err)
	}
	if !exists {
		return ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "failed login attempt", "username", username)
		return ErrUnauthorized
	}

	return nil
}

func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.CreateAdmin")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	_, exists, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("get admin user: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: username %q is taken", ErrInvalidInput, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.adminRepo.Create(ctx, username, string(hash)); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	s.logger.InfoContext(ctx, "admin user created", "username", username)
	return nil
}

// DeleteAdmin refuses to remove the last remaining credential.
func (s *AuthService) DeleteAdmin(ctx context.Context, username string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.DeleteAdmin")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	_, exists, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("get admin user: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: admin %q", ErrNotFound, username)
	}

	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if count <= 1 {
		return fmt.Errorf("%w: cannot delete the last admin user", ErrInvalidInput)
	}

	if err := s.adminRepo.Delete(ctx, username); err != nil {
		return fmt.Errorf("delete admin user: %w", err)
	}

	s.logger.InfoContext(ctx, "admin user deleted", "username", username)
	return nil
}
