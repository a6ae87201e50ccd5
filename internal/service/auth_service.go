package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"

	"github.com/google/uuid"
)

// AuthServiceImpl implements ports.AuthService for dashboard admins.
type AuthServiceImpl struct {
	adminRepo ports.AdminRepository
	hashSvc   ports.HashService
	tokenSvc  ports.TokenService
	auditSvc  ports.AuditService
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	adminRepo ports.AdminRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	auditSvc ports.AuditService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		adminRepo: adminRepo,
		hashSvc:   hashSvc,
		tokenSvc:  tokenSvc,
		auditSvc:  auditSvc,
	}
}

// Login validates admin credentials and returns a JWT token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("find admin: %w", err))
	}
	if admin == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, admin.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	if !admin.IsActive() {
		return "", time.Time{}, apperror.ErrAccountSuspended()
	}

	token, expiry, err := s.tokenSvc.Generate(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, &domain.AuditLog{
			ID:           uuid.New(),
			AdminID:      &admin.ID,
			Action:       domain.AuditActionLogin,
			ResourceType: "admin",
			ResourceID:   admin.Username,
			CreatedAt:    time.Now().UTC(),
		})
	}

	return token, expiry, nil
}
