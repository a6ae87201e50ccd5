package service

import (
	"context"
	"testing"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authTestDeps struct {
	svc       *AuthServiceImpl
	adminRepo *mocks.MockAdminRepository
	hashSvc   *mocks.MockHashService
	tokenSvc  *mocks.MockTokenService
	ctrl      *gomock.Controller
}

func setupAuthService(t *testing.T) *authTestDeps {
	ctrl := gomock.NewController(t)
	d := &authTestDeps{
		adminRepo: mocks.NewMockAdminRepository(ctrl),
		hashSvc:   mocks.NewMockHashService(ctrl),
		tokenSvc:  mocks.NewMockTokenService(ctrl),
		ctrl:      ctrl,
	}
	d.svc = NewAuthService(d.adminRepo, d.hashSvc, d.tokenSvc, nil)
	return d
}

func activeAdmin() *domain.AdminUser {
	return &domain.AdminUser{
		ID:           uuid.New(),
		Username:     "ops.lead",
		PasswordHash: "$argon2id$hash",
		Role:         domain.AdminRoleOperator,
		Status:       domain.AdminStatusActive,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	admin := activeAdmin()
	expiry := time.Now().Add(time.Hour)

	d.adminRepo.EXPECT().GetByUsername(ctx, "ops.lead").Return(admin, nil)
	d.hashSvc.EXPECT().Verify("correct-horse", admin.PasswordHash).Return(true, nil)
	d.tokenSvc.EXPECT().Generate(admin.ID, "ops.lead", domain.AdminRoleOperator).Return("jwt-token", expiry, nil)

	token, gotExpiry, err := d.svc.Login(ctx, "ops.lead", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, expiry, gotExpiry)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.adminRepo.EXPECT().GetByUsername(ctx, "ghost").Return(nil, nil)

	_, _, err := d.svc.Login(ctx, "ghost", "whatever")
	assertAppError(t, err, "AUTH_001")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	admin := activeAdmin()

	d.adminRepo.EXPECT().GetByUsername(ctx, "ops.lead").Return(admin, nil)
	d.hashSvc.EXPECT().Verify("wrong", admin.PasswordHash).Return(false, nil)

	_, _, err := d.svc.Login(ctx, "ops.lead", "wrong")
	assertAppError(t, err, "AUTH_001")
}

func TestAuthService_Login_SuspendedAccount(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	admin := activeAdmin()
	admin.Status = domain.AdminStatusSuspended

	d.adminRepo.EXPECT().GetByUsername(ctx, "ops.lead").Return(admin, nil)
	// suspension is only reported after the password verifies
	d.hashSvc.EXPECT().Verify("correct-horse", admin.PasswordHash).Return(true, nil)

	_, _, err := d.svc.Login(ctx, "ops.lead", "correct-horse")
	assertAppError(t, err, "AUTH_003")
}
