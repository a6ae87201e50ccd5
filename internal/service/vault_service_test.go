package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type vaultTestDeps struct {
	svc       *VaultServiceImpl
	vaultRepo *mocks.MockVaultRepository
	ctrl      *gomock.Controller
}

func setupVaultService(t *testing.T) *vaultTestDeps {
	ctrl := gomock.NewController(t)
	d := &vaultTestDeps{
		vaultRepo: mocks.NewMockVaultRepository(ctrl),
		ctrl:      ctrl,
	}
	d.svc = NewVaultService(d.vaultRepo, nil, zerolog.Nop())
	return d
}

func brinksVaultInput() ports.VaultInput {
	return ports.VaultInput{
		Name:             "Mumbai Central",
		Type:             domain.VaultTypeBrinks,
		Location:         "Mumbai, IN",
		Partner:          "Brinks India",
		GoldHoldingGrams: 5000,
		ThresholdGrams:   100,
		AutoSync:         true,
		SyncFrequency:    domain.SyncFrequencyDaily,
	}
}

// ==================== Add Tests ====================

func TestVaultService_Add_StartsOutOfSync(t *testing.T) {
	d := setupVaultService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.vaultRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	vault, err := d.svc.Add(ctx, brinksVaultInput())
	require.NoError(t, err)
	// a vault that has never reconciled cannot claim to be healthy
	assert.Equal(t, domain.VaultStatusOutOfSync, vault.Status)
	assert.Nil(t, vault.LastSync)
	assert.True(t, strings.HasPrefix(vault.ID, "VLT-"))
	assert.Equal(t, "Mumbai Central", vault.Name)
}

func TestVaultService_Add_RejectsBlankName(t *testing.T) {
	d := setupVaultService(t)
	defer d.ctrl.Finish()

	input := brinksVaultInput()
	input.Name = "   "

	_, err := d.svc.Add(context.Background(), input)
	assertAppError(t, err, "GEN_002")
}

func TestVaultService_Add_RejectsUnknownType(t *testing.T) {
	d := setupVaultService(t)
	defer d.ctrl.Finish()

	input := brinksVaultInput()
	input.Type = "Offshore"

	_, err := d.svc.Add(context.Background(), input)
	assertAppError(t, err, "GEN_002")
}

func TestVaultService_Add_RejectsNegativeHolding(t *testing.T) {
	d := setupVaultService(t)
	defer d.ctrl.Finish()

	input := brinksVaultInput()
	input.GoldHoldingGrams = -1

	_, err := d.svc.Add(context.Background(), input)
	assertAppError(t, err, "GEN_002")
}

// ==================== Update Tests ====================

func TestVaultService_Update_RecomputesButKeepsLastSync(t *testing.T) {
	d := setupVaultService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	syncedAt := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	synced := &syncedAt
	d.vaultRepo.EXPECT().GetByID(ctx, "VLT-A1B2C3D4").Return(&domain.Vault{
		ID:               "VLT-A1B2C3D4",
		Name:             "Mumbai Central",
		Type:             domain.VaultTypeBrinks,
		Location:         "Mumbai, IN",
		GoldHoldingGrams: 5000,
		ThresholdGrams:   100,
		LastSync:         synced,
		Status:           domain.VaultStatusHealthy,
	}, nil)
	d.vaultRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	input := brinksVaultInput()
	input.GoldHoldingGrams = 80 // drops below threshold

	vault, err := d.svc.Update(ctx, "VLT-A1B2C3D4", input)
	require.NoError(t, err)
	assert.Equal(t, domain.VaultStatusLowStock, vault.Status)
	assert.Equal(t, synced, vault.LastSync)
}

func TestVaultService_Update_NotFound(t *testing.T) {
	d := setupVaultService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.vaultRepo.EXPECT().GetByID(ctx, "VLT-MISSING").Return(nil, nil)

	_, err := d.svc.Update(ctx, "VLT-MISSING", brinksVaultInput())
	assertAppError(t, err, "GEN_001")
}

// ==================== Sync Tests ====================

func TestVaultService_Sync_StampsLastSync(t *testing.T) {
	d := setupVaultService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.vaultRepo.EXPECT().GetByID(ctx, "VLT-A1B2C3D4").Return(&domain.Vault{
		ID:               "VLT-A1B2C3D4",
		GoldHoldingGrams: 5000,
		ThresholdGrams:   100,
		Status:           domain.VaultStatusOutOfSync,
	}, nil)
	d.vaultRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	vault, err := d.svc.Sync(ctx, "VLT-A1B2C3D4")
	require.NoError(t, err)
	require.NotNil(t, vault.LastSync)
	assert.Equal(t, domain.VaultStatusHealthy, vault.Status)
}

func TestVaultService_Sync_LowStockSurvivesSync(t *testing.T) {
	d := setupVaultService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.vaultRepo.EXPECT().GetByID(ctx, "VLT-A1B2C3D4").Return(&domain.Vault{
		ID:               "VLT-A1B2C3D4",
		GoldHoldingGrams: 80,
		ThresholdGrams:   100,
		Status:           domain.VaultStatusOutOfSync,
	}, nil)
	d.vaultRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	vault, err := d.svc.Sync(ctx, "VLT-A1B2C3D4")
	require.NoError(t, err)
	assert.Equal(t, domain.VaultStatusLowStock, vault.Status)
}

// ==================== Summary Tests ====================

func TestVaultService_Summary(t *testing.T) {
	d := setupVaultService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.vaultRepo.EXPECT().List(ctx, "", "").Return([]domain.Vault{
		{GoldHoldingGrams: 5000, Status: domain.VaultStatusHealthy},
		{GoldHoldingGrams: 80, Status: domain.VaultStatusLowStock},
		{GoldHoldingGrams: 300, Status: domain.VaultStatusOutOfSync},
	}, nil)

	summary, err := d.svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalVaults)
	assert.Equal(t, 5380.0, summary.TotalGoldGrams)
	assert.Equal(t, 5000.0, summary.HealthyGrams)
	assert.Equal(t, 80.0, summary.LowStockGrams)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 1, summary.OutOfSyncCount)
}
