package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault() *domain.Vault {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Vault{
		ID:               "VLT-A1B2C3D4",
		Name:             "Mumbai Central",
		Type:             domain.VaultTypeBrinks,
		Location:         "Mumbai, IN",
		Partner:          "Brinks India",
		GoldHoldingGrams: 5000,
		ThresholdGrams:   100,
		LastSync:         &now,
		Status:           domain.VaultStatusHealthy,
		AutoSync:         true,
		SyncFrequency:    domain.SyncFrequencyDaily,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func vaultColumnNames() []string {
	return []string{
		"id", "name", "type", "location", "partner", "gold_holding_grams",
		"threshold_grams", "last_sync", "status", "auto_sync", "sync_frequency",
		"created_at", "updated_at",
	}
}

func vaultRow(v *domain.Vault) *pgxmock.Rows {
	return pgxmock.NewRows(vaultColumnNames()).AddRow(
		v.ID, v.Name, v.Type, v.Location, v.Partner, v.GoldHoldingGrams,
		v.ThresholdGrams, v.LastSync, v.Status, v.AutoSync, v.SyncFrequency,
		v.CreatedAt, v.UpdatedAt,
	)
}

func TestVaultRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectExec("INSERT INTO vaults").
		WithArgs(v.ID, v.Name, v.Type, v.Location, v.Partner, v.GoldHoldingGrams, v.ThresholdGrams,
			v.LastSync, v.Status, v.AutoSync, v.SyncFrequency, v.CreatedAt, v.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), v)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectQuery("SELECT .+ FROM vaults WHERE id").
		WithArgs(v.ID).
		WillReturnRows(vaultRow(v))

	result, err := repo.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, v.ID, result.ID)
	assert.Equal(t, v.GoldHoldingGrams, result.GoldHoldingGrams)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM vaults WHERE id").
		WithArgs("VLT-MISSING").
		WillReturnRows(pgxmock.NewRows(vaultColumnNames()))

	result, err := repo.GetByID(context.Background(), "VLT-MISSING")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_GetByName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectQuery("SELECT .+ FROM vaults WHERE name").
		WithArgs("Mumbai Central").
		WillReturnRows(vaultRow(v))

	result, err := repo.GetByName(context.Background(), "Mumbai Central")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "VLT-A1B2C3D4", result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_List_WithFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectQuery("SELECT .+ FROM vaults WHERE .+ ORDER BY name").
		WithArgs("%Mumbai%", string(domain.VaultStatusHealthy)).
		WillReturnRows(vaultRow(v))

	vaults, err := repo.List(context.Background(), "Mumbai", string(domain.VaultStatusHealthy))
	require.NoError(t, err)
	require.Len(t, vaults, 1)
	assert.Equal(t, "Mumbai Central", vaults[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_List_AllFilterIgnored(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)

	// "All" must not become a WHERE clause
	mock.ExpectQuery("SELECT .+ FROM vaults ORDER BY name").
		WillReturnRows(pgxmock.NewRows(vaultColumnNames()))

	vaults, err := repo.List(context.Background(), "", domain.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, vaults)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectExec("UPDATE vaults SET").
		WithArgs(v.Name, v.Type, v.Location, v.Partner, v.GoldHoldingGrams, v.ThresholdGrams,
			v.LastSync, v.Status, v.AutoSync, v.SyncFrequency, v.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Update(context.Background(), v)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepo_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVaultRepo(mock)
	v := newTestVault()

	mock.ExpectExec("UPDATE vaults SET").
		WithArgs(v.Name, v.Type, v.Location, v.Partner, v.GoldHoldingGrams, v.ThresholdGrams,
			v.LastSync, v.Status, v.AutoSync, v.SyncFrequency, v.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), v)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vault not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
