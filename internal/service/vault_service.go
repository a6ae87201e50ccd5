package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// VaultServiceImpl implements ports.VaultService. Vault health is stored,
// never derived on read: the status recomputes on add, update and sync only,
// so a stale row shows the status it had when last touched.
type VaultServiceImpl struct {
	vaultRepo ports.VaultRepository
	auditSvc  ports.AuditService
	log       zerolog.Logger
}

// NewVaultService creates a new VaultServiceImpl.
func NewVaultService(vaultRepo ports.VaultRepository, auditSvc ports.AuditService, log zerolog.Logger) *VaultServiceImpl {
	return &VaultServiceImpl{
		vaultRepo: vaultRepo,
		auditSvc:  auditSvc,
		log:       log,
	}
}

// List returns vaults matching an optional search and status filter.
func (s *VaultServiceImpl) List(ctx context.Context, search, status string) ([]domain.Vault, error) {
	vaults, err := s.vaultRepo.List(ctx, search, status)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return vaults, nil
}

// Get returns one vault by ID.
func (s *VaultServiceImpl) Get(ctx context.Context, id string) (*domain.Vault, error) {
	vault, err := s.vaultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if vault == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	return vault, nil
}

// Add registers a new vault. A freshly added vault has never synced, so it
// starts Out of Sync whatever its holdings.
func (s *VaultServiceImpl) Add(ctx context.Context, input ports.VaultInput) (*domain.Vault, error) {
	if err := validateVaultInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vault := &domain.Vault{
		ID:               fmt.Sprintf("VLT-%s", strings.ToUpper(uuid.NewString()[:8])),
		Name:             input.Name,
		Type:             input.Type,
		Location:         input.Location,
		Partner:          input.Partner,
		GoldHoldingGrams: input.GoldHoldingGrams,
		ThresholdGrams:   input.ThresholdGrams,
		AutoSync:         input.AutoSync,
		SyncFrequency:    input.SyncFrequency,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	vault.Recompute()

	if err := s.vaultRepo.Create(ctx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create vault: %w", err))
	}

	s.log.Info().
		Str("vault_id", vault.ID).
		Str("name", vault.Name).
		Str("status", string(vault.Status)).
		Msg("vault added")
	return vault, nil
}

// Update edits a vault's configuration and recomputes its health, keeping
// the existing last-sync timestamp.
func (s *VaultServiceImpl) Update(ctx context.Context, id string, input ports.VaultInput) (*domain.Vault, error) {
	if err := validateVaultInput(input); err != nil {
		return nil, err
	}

	vault, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	vault.Name = input.Name
	vault.Type = input.Type
	vault.Location = input.Location
	vault.Partner = input.Partner
	vault.GoldHoldingGrams = input.GoldHoldingGrams
	vault.ThresholdGrams = input.ThresholdGrams
	vault.AutoSync = input.AutoSync
	vault.SyncFrequency = input.SyncFrequency
	vault.UpdatedAt = time.Now().UTC()
	vault.Recompute()

	if err := s.vaultRepo.Update(ctx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vault: %w", err))
	}
	return vault, nil
}

// Sync reconciles the vault now: stamps last-sync and recomputes health.
// After a sync the vault is never Out of Sync; it is Low Stock or Healthy
// depending on holdings against the threshold.
func (s *VaultServiceImpl) Sync(ctx context.Context, id string) (*domain.Vault, error) {
	vault, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vault.LastSync = &now
	vault.UpdatedAt = now
	vault.Recompute()

	if err := s.vaultRepo.Update(ctx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sync vault: %w", err))
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, &domain.AuditLog{
			ID:           uuid.New(),
			Action:       domain.AuditActionVaultSync,
			ResourceType: "vault",
			ResourceID:   vault.ID,
			Details:      fmt.Sprintf(`{"status":%q}`, vault.Status),
			CreatedAt:    now,
		})
	}

	s.log.Info().
		Str("vault_id", vault.ID).
		Str("status", string(vault.Status)).
		Msg("vault synced")
	return vault, nil
}

// Summary aggregates holdings across all vaults for the overview cards.
func (s *VaultServiceImpl) Summary(ctx context.Context) (*domain.VaultSummary, error) {
	vaults, err := s.vaultRepo.List(ctx, "", "")
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	summary := &domain.VaultSummary{TotalVaults: len(vaults)}
	for _, v := range vaults {
		summary.TotalGoldGrams += v.GoldHoldingGrams
		switch v.Status {
		case domain.VaultStatusHealthy:
			summary.HealthyGrams += v.GoldHoldingGrams
		case domain.VaultStatusLowStock:
			summary.LowStockGrams += v.GoldHoldingGrams
			summary.LowStockCount++
		case domain.VaultStatusOutOfSync:
			summary.OutOfSyncCount++
		}
	}
	return summary, nil
}

func validateVaultInput(input ports.VaultInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperror.Validation("vault name is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return apperror.Validation("vault location is required")
	}
	if input.GoldHoldingGrams < 0 {
		return apperror.Validation("gold holding cannot be negative")
	}
	if input.ThresholdGrams < 0 {
		return apperror.Validation("threshold cannot be negative")
	}
	switch input.Type {
	case domain.VaultTypeBrinks, domain.VaultTypeLocal:
	default:
		return apperror.Validation("vault type must be Brinks or Local")
	}
	return nil
}
