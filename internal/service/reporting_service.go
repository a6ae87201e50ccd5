package service

import (
	"context"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"

	"github.com/rs/zerolog"
)

// ReportingServiceImpl implements ports.ReportingService by aggregating
// across the other repositories. All numbers are computed on demand.
type ReportingServiceImpl struct {
	transactionRepo ports.TransactionRepository
	redemptionRepo  ports.RedemptionRepository
	walletRepo      ports.WalletRepository
	vaultRepo       ports.VaultRepository
	log             zerolog.Logger
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(
	transactionRepo ports.TransactionRepository,
	redemptionRepo ports.RedemptionRepository,
	walletRepo ports.WalletRepository,
	vaultRepo ports.VaultRepository,
	log zerolog.Logger,
) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		transactionRepo: transactionRepo,
		redemptionRepo:  redemptionRepo,
		walletRepo:      walletRepo,
		vaultRepo:       vaultRepo,
		log:             log,
	}
}

// DashboardStats aggregates the landing-page numbers.
func (s *ReportingServiceImpl) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	supply, err := s.transactionRepo.GetSupplyStats(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	vaults, err := s.vaultRepo.List(ctx, "", "")
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	stats := &ports.DashboardStats{
		TotalSupplyGrams:   supply.TotalSupplyGrams,
		ActiveWallets:      supply.HolderCount,
		RedemptionsByState: make(map[string]int64),
	}
	for _, v := range vaults {
		stats.GoldLockedGrams += v.GoldHoldingGrams
		switch v.Status {
		case domain.VaultStatusLowStock:
			stats.LowStockVaults++
		case domain.VaultStatusOutOfSync:
			stats.OutOfSyncVaults++
		}
	}

	// Open redemptions are everything short of a terminal state.
	for _, status := range []string{
		domain.RedemptionStatusSubmitted,
		domain.RedemptionStatusVerified,
		domain.RedemptionStatusApproved,
		domain.RedemptionStatusShipped,
	} {
		_, count, err := s.redemptionRepo.List(ctx, ports.RedemptionListParams{Status: status, PageSize: 1})
		if err != nil {
			return nil, apperror.InternalError(err)
		}
		stats.RedemptionsByState[status] = count
		stats.OpenRedemptions += count
	}

	return stats, nil
}

// TokenSupply returns minted/burned totals against the circulating supply.
func (s *ReportingServiceImpl) TokenSupply(ctx context.Context) (*ports.SupplyStats, error) {
	supply, err := s.transactionRepo.GetSupplyStats(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return supply, nil
}

// RedemptionVolume counts redemptions by status for the reports page.
// The period parameter is accepted for forward compatibility; counts are
// currently all-time.
func (s *ReportingServiceImpl) RedemptionVolume(ctx context.Context, period string) (map[string]int64, error) {
	volume := make(map[string]int64)
	for _, status := range []string{
		domain.RedemptionStatusSubmitted,
		domain.RedemptionStatusVerified,
		domain.RedemptionStatusApproved,
		domain.RedemptionStatusShipped,
		domain.RedemptionStatusCompleted,
		domain.RedemptionStatusRejected,
	} {
		_, count, err := s.redemptionRepo.List(ctx, ports.RedemptionListParams{Status: status, PageSize: 1})
		if err != nil {
			return nil, apperror.InternalError(err)
		}
		volume[status] = count
	}
	return volume, nil
}
