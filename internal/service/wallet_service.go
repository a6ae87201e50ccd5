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

// WalletServiceImpl implements ports.WalletService. Freeze and security
// reset are destructive from the user's point of view, so both demand an
// explicit confirm flag from the dashboard.
type WalletServiceImpl struct {
	walletRepo      ports.WalletRepository
	transactionRepo ports.TransactionRepository
	auditSvc        ports.AuditService
	log             zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	transactionRepo ports.TransactionRepository,
	auditSvc ports.AuditService,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		auditSvc:        auditSvc,
		log:             log,
	}
}

// List returns wallets matching the filters.
func (s *WalletServiceImpl) List(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, int64, error) {
	wallets, total, err := s.walletRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return wallets, total, nil
}

// Get returns one wallet by address.
func (s *WalletServiceImpl) Get(ctx context.Context, address string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByAddress(ctx, address)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return wallet, nil
}

// Freeze suspends a wallet, blocking all token movement.
func (s *WalletServiceImpl) Freeze(ctx context.Context, address string, confirm bool) (*domain.Wallet, error) {
	if !confirm {
		return nil, apperror.ErrConfirmationRequired()
	}

	wallet, err := s.Get(ctx, address)
	if err != nil {
		return nil, err
	}
	if wallet.IsFrozen() {
		return nil, apperror.ErrWalletFrozen()
	}

	if err := s.walletRepo.UpdateStatus(ctx, address, domain.WalletStatusSuspended); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("freeze wallet: %w", err))
	}
	wallet.Status = domain.WalletStatusSuspended
	wallet.UpdatedAt = time.Now().UTC()

	s.audit(ctx, domain.AuditActionWalletFreeze, address, "frozen")
	s.log.Warn().Str("address", address).Msg("wallet frozen")
	return wallet, nil
}

// Unfreeze restores a suspended wallet to active.
func (s *WalletServiceImpl) Unfreeze(ctx context.Context, address string) (*domain.Wallet, error) {
	wallet, err := s.Get(ctx, address)
	if err != nil {
		return nil, err
	}
	if !wallet.IsFrozen() {
		return nil, apperror.Validation("wallet is not frozen")
	}

	if err := s.walletRepo.UpdateStatus(ctx, address, domain.WalletStatusActive); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unfreeze wallet: %w", err))
	}
	wallet.Status = domain.WalletStatusActive
	wallet.UpdatedAt = time.Now().UTC()

	s.audit(ctx, domain.AuditActionWalletFreeze, address, "unfrozen")
	return wallet, nil
}

// Flag marks a wallet for review and raises an alert with the reason.
// Flagging does not block the wallet.
func (s *WalletServiceImpl) Flag(ctx context.Context, address, reason string) (*domain.Wallet, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.Validation("a reason is required to flag a wallet")
	}

	wallet, err := s.Get(ctx, address)
	if err != nil {
		return nil, err
	}
	if wallet.IsFrozen() {
		return nil, apperror.ErrWalletFrozen()
	}

	if err := s.walletRepo.UpdateStatus(ctx, address, domain.WalletStatusFlagged); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("flag wallet: %w", err))
	}
	alert := &domain.WalletAlert{
		ID:        uuid.New(),
		Severity:  "warning",
		Message:   reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.walletRepo.AddAlert(ctx, address, alert); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("add alert: %w", err))
	}

	wallet.Status = domain.WalletStatusFlagged
	wallet.Alerts = append(wallet.Alerts, *alert)
	s.audit(ctx, domain.AuditActionWalletFreeze, address, "flagged: "+reason)
	return wallet, nil
}

// ResetSecurity revokes the wallet's MPC shares and biometric binding so the
// owner can re-enroll. The owner loses access until recovery completes.
func (s *WalletServiceImpl) ResetSecurity(ctx context.Context, address string, confirm bool) (*domain.Wallet, error) {
	if !confirm {
		return nil, apperror.ErrConfirmationRequired()
	}

	wallet, err := s.Get(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := s.walletRepo.ResetSecurity(ctx, address); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reset security: %w", err))
	}
	wallet.Security = domain.WalletSecurity{
		RecoverySetup:   false,
		BiometricBound:  false,
		MPCSharesTotal:  wallet.Security.MPCSharesTotal,
		MPCSharesActive: 0,
	}
	wallet.UpdatedAt = time.Now().UTC()

	s.audit(ctx, domain.AuditActionWalletReset, address, "security reset")
	s.log.Warn().Str("address", address).Msg("wallet security reset")
	return wallet, nil
}

// AddNote attaches a free-text admin note to the wallet.
func (s *WalletServiceImpl) AddNote(ctx context.Context, address, author, text string) (*domain.Wallet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.Validation("note text is required")
	}

	wallet, err := s.Get(ctx, address)
	if err != nil {
		return nil, err
	}

	note := &domain.WalletNote{
		ID:        uuid.New(),
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.walletRepo.AddNote(ctx, address, note); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("add note: %w", err))
	}
	wallet.AdminNotes = append(wallet.AdminNotes, *note)
	return wallet, nil
}

// ListTransactions returns a wallet's token history, filtered and sorted.
func (s *WalletServiceImpl) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	txns, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return txns, total, nil
}

func (s *WalletServiceImpl) audit(ctx context.Context, action domain.AuditAction, address, detail string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		Action:       action,
		ResourceType: "wallet",
		ResourceID:   address,
		Details:      fmt.Sprintf(`{"detail":%q}`, detail),
		CreatedAt:    time.Now().UTC(),
	})
}
