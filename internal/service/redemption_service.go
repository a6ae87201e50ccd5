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

// RedemptionServiceImpl implements ports.RedemptionService. Redemptions move
// submitted -> verified -> approved -> shipped -> completed; vault assignment
// only applies once approved, shipping details only in delivery mode, and the
// token burn is recorded exactly once per request.
type RedemptionServiceImpl struct {
	redemptionRepo  ports.RedemptionRepository
	vaultRepo       ports.VaultRepository
	transactionRepo ports.TransactionRepository
	transactor      ports.DBTransactor
	notifier        ports.Notifier
	auditSvc        ports.AuditService
	log             zerolog.Logger
}

// NewRedemptionService creates a new RedemptionServiceImpl.
func NewRedemptionService(
	redemptionRepo ports.RedemptionRepository,
	vaultRepo ports.VaultRepository,
	transactionRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	notifier ports.Notifier,
	auditSvc ports.AuditService,
	log zerolog.Logger,
) *RedemptionServiceImpl {
	return &RedemptionServiceImpl{
		redemptionRepo:  redemptionRepo,
		vaultRepo:       vaultRepo,
		transactionRepo: transactionRepo,
		transactor:      transactor,
		notifier:        notifier,
		auditSvc:        auditSvc,
		log:             log,
	}
}

// Get returns one redemption request with its activity log.
func (s *RedemptionServiceImpl) Get(ctx context.Context, requestID string) (*domain.Redemption, error) {
	red, err := s.redemptionRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if red == nil {
		return nil, apperror.ErrNotFound("redemption request")
	}
	events, err := s.redemptionRepo.ListEvents(ctx, requestID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	red.Events = events
	return red, nil
}

// List returns redemption requests matching the filters.
func (s *RedemptionServiceImpl) List(ctx context.Context, params ports.RedemptionListParams) ([]domain.Redemption, int64, error) {
	reds, total, err := s.redemptionRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return reds, total, nil
}

// Verify confirms the request's burn proof and KYC checks.
func (s *RedemptionServiceImpl) Verify(ctx context.Context, req ports.RedemptionTransitionRequest) (*domain.Redemption, error) {
	return s.transition(ctx, req, domain.ActionVerify, "Request verified")
}

// Approve releases the request for fulfillment.
func (s *RedemptionServiceImpl) Approve(ctx context.Context, req ports.RedemptionTransitionRequest) (*domain.Redemption, error) {
	return s.transition(ctx, req, domain.ActionApprove, "Request approved")
}

// Reject declines the request. Only submitted or verified requests can be
// rejected; an approved request must run to completion.
func (s *RedemptionServiceImpl) Reject(ctx context.Context, req ports.RedemptionTransitionRequest) (*domain.Redemption, error) {
	return s.transition(ctx, req, domain.ActionReject, "Request rejected")
}

// MarkShipped records that the gold left the vault. Delivery-mode requests
// must carry shipping details before this transition.
func (s *RedemptionServiceImpl) MarkShipped(ctx context.Context, req ports.RedemptionTransitionRequest) (*domain.Redemption, error) {
	red, err := s.Get(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if red.Mode == domain.RedemptionModeDelivery && red.Shipping == nil {
		return nil, apperror.ErrMissingShippingInfo("shipping details")
	}
	return s.applyTransition(ctx, red, req, domain.ActionShip, "Gold shipped from vault")
}

// Complete closes the request after handover.
func (s *RedemptionServiceImpl) Complete(ctx context.Context, req ports.RedemptionTransitionRequest) (*domain.Redemption, error) {
	return s.transition(ctx, req, domain.ActionComplete, "Redemption completed")
}

// AssignVault binds an approved request to a vault location. The vault must
// exist and hold enough gold to cover the request.
func (s *RedemptionServiceImpl) AssignVault(ctx context.Context, requestID, vaultLocation string) (*domain.Redemption, error) {
	red, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !red.CanAssignVault() {
		return nil, apperror.ErrVaultAssignmentBlocked()
	}

	vault, err := s.vaultRepo.GetByName(ctx, vaultLocation)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if vault == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	if vault.GoldHoldingGrams < red.GoldWeightGrams {
		return nil, apperror.Validation(fmt.Sprintf("vault %s holds %.2fg, request needs %.2fg",
			vault.Name, vault.GoldHoldingGrams, red.GoldWeightGrams))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.redemptionRepo.AssignVault(ctx, dbTx, requestID, vaultLocation); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("assign vault: %w", err))
	}
	event := s.newEvent(requestID, red.Status, fmt.Sprintf("Assigned to vault %s", vaultLocation))
	if err := s.redemptionRepo.AppendEvent(ctx, dbTx, event); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append event: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	red.VaultLocation = vaultLocation
	red.Events = append(red.Events, *event)
	s.audit(ctx, domain.AuditActionVaultAssign, requestID, vaultLocation)
	return red, nil
}

// SetShipping attaches courier details to a delivery-mode request.
func (s *RedemptionServiceImpl) SetShipping(ctx context.Context, requestID string, shipping domain.ShippingDetails) (*domain.Redemption, error) {
	if strings.TrimSpace(shipping.Partner) == "" {
		return nil, apperror.ErrMissingShippingInfo("shipping partner")
	}
	if strings.TrimSpace(shipping.TrackingNumber) == "" {
		return nil, apperror.ErrMissingShippingInfo("tracking number")
	}

	red, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if red.Mode != domain.RedemptionModeDelivery {
		return nil, apperror.ErrShippingNotApplicable()
	}
	if red.IsTerminal() {
		return nil, apperror.ErrTransitionBlocked(red.Status, "SET_SHIPPING")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.redemptionRepo.SetShipping(ctx, dbTx, requestID, shipping); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set shipping: %w", err))
	}
	event := s.newEvent(requestID, red.Status, domain.ShipNote(shipping.Partner, shipping.TrackingNumber))
	if err := s.redemptionRepo.AppendEvent(ctx, dbTx, event); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append event: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	red.Shipping = &shipping
	red.Events = append(red.Events, *event)
	return red, nil
}

// BurnTokens records the on-chain burn backing a redemption. Idempotent at
// the request level: a second call fails rather than double-burning.
func (s *RedemptionServiceImpl) BurnTokens(ctx context.Context, requestID string) (*domain.Transaction, error) {
	red, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if red.TokensBurned {
		return nil, apperror.Validation("tokens already burned for this request")
	}
	if red.Status != domain.RedemptionStatusApproved && red.Status != domain.RedemptionStatusShipped {
		return nil, apperror.ErrTransitionBlocked(red.Status, "BURN")
	}

	txn := &domain.Transaction{
		ID:          uuid.New(),
		WalletID:    red.User.WalletID,
		Type:        domain.TransactionTypeBurn,
		AmountGrams: -red.GoldWeightGrams,
		Reference:   red.RequestID,
		CreatedAt:   time.Now().UTC(),
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.transactionRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create burn transaction: %w", err))
	}
	if err := s.redemptionRepo.MarkBurned(ctx, dbTx, requestID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark burned: %w", err))
	}
	event := s.newEvent(requestID, red.Status, fmt.Sprintf("Burned %.2fg of tokens", red.GoldWeightGrams))
	if err := s.redemptionRepo.AppendEvent(ctx, dbTx, event); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append event: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.audit(ctx, domain.AuditActionTokenBurn, requestID, fmt.Sprintf("%.2f", red.GoldWeightGrams))
	s.log.Info().
		Str("request_id", requestID).
		Float64("grams", red.GoldWeightGrams).
		Msg("tokens burned for redemption")
	return txn, nil
}

func (s *RedemptionServiceImpl) transition(ctx context.Context, req ports.RedemptionTransitionRequest, action domain.Action, defaultNote string) (*domain.Redemption, error) {
	red, err := s.Get(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, red, req, action, defaultNote)
}

func (s *RedemptionServiceImpl) applyTransition(
	ctx context.Context,
	red *domain.Redemption,
	req ports.RedemptionTransitionRequest,
	action domain.Action,
	defaultNote string,
) (*domain.Redemption, error) {
	next, ok := domain.RedemptionLifecycle.Next(red.Status, action)
	if !ok {
		return nil, apperror.ErrTransitionBlocked(red.Status, string(action))
	}

	note := req.Note
	if note == "" {
		note = defaultNote
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.redemptionRepo.UpdateStatus(ctx, dbTx, red.RequestID, next); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update status: %w", err))
	}
	event := s.newEvent(red.RequestID, next, note)
	if err := s.redemptionRepo.AppendEvent(ctx, dbTx, event); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append event: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	red.Status = next
	red.Events = append(red.Events, *event)

	if req.NotifyUser {
		nerr := s.notifier.Notify(ctx, ports.Notification{
			Target:     ports.NotifyTargetUser,
			Recipient:  red.User.Email,
			Subject:    "Redemption update",
			Message:    fmt.Sprintf("Your redemption %s is now %s", red.RequestID, next),
			ResourceID: red.RequestID,
		})
		if nerr != nil {
			s.log.Warn().Err(nerr).Str("request_id", red.RequestID).Msg("user notification failed")
		}
	}
	s.audit(ctx, domain.AuditActionStatusChange, red.RequestID, next)

	s.log.Info().
		Str("request_id", red.RequestID).
		Str("action", string(action)).
		Str("status", next).
		Msg("redemption transition")

	return red, nil
}

func (s *RedemptionServiceImpl) newEvent(requestID, status, note string) *domain.StatusEvent {
	return &domain.StatusEvent{
		ID:         uuid.New(),
		OrderID:    requestID,
		Status:     status,
		Note:       note,
		OccurredAt: time.Now().UTC(),
	}
}

func (s *RedemptionServiceImpl) audit(ctx context.Context, action domain.AuditAction, requestID, detail string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		Action:       action,
		ResourceType: "redemption",
		ResourceID:   requestID,
		Details:      fmt.Sprintf(`{"detail":%q}`, detail),
		CreatedAt:    time.Now().UTC(),
	})
}
