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

// FulfillmentServiceImpl implements ports.FulfillmentService for both the
// home-delivery and vendor-pickup flows. All guard decisions go through the
// shared lifecycle tables; a status change and its log entry commit in one
// database transaction.
type FulfillmentServiceImpl struct {
	deliveryRepo ports.DeliveryOrderRepository
	pickupRepo   ports.PickupOrderRepository
	transactor   ports.DBTransactor
	notifier     ports.Notifier
	auditSvc     ports.AuditService
	log          zerolog.Logger
}

// NewFulfillmentService creates a new FulfillmentServiceImpl.
func NewFulfillmentService(
	deliveryRepo ports.DeliveryOrderRepository,
	pickupRepo ports.PickupOrderRepository,
	transactor ports.DBTransactor,
	notifier ports.Notifier,
	auditSvc ports.AuditService,
	log zerolog.Logger,
) *FulfillmentServiceImpl {
	return &FulfillmentServiceImpl{
		deliveryRepo: deliveryRepo,
		pickupRepo:   pickupRepo,
		transactor:   transactor,
		notifier:     notifier,
		auditSvc:     auditSvc,
		log:          log,
	}
}

// GetDeliveryOrder returns one delivery order with its activity log.
func (s *FulfillmentServiceImpl) GetDeliveryOrder(ctx context.Context, id string) (*domain.DeliveryOrder, error) {
	order, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if order == nil {
		return nil, apperror.ErrNotFound("delivery order")
	}
	events, err := s.deliveryRepo.ListEvents(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	order.Events = events
	return order, nil
}

// ListDeliveryOrders returns delivery orders matching the filters.
func (s *FulfillmentServiceImpl) ListDeliveryOrders(ctx context.Context, params ports.OrderListParams) ([]domain.DeliveryOrder, int64, error) {
	orders, total, err := s.deliveryRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return orders, total, nil
}

// ShipDeliveryOrder marks an order Out for Delivery. It refuses to move
// without a courier partner and a tracking number; nothing is logged on a
// refused attempt.
func (s *FulfillmentServiceImpl) ShipDeliveryOrder(ctx context.Context, req ports.ShipOrderRequest) (*domain.DeliveryOrder, error) {
	if strings.TrimSpace(req.Partner) == "" {
		return nil, apperror.ErrMissingShippingInfo("delivery partner")
	}
	if strings.TrimSpace(req.AWBNumber) == "" {
		return nil, apperror.ErrMissingShippingInfo("AWB tracking number")
	}

	order, err := s.GetDeliveryOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	next, ok := domain.DeliveryLifecycle.Next(order.Status, domain.ActionShip)
	if !ok {
		return nil, apperror.ErrTransitionBlocked(order.Status, string(domain.ActionShip))
	}

	note := req.Note
	if note == "" {
		note = domain.ShipNote(req.Partner, req.AWBNumber)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.deliveryRepo.SetShipping(ctx, dbTx, order.ID, req.Partner, req.AWBNumber); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("set shipping: %w", err))
	}
	if err := s.deliveryRepo.UpdateStatus(ctx, dbTx, order.ID, next); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update status: %w", err))
	}
	event := s.newEvent(order.ID, next, note)
	if err := s.deliveryRepo.AppendEvent(ctx, dbTx, event); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append event: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	order.Status = next
	order.DeliveryPartner = &req.Partner
	order.AWBNumber = &req.AWBNumber
	order.Events = append(order.Events, *event)

	if req.NotifyUser {
		s.notifyUser(ctx, order.Email, order.ID, fmt.Sprintf("Your order %s is out for delivery", order.ID))
	}
	s.audit(ctx, "delivery_order", order.ID, next)

	s.log.Info().
		Str("order_id", order.ID).
		Str("partner", req.Partner).
		Str("awb", req.AWBNumber).
		Msg("delivery order shipped")

	return order, nil
}

// DeliverOrder marks an order Delivered. Requires Out for Delivery.
func (s *FulfillmentServiceImpl) DeliverOrder(ctx context.Context, req ports.TransitionRequest) (*domain.DeliveryOrder, error) {
	return s.transitionDelivery(ctx, req, domain.ActionDeliver, domain.DeliveredNote,
		func(id string) string { return fmt.Sprintf("Your order %s has been delivered", id) })
}

// CancelDeliveryOrder cancels a non-terminal order. The confirm flag must be
// set; cancellation cannot be undone.
func (s *FulfillmentServiceImpl) CancelDeliveryOrder(ctx context.Context, req ports.TransitionRequest) (*domain.DeliveryOrder, error) {
	if !req.Confirm {
		return nil, apperror.ErrConfirmationRequired()
	}
	return s.transitionDelivery(ctx, req, domain.ActionCancel, domain.CancelledNote,
		func(id string) string { return fmt.Sprintf("Your order %s has been cancelled", id) })
}

// OverrideDeliveryStatus applies the generic status dropdown: any status in
// the flow that differs from the current one, always logged with the admin
// note (possibly empty).
func (s *FulfillmentServiceImpl) OverrideDeliveryStatus(ctx context.Context, req ports.StatusOverrideRequest) (*domain.DeliveryOrder, error) {
	order, err := s.GetDeliveryOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !domain.DeliveryLifecycle.ValidStatus(req.NewStatus) {
		return nil, apperror.ErrUnknownStatus(req.NewStatus)
	}
	if !domain.DeliveryLifecycle.CanUpdateTo(order.Status, req.NewStatus) {
		return nil, apperror.ErrStatusUnchanged()
	}

	if err := s.commitDeliveryTransition(ctx, order, req.NewStatus, req.Note); err != nil {
		return nil, err
	}
	if req.NotifyUser {
		s.notifyUser(ctx, order.Email, order.ID, fmt.Sprintf("Order %s status updated to %s", order.ID, req.NewStatus))
	}
	s.audit(ctx, "delivery_order", order.ID, req.NewStatus)
	return order, nil
}

func (s *FulfillmentServiceImpl) transitionDelivery(
	ctx context.Context,
	req ports.TransitionRequest,
	action domain.Action,
	defaultNote string,
	userMsg func(id string) string,
) (*domain.DeliveryOrder, error) {
	order, err := s.GetDeliveryOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	next, ok := domain.DeliveryLifecycle.Next(order.Status, action)
	if !ok {
		return nil, apperror.ErrTransitionBlocked(order.Status, string(action))
	}

	note := req.Note
	if note == "" {
		note = defaultNote
	}
	if err := s.commitDeliveryTransition(ctx, order, next, note); err != nil {
		return nil, err
	}

	if req.NotifyUser {
		s.notifyUser(ctx, order.Email, order.ID, userMsg(order.ID))
	}
	s.audit(ctx, "delivery_order", order.ID, next)

	s.log.Info().
		Str("order_id", order.ID).
		Str("action", string(action)).
		Str("status", next).
		Msg("delivery order transition")

	return order, nil
}

// commitDeliveryTransition persists the status change and its log entry
// atomically, then reflects both on the in-memory order.
func (s *FulfillmentServiceImpl) commitDeliveryTransition(ctx context.Context, order *domain.DeliveryOrder, next, note string) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.deliveryRepo.UpdateStatus(ctx, dbTx, order.ID, next); err != nil {
		return apperror.InternalError(fmt.Errorf("update status: %w", err))
	}
	event := s.newEvent(order.ID, next, note)
	if err := s.deliveryRepo.AppendEvent(ctx, dbTx, event); err != nil {
		return apperror.InternalError(fmt.Errorf("append event: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	order.Status = next
	order.Events = append(order.Events, *event)
	return nil
}

// GetPickupOrder returns one pickup order with its activity log.
func (s *FulfillmentServiceImpl) GetPickupOrder(ctx context.Context, id string) (*domain.PickupOrder, error) {
	order, err := s.pickupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if order == nil {
		return nil, apperror.ErrNotFound("pickup order")
	}
	events, err := s.pickupRepo.ListEvents(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	order.Events = events
	return order, nil
}

// ListPickupOrders returns pickup orders matching the filters.
func (s *FulfillmentServiceImpl) ListPickupOrders(ctx context.Context, params ports.OrderListParams) ([]domain.PickupOrder, int64, error) {
	orders, total, err := s.pickupRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return orders, total, nil
}

// MarkPicked marks a pickup collected. Allowed from Scheduled and from
// Missed (a customer can still collect after missing a slot).
func (s *FulfillmentServiceImpl) MarkPicked(ctx context.Context, req ports.TransitionRequest) (*domain.PickupOrder, error) {
	return s.transitionPickup(ctx, req, domain.ActionPick, domain.PickedNote,
		func(id string) string { return fmt.Sprintf("Pickup %s completed", id) })
}

// MarkMissed records a no-show. Blocked once Missed, Picked or Cancelled.
func (s *FulfillmentServiceImpl) MarkMissed(ctx context.Context, req ports.TransitionRequest) (*domain.PickupOrder, error) {
	return s.transitionPickup(ctx, req, domain.ActionMiss, domain.MissedNote,
		func(id string) string { return fmt.Sprintf("Pickup %s was missed", id) })
}

// CancelPickupOrder cancels a pickup. The confirm flag must be set.
func (s *FulfillmentServiceImpl) CancelPickupOrder(ctx context.Context, req ports.TransitionRequest) (*domain.PickupOrder, error) {
	if !req.Confirm {
		return nil, apperror.ErrConfirmationRequired()
	}
	return s.transitionPickup(ctx, req, domain.ActionCancel, domain.CancelledNote,
		func(id string) string { return fmt.Sprintf("Pickup %s has been cancelled", id) })
}

// OverridePickupStatus applies the generic status dropdown to a pickup.
func (s *FulfillmentServiceImpl) OverridePickupStatus(ctx context.Context, req ports.StatusOverrideRequest) (*domain.PickupOrder, error) {
	order, err := s.GetPickupOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !domain.PickupLifecycle.ValidStatus(req.NewStatus) {
		return nil, apperror.ErrUnknownStatus(req.NewStatus)
	}
	if !domain.PickupLifecycle.CanUpdateTo(order.Status, req.NewStatus) {
		return nil, apperror.ErrStatusUnchanged()
	}

	if err := s.commitPickupTransition(ctx, order, req.NewStatus, req.Note); err != nil {
		return nil, err
	}
	if req.NotifyUser {
		s.notifyUser(ctx, order.Email, order.ID, fmt.Sprintf("Order %s status updated to %s", order.ID, req.NewStatus))
	}
	if req.NotifyVendor {
		s.notifyVendor(ctx, order.VendorID, order.ID, fmt.Sprintf("Order %s status updated to %s", order.ID, req.NewStatus))
	}
	s.audit(ctx, "pickup_order", order.ID, req.NewStatus)
	return order, nil
}

func (s *FulfillmentServiceImpl) transitionPickup(
	ctx context.Context,
	req ports.TransitionRequest,
	action domain.Action,
	defaultNote string,
	userMsg func(id string) string,
) (*domain.PickupOrder, error) {
	order, err := s.GetPickupOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	next, ok := domain.PickupLifecycle.Next(order.Status, action)
	if !ok {
		return nil, apperror.ErrTransitionBlocked(order.Status, string(action))
	}

	note := req.Note
	if note == "" {
		note = defaultNote
	}
	if err := s.commitPickupTransition(ctx, order, next, note); err != nil {
		return nil, err
	}

	// User and vendor notifications toggle independently.
	if req.NotifyUser {
		s.notifyUser(ctx, order.Email, order.ID, userMsg(order.ID))
	}
	if req.NotifyVendor {
		s.notifyVendor(ctx, order.VendorID, order.ID, fmt.Sprintf("Order %s is now %s", order.ID, next))
	}
	s.audit(ctx, "pickup_order", order.ID, next)

	s.log.Info().
		Str("order_id", order.ID).
		Str("action", string(action)).
		Str("status", next).
		Msg("pickup order transition")

	return order, nil
}

func (s *FulfillmentServiceImpl) commitPickupTransition(ctx context.Context, order *domain.PickupOrder, next, note string) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.pickupRepo.UpdateStatus(ctx, dbTx, order.ID, next); err != nil {
		return apperror.InternalError(fmt.Errorf("update status: %w", err))
	}
	event := s.newEvent(order.ID, next, note)
	if err := s.pickupRepo.AppendEvent(ctx, dbTx, event); err != nil {
		return apperror.InternalError(fmt.Errorf("append event: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	order.Status = next
	order.Events = append(order.Events, *event)
	return nil
}

func (s *FulfillmentServiceImpl) newEvent(orderID, status, note string) *domain.StatusEvent {
	return &domain.StatusEvent{
		ID:         uuid.New(),
		OrderID:    orderID,
		Status:     status,
		Note:       note,
		OccurredAt: time.Now().UTC(),
	}
}

func (s *FulfillmentServiceImpl) notifyUser(ctx context.Context, email, orderID, msg string) {
	err := s.notifier.Notify(ctx, ports.Notification{
		Target:     ports.NotifyTargetUser,
		Recipient:  email,
		Subject:    "Order update",
		Message:    msg,
		ResourceID: orderID,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("user notification failed")
	}
}

func (s *FulfillmentServiceImpl) notifyVendor(ctx context.Context, vendorID, orderID, msg string) {
	err := s.notifier.Notify(ctx, ports.Notification{
		Target:     ports.NotifyTargetVendor,
		Recipient:  vendorID,
		Subject:    "Pickup update",
		Message:    msg,
		ResourceID: orderID,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("vendor notification failed")
	}
}

func (s *FulfillmentServiceImpl) audit(ctx context.Context, resourceType, resourceID, status string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		Action:       domain.AuditActionStatusChange,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      fmt.Sprintf(`{"status":%q}`, status),
		CreatedAt:    time.Now().UTC(),
	})
}
