package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action is an admin-triggered lifecycle transition.
type Action string

const (
	ActionShip     Action = "SHIP"
	ActionDeliver  Action = "DELIVER"
	ActionCancel   Action = "CANCEL"
	ActionPick     Action = "PICK"
	ActionMiss     Action = "MISS"
	ActionVerify   Action = "VERIFY"
	ActionApprove  Action = "APPROVE"
	ActionReject   Action = "REJECT"
	ActionComplete Action = "COMPLETE"
)

type transitionKey struct {
	from   string
	action Action
}

// Lifecycle is a guard table mapping (current status, action) to the next
// status. One instance exists per fulfillment flow; all three flows share
// this engine instead of duplicating per-view conditionals.
type Lifecycle struct {
	name        string
	transitions map[transitionKey]string
	statuses    map[string]bool
	terminal    map[string]bool
}

// Name returns the flow name (delivery, pickup, redemption).
func (l *Lifecycle) Name() string { return l.name }

// Next returns the status reached by applying action from current.
// The second return is false when the transition is blocked.
func (l *Lifecycle) Next(current string, action Action) (string, bool) {
	next, ok := l.transitions[transitionKey{from: current, action: action}]
	return next, ok
}

// IsTerminal reports whether status is a final state of the flow.
func (l *Lifecycle) IsTerminal(status string) bool {
	return l.terminal[status]
}

// ValidStatus reports whether status belongs to the flow's closed status set.
func (l *Lifecycle) ValidStatus(status string) bool {
	return l.statuses[status]
}

// CanUpdateTo reports whether a generic status override to target is allowed:
// target must belong to the flow and differ from current.
func (l *Lifecycle) CanUpdateTo(current, target string) bool {
	return l.statuses[target] && target != current
}

func newLifecycle(name string, statuses, terminal []string, transitions map[transitionKey]string) *Lifecycle {
	l := &Lifecycle{
		name:        name,
		transitions: transitions,
		statuses:    make(map[string]bool, len(statuses)),
		terminal:    make(map[string]bool, len(terminal)),
	}
	for _, s := range statuses {
		l.statuses[s] = true
	}
	for _, s := range terminal {
		l.terminal[s] = true
	}
	return l
}

// DeliveryLifecycle governs home-delivery orders.
// Deliver requires Out for Delivery; Cancel works from any non-terminal state.
var DeliveryLifecycle = newLifecycle(
	"delivery",
	[]string{DeliveryStatusApproved, DeliveryStatusOutForDelivery, DeliveryStatusDelivered, DeliveryStatusCancelled},
	[]string{DeliveryStatusDelivered, DeliveryStatusCancelled},
	map[transitionKey]string{
		{DeliveryStatusApproved, ActionShip}:          DeliveryStatusOutForDelivery,
		{DeliveryStatusOutForDelivery, ActionDeliver}: DeliveryStatusDelivered,
		{DeliveryStatusApproved, ActionCancel}:        DeliveryStatusCancelled,
		{DeliveryStatusOutForDelivery, ActionCancel}:  DeliveryStatusCancelled,
	},
)

// PickupLifecycle governs vendor-pickup orders.
// Pick stays reachable from Missed; Miss and Cancel do not.
var PickupLifecycle = newLifecycle(
	"pickup",
	[]string{PickupStatusScheduled, PickupStatusPicked, PickupStatusMissed, PickupStatusCancelled},
	[]string{PickupStatusPicked, PickupStatusMissed, PickupStatusCancelled},
	map[transitionKey]string{
		{PickupStatusScheduled, ActionPick}:   PickupStatusPicked,
		{PickupStatusMissed, ActionPick}:      PickupStatusPicked,
		{PickupStatusScheduled, ActionMiss}:   PickupStatusMissed,
		{PickupStatusScheduled, ActionCancel}: PickupStatusCancelled,
		{PickupStatusMissed, ActionCancel}:    PickupStatusCancelled,
	},
)

// RedemptionLifecycle governs vault redemptions.
var RedemptionLifecycle = newLifecycle(
	"redemption",
	[]string{RedemptionStatusSubmitted, RedemptionStatusVerified, RedemptionStatusApproved,
		RedemptionStatusShipped, RedemptionStatusCompleted, RedemptionStatusRejected},
	[]string{RedemptionStatusCompleted, RedemptionStatusRejected},
	map[transitionKey]string{
		{RedemptionStatusSubmitted, ActionVerify}:  RedemptionStatusVerified,
		{RedemptionStatusVerified, ActionApprove}:  RedemptionStatusApproved,
		{RedemptionStatusSubmitted, ActionReject}:  RedemptionStatusRejected,
		{RedemptionStatusVerified, ActionReject}:   RedemptionStatusRejected,
		{RedemptionStatusApproved, ActionShip}:     RedemptionStatusShipped,
		{RedemptionStatusShipped, ActionComplete}:  RedemptionStatusCompleted,
	},
)

// StatusEvent is one append-only entry in an order's activity log.
// Events are created at the moment a transition actually happens and are
// never mutated or removed afterwards.
type StatusEvent struct {
	ID         uuid.UUID `json:"id"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
