package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryLifecycle_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		action  Action
		want    string
		allowed bool
	}{
		{"ship from approved", DeliveryStatusApproved, ActionShip, DeliveryStatusOutForDelivery, true},
		{"deliver from out for delivery", DeliveryStatusOutForDelivery, ActionDeliver, DeliveryStatusDelivered, true},
		{"deliver requires out for delivery", DeliveryStatusApproved, ActionDeliver, "", false},
		{"cancel from approved", DeliveryStatusApproved, ActionCancel, DeliveryStatusCancelled, true},
		{"cancel from out for delivery", DeliveryStatusOutForDelivery, ActionCancel, DeliveryStatusCancelled, true},
		{"cancel blocked once delivered", DeliveryStatusDelivered, ActionCancel, "", false},
		{"cancel blocked once cancelled", DeliveryStatusCancelled, ActionCancel, "", false},
		{"ship blocked once shipped", DeliveryStatusOutForDelivery, ActionShip, "", false},
		{"deliver blocked once delivered", DeliveryStatusDelivered, ActionDeliver, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := DeliveryLifecycle.Next(tt.from, tt.action)
			assert.Equal(t, tt.allowed, ok)
			if tt.allowed {
				assert.Equal(t, tt.want, next)
			}
		})
	}
}

func TestPickupLifecycle_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		action  Action
		want    string
		allowed bool
	}{
		{"pick from scheduled", PickupStatusScheduled, ActionPick, PickupStatusPicked, true},
		{"pick recoverable from missed", PickupStatusMissed, ActionPick, PickupStatusPicked, true},
		{"miss from scheduled", PickupStatusScheduled, ActionMiss, PickupStatusMissed, true},
		{"miss blocked once missed", PickupStatusMissed, ActionMiss, "", false},
		{"miss blocked once picked", PickupStatusPicked, ActionMiss, "", false},
		{"cancel from scheduled", PickupStatusScheduled, ActionCancel, PickupStatusCancelled, true},
		{"cancel from missed", PickupStatusMissed, ActionCancel, PickupStatusCancelled, true},
		{"cancel blocked once picked", PickupStatusPicked, ActionCancel, "", false},
		{"pick blocked once cancelled", PickupStatusCancelled, ActionPick, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := PickupLifecycle.Next(tt.from, tt.action)
			assert.Equal(t, tt.allowed, ok)
			if tt.allowed {
				assert.Equal(t, tt.want, next)
			}
		})
	}
}

func TestRedemptionLifecycle_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		action  Action
		want    string
		allowed bool
	}{
		{"verify from submitted", RedemptionStatusSubmitted, ActionVerify, RedemptionStatusVerified, true},
		{"approve from verified", RedemptionStatusVerified, ActionApprove, RedemptionStatusApproved, true},
		{"approve requires verified", RedemptionStatusSubmitted, ActionApprove, "", false},
		{"reject from submitted", RedemptionStatusSubmitted, ActionReject, RedemptionStatusRejected, true},
		{"reject from verified", RedemptionStatusVerified, ActionReject, RedemptionStatusRejected, true},
		{"reject blocked once approved", RedemptionStatusApproved, ActionReject, "", false},
		{"ship from approved", RedemptionStatusApproved, ActionShip, RedemptionStatusShipped, true},
		{"complete from shipped", RedemptionStatusShipped, ActionComplete, RedemptionStatusCompleted, true},
		{"complete requires shipped", RedemptionStatusApproved, ActionComplete, "", false},
		{"verify blocked once completed", RedemptionStatusCompleted, ActionVerify, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := RedemptionLifecycle.Next(tt.from, tt.action)
			assert.Equal(t, tt.allowed, ok)
			if tt.allowed {
				assert.Equal(t, tt.want, next)
			}
		})
	}
}

func TestLifecycle_IsTerminal(t *testing.T) {
	assert.True(t, DeliveryLifecycle.IsTerminal(DeliveryStatusDelivered))
	assert.True(t, DeliveryLifecycle.IsTerminal(DeliveryStatusCancelled))
	assert.False(t, DeliveryLifecycle.IsTerminal(DeliveryStatusApproved))
	assert.False(t, DeliveryLifecycle.IsTerminal(DeliveryStatusOutForDelivery))

	assert.True(t, PickupLifecycle.IsTerminal(PickupStatusPicked))
	assert.True(t, PickupLifecycle.IsTerminal(PickupStatusMissed))
	assert.True(t, PickupLifecycle.IsTerminal(PickupStatusCancelled))
	assert.False(t, PickupLifecycle.IsTerminal(PickupStatusScheduled))

	assert.True(t, RedemptionLifecycle.IsTerminal(RedemptionStatusCompleted))
	assert.True(t, RedemptionLifecycle.IsTerminal(RedemptionStatusRejected))
	assert.False(t, RedemptionLifecycle.IsTerminal(RedemptionStatusShipped))
}

func TestLifecycle_ValidStatus(t *testing.T) {
	assert.True(t, DeliveryLifecycle.ValidStatus(DeliveryStatusOutForDelivery))
	assert.False(t, DeliveryLifecycle.ValidStatus("Refunded"))
	assert.False(t, DeliveryLifecycle.ValidStatus(""))
	assert.False(t, DeliveryLifecycle.ValidStatus(PickupStatusScheduled))
}

func TestLifecycle_CanUpdateTo(t *testing.T) {
	// any in-flow status is reachable through the override dropdown,
	// except the one already set
	assert.True(t, DeliveryLifecycle.CanUpdateTo(DeliveryStatusDelivered, DeliveryStatusApproved))
	assert.False(t, DeliveryLifecycle.CanUpdateTo(DeliveryStatusApproved, DeliveryStatusApproved))
	assert.False(t, DeliveryLifecycle.CanUpdateTo(DeliveryStatusApproved, "Lost"))
}
