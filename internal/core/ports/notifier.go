package ports

import "context"

// NotificationTarget is who a notification is addressed to.
type NotificationTarget string

const (
	NotifyTargetUser   NotificationTarget = "user"
	NotifyTargetVendor NotificationTarget = "vendor"
)

// Notification is a message sent when an order changes state.
type Notification struct {
	Target     NotificationTarget `json:"target"`
	Recipient  string             `json:"recipient"` // email or vendor id
	Subject    string             `json:"subject"`
	Message    string             `json:"message"`
	ResourceID string             `json:"resource_id"`
}

// Notifier delivers status-change notifications. Transition logic depends
// only on this port; delivery failures never block a transition.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
