package domain

import "time"

// TicketStatus is the state of a support ticket.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusResolved TicketStatus = "resolved"
)

// TicketPriority orders the support queue.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// SupportTicket is an end-user support request shown in the dashboard.
type SupportTicket struct {
	ID             string         `json:"id"` // TKT-xxxxx
	Subject        string         `json:"subject"`
	RequesterName  string         `json:"requester_name"`
	RequesterEmail string         `json:"requester_email"`
	Priority       TicketPriority `json:"priority"`
	Status         TicketStatus   `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
