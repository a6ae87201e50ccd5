package service

import (
	"context"
	"fmt"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"

	"github.com/rs/zerolog"
)

// SupportServiceImpl implements ports.SupportService.
type SupportServiceImpl struct {
	ticketRepo ports.TicketRepository
	log        zerolog.Logger
}

// NewSupportService creates a new SupportServiceImpl.
func NewSupportService(ticketRepo ports.TicketRepository, log zerolog.Logger) *SupportServiceImpl {
	return &SupportServiceImpl{ticketRepo: ticketRepo, log: log}
}

// List returns tickets matching an optional search and status filter.
func (s *SupportServiceImpl) List(ctx context.Context, search, status string) ([]domain.SupportTicket, error) {
	tickets, err := s.ticketRepo.List(ctx, search, status)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return tickets, nil
}

// Get returns one ticket by ID.
func (s *SupportServiceImpl) Get(ctx context.Context, id string) (*domain.SupportTicket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if ticket == nil {
		return nil, apperror.ErrNotFound("support ticket")
	}
	return ticket, nil
}

// UpdateStatus moves a ticket between open, pending and resolved.
func (s *SupportServiceImpl) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.SupportTicket, error) {
	switch status {
	case domain.TicketStatusOpen, domain.TicketStatusPending, domain.TicketStatusResolved:
	default:
		return nil, apperror.Validation(fmt.Sprintf("unknown ticket status %q", status))
	}

	ticket, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update ticket: %w", err))
	}
	ticket.Status = status

	s.log.Info().Str("ticket_id", id).Str("status", string(status)).Msg("ticket status updated")
	return ticket, nil
}
