package handler

import (
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/dto"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"
	"github.com/Gurn0or/golden-haven-navigator/pkg/response"

	"github.com/gin-gonic/gin"
)

// SupportHandler handles the support ticket endpoints.
type SupportHandler struct {
	supportSvc ports.SupportService
}

// NewSupportHandler creates a new SupportHandler.
func NewSupportHandler(supportSvc ports.SupportService) *SupportHandler {
	return &SupportHandler{supportSvc: supportSvc}
}

// List handles GET /api/v1/support/tickets.
func (h *SupportHandler) List(c *gin.Context) {
	tickets, err := h.supportSvc.List(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tickets)
}

// Get handles GET /api/v1/support/tickets/:id.
func (h *SupportHandler) Get(c *gin.Context) {
	ticket, err := h.supportSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ticket)
}

// UpdateStatus handles PUT /api/v1/support/tickets/:id/status.
func (h *SupportHandler) UpdateStatus(c *gin.Context) {
	var req dto.TicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	ticket, err := h.supportSvc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.TicketStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ticket)
}
