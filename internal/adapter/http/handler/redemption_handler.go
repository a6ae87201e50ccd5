package handler

import (
	"context"

	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/dto"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"
	"github.com/Gurn0or/golden-haven-navigator/pkg/response"

	"github.com/gin-gonic/gin"
)

// RedemptionHandler handles the redemption desk endpoints.
type RedemptionHandler struct {
	redemptionSvc ports.RedemptionService
}

// NewRedemptionHandler creates a new RedemptionHandler.
func NewRedemptionHandler(redemptionSvc ports.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{redemptionSvc: redemptionSvc}
}

// List handles GET /api/v1/redemptions.
func (h *RedemptionHandler) List(c *gin.Context) {
	params := ports.RedemptionListParams{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Mode:     c.Query("mode"),
		Vault:    c.Query("vault"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	reds, total, err := h.redemptionSvc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ListResponse{
		Items: reds,
		Meta:  dto.ListMeta{Total: total, Page: params.Page, PageSize: params.PageSize},
	})
}

// Get handles GET /api/v1/redemptions/:id.
func (h *RedemptionHandler) Get(c *gin.Context) {
	red, err := h.redemptionSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, red)
}

// Verify handles POST /api/v1/redemptions/:id/verify.
func (h *RedemptionHandler) Verify(c *gin.Context) {
	h.transition(c, h.redemptionSvc.Verify)
}

// Approve handles POST /api/v1/redemptions/:id/approve.
func (h *RedemptionHandler) Approve(c *gin.Context) {
	h.transition(c, h.redemptionSvc.Approve)
}

// Reject handles POST /api/v1/redemptions/:id/reject.
func (h *RedemptionHandler) Reject(c *gin.Context) {
	h.transition(c, h.redemptionSvc.Reject)
}

// MarkShipped handles POST /api/v1/redemptions/:id/ship.
func (h *RedemptionHandler) MarkShipped(c *gin.Context) {
	h.transition(c, h.redemptionSvc.MarkShipped)
}

// Complete handles POST /api/v1/redemptions/:id/complete.
func (h *RedemptionHandler) Complete(c *gin.Context) {
	h.transition(c, h.redemptionSvc.Complete)
}

// BurnTokens handles POST /api/v1/redemptions/:id/burn.
func (h *RedemptionHandler) BurnTokens(c *gin.Context) {
	txn, err := h.redemptionSvc.BurnTokens(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, txn)
}

// AssignVault handles PUT /api/v1/redemptions/:id/vault.
func (h *RedemptionHandler) AssignVault(c *gin.Context) {
	var req dto.AssignVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	red, err := h.redemptionSvc.AssignVault(c.Request.Context(), c.Param("id"), req.VaultLocation)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, red)
}

// SetShipping handles PUT /api/v1/redemptions/:id/shipping.
func (h *RedemptionHandler) SetShipping(c *gin.Context) {
	var req dto.SetShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	red, err := h.redemptionSvc.SetShipping(c.Request.Context(), c.Param("id"), domain.ShippingDetails{
		Partner:        req.Partner,
		TrackingNumber: req.TrackingNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, red)
}

func (h *RedemptionHandler) transition(c *gin.Context, fn func(context.Context, ports.RedemptionTransitionRequest) (*domain.Redemption, error)) {
	var req dto.TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		dto.SanitizeStruct(&req)
	}

	red, err := fn(c.Request.Context(), ports.RedemptionTransitionRequest{
		RequestID:  c.Param("id"),
		Note:       req.Note,
		NotifyUser: req.NotifyUser,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, red)
}
