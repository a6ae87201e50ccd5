package handler

import (
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/dto"
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/middleware"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"
	"github.com/Gurn0or/golden-haven-navigator/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles the wallet administration endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	params := ports.WalletListParams{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	wallets, total, err := h.walletSvc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ListResponse{
		Items: wallets,
		Meta:  dto.ListMeta{Total: total, Page: params.Page, PageSize: params.PageSize},
	})
}

// Get handles GET /api/v1/wallets/:address.
func (h *WalletHandler) Get(c *gin.Context) {
	wallet, err := h.walletSvc.Get(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// Freeze handles POST /api/v1/wallets/:address/freeze.
func (h *WalletHandler) Freeze(c *gin.Context) {
	var req dto.ConfirmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}
	wallet, err := h.walletSvc.Freeze(c.Request.Context(), c.Param("address"), req.Confirm)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// Unfreeze handles POST /api/v1/wallets/:address/unfreeze.
func (h *WalletHandler) Unfreeze(c *gin.Context) {
	wallet, err := h.walletSvc.Unfreeze(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// Flag handles POST /api/v1/wallets/:address/flag.
func (h *WalletHandler) Flag(c *gin.Context) {
	var req dto.FlagWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.Flag(c.Request.Context(), c.Param("address"), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// ResetSecurity handles POST /api/v1/wallets/:address/reset.
func (h *WalletHandler) ResetSecurity(c *gin.Context) {
	var req dto.ConfirmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}
	wallet, err := h.walletSvc.ResetSecurity(c.Request.Context(), c.Param("address"), req.Confirm)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// AddNote handles POST /api/v1/wallets/:address/notes.
func (h *WalletHandler) AddNote(c *gin.Context) {
	var req dto.WalletNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	author := c.GetString(middleware.CtxAdminUsername)
	wallet, err := h.walletSvc.AddNote(c.Request.Context(), c.Param("address"), author, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// ListTransactions handles GET /api/v1/wallets/:address/transactions and
// GET /api/v1/transactions. On the global route the address param is empty
// and an optional ?wallet= query scopes the list instead.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	walletID := c.Param("address")
	if walletID == "" {
		walletID = c.Query("wallet")
	}
	params := ports.TransactionListParams{
		WalletID: walletID,
		Type:     c.Query("type"),
		Sort:     domain.SortOrder(c.Query("sort")),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	txns, total, err := h.walletSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ListResponse{
		Items: txns,
		Meta:  dto.ListMeta{Total: total, Page: params.Page, PageSize: params.PageSize},
	})
}
