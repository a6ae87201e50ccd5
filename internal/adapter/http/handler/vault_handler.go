package handler

import (
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/dto"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"
	"github.com/Gurn0or/golden-haven-navigator/pkg/response"

	"github.com/gin-gonic/gin"
)

// VaultHandler handles the vault management endpoints.
type VaultHandler struct {
	vaultSvc ports.VaultService
}

// NewVaultHandler creates a new VaultHandler.
func NewVaultHandler(vaultSvc ports.VaultService) *VaultHandler {
	return &VaultHandler{vaultSvc: vaultSvc}
}

// List handles GET /api/v1/vaults.
func (h *VaultHandler) List(c *gin.Context) {
	vaults, err := h.vaultSvc.List(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vaults)
}

// Get handles GET /api/v1/vaults/:id.
func (h *VaultHandler) Get(c *gin.Context) {
	vault, err := h.vaultSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vault)
}

// Add handles POST /api/v1/vaults.
func (h *VaultHandler) Add(c *gin.Context) {
	input, ok := bindVaultInput(c)
	if !ok {
		return
	}
	vault, err := h.vaultSvc.Add(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vault)
}

// Update handles PUT /api/v1/vaults/:id.
func (h *VaultHandler) Update(c *gin.Context) {
	input, ok := bindVaultInput(c)
	if !ok {
		return
	}
	vault, err := h.vaultSvc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vault)
}

// Sync handles POST /api/v1/vaults/:id/sync.
func (h *VaultHandler) Sync(c *gin.Context) {
	vault, err := h.vaultSvc.Sync(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vault)
}

// Summary handles GET /api/v1/vaults/summary.
func (h *VaultHandler) Summary(c *gin.Context) {
	summary, err := h.vaultSvc.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

func bindVaultInput(c *gin.Context) (ports.VaultInput, bool) {
	var req dto.VaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return ports.VaultInput{}, false
	}
	dto.SanitizeStruct(&req)
	return ports.VaultInput{
		Name:             req.Name,
		Type:             domain.VaultType(req.Type),
		Location:         req.Location,
		Partner:          req.Partner,
		GoldHoldingGrams: req.GoldHoldingGrams,
		ThresholdGrams:   req.ThresholdGrams,
		AutoSync:         req.AutoSync,
		SyncFrequency:    domain.SyncFrequency(req.SyncFrequency),
	}, true
}
