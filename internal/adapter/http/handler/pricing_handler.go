package handler

import (
	"strconv"

	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/dto"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"
	"github.com/Gurn0or/golden-haven-navigator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PricingHandler handles the gold pricing endpoints.
type PricingHandler struct {
	pricingSvc ports.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingSvc ports.PricingService) *PricingHandler {
	return &PricingHandler{pricingSvc: pricingSvc}
}

// Spot handles GET /api/v1/pricing/spot.
func (h *PricingHandler) Spot(c *gin.Context) {
	price, err := h.pricingSvc.Spot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, price)
}

// Quote handles GET /api/v1/pricing/quote?grams=N.
func (h *PricingHandler) Quote(c *gin.Context) {
	grams, err := strconv.ParseFloat(c.Query("grams"), 64)
	if err != nil || grams <= 0 {
		response.Error(c, apperror.Validation("grams must be a positive number"))
		return
	}
	total, err := h.pricingSvc.Quote(c.Request.Context(), grams)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"grams": grams, "total_usd": total})
}

// ListRules handles GET /api/v1/pricing/rules.
func (h *PricingHandler) ListRules(c *gin.Context) {
	rules, err := h.pricingSvc.ListRules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rules)
}

// CreateRule handles POST /api/v1/pricing/rules.
func (h *PricingHandler) CreateRule(c *gin.Context) {
	rule, ok := bindPricingRule(c)
	if !ok {
		return
	}
	if err := h.pricingSvc.CreateRule(c.Request.Context(), rule); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// UpdateRule handles PUT /api/v1/pricing/rules/:id.
func (h *PricingHandler) UpdateRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid rule id"))
		return
	}
	rule, ok := bindPricingRule(c)
	if !ok {
		return
	}
	rule.ID = id
	if err := h.pricingSvc.UpdateRule(c.Request.Context(), rule); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rule)
}

func bindPricingRule(c *gin.Context) (*domain.PricingRule, bool) {
	var req dto.PricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return nil, false
	}
	dto.SanitizeStruct(&req)
	return &domain.PricingRule{
		Name:          req.Name,
		SpreadBps:     req.SpreadBps,
		MinOrderGrams: req.MinOrderGrams,
		MaxOrderGrams: req.MaxOrderGrams,
		Active:        req.Active,
	}, true
}
