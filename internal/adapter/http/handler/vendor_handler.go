package handler

import (
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/dto"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"
	"github.com/Gurn0or/golden-haven-navigator/pkg/response"

	"github.com/gin-gonic/gin"
)

// VendorHandler handles the pickup vendor endpoints.
type VendorHandler struct {
	vendorSvc ports.VendorService
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorSvc ports.VendorService) *VendorHandler {
	return &VendorHandler{vendorSvc: vendorSvc}
}

// List handles GET /api/v1/vendors.
func (h *VendorHandler) List(c *gin.Context) {
	params := ports.VendorListParams{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		City:     c.Query("city"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	vendors, total, err := h.vendorSvc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ListResponse{
		Items: vendors,
		Meta:  dto.ListMeta{Total: total, Page: params.Page, PageSize: params.PageSize},
	})
}

// Get handles GET /api/v1/vendors/:id.
func (h *VendorHandler) Get(c *gin.Context) {
	vendor, err := h.vendorSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vendor)
}

// Create handles POST /api/v1/vendors.
func (h *VendorHandler) Create(c *gin.Context) {
	input, ok := bindVendorInput(c)
	if !ok {
		return
	}
	vendor, err := h.vendorSvc.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vendor)
}

// Update handles PUT /api/v1/vendors/:id.
func (h *VendorHandler) Update(c *gin.Context) {
	input, ok := bindVendorInput(c)
	if !ok {
		return
	}
	vendor, err := h.vendorSvc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vendor)
}

// Suspend handles POST /api/v1/vendors/:id/suspend.
func (h *VendorHandler) Suspend(c *gin.Context) {
	vendor, err := h.vendorSvc.Suspend(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vendor)
}

// Activate handles POST /api/v1/vendors/:id/activate.
func (h *VendorHandler) Activate(c *gin.Context) {
	vendor, err := h.vendorSvc.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vendor)
}

// SetAcceptingOrders handles PUT /api/v1/vendors/:id/accepting.
func (h *VendorHandler) SetAcceptingOrders(c *gin.Context) {
	var req dto.AcceptingOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	vendor, err := h.vendorSvc.SetAcceptingOrders(c.Request.Context(), c.Param("id"), req.Accepting)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vendor)
}

func bindVendorInput(c *gin.Context) (ports.VendorInput, bool) {
	var req dto.VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return ports.VendorInput{}, false
	}
	dto.SanitizeStruct(&req)

	slots := make([]domain.DaySlots, 0, len(req.TimeSlots))
	for _, s := range req.TimeSlots {
		slots = append(slots, domain.DaySlots{Day: s.Day, Slots: s.Slots})
	}

	return ports.VendorInput{
		Name:          req.Name,
		Location:      req.Location,
		Address:       req.Address,
		City:          req.City,
		Zip:           req.Zip,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		TimeSlots:     slots,
		LinkedVaults:  req.LinkedVaults,
		DeliveryType:  domain.VendorDeliveryType(req.DeliveryType),
		Notes:         req.Notes,
	}, true
}
