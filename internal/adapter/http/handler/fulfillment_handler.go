package handler

import (
	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/http/dto"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"
	"github.com/Gurn0or/golden-haven-navigator/pkg/response"

	"github.com/gin-gonic/gin"
)

// FulfillmentHandler handles the delivery and pickup order endpoints.
type FulfillmentHandler struct {
	fulfillmentSvc ports.FulfillmentService
}

// NewFulfillmentHandler creates a new FulfillmentHandler.
func NewFulfillmentHandler(fulfillmentSvc ports.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{fulfillmentSvc: fulfillmentSvc}
}

func orderListParams(c *gin.Context) ports.OrderListParams {
	return ports.OrderListParams{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Vault:    c.Query("vault"),
		Partner:  c.Query("partner"),
		Vendor:   c.Query("vendor"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
}

// ListDeliveryOrders handles GET /api/v1/orders/delivery.
func (h *FulfillmentHandler) ListDeliveryOrders(c *gin.Context) {
	params := orderListParams(c)
	orders, total, err := h.fulfillmentSvc.ListDeliveryOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ListResponse{
		Items: orders,
		Meta:  dto.ListMeta{Total: total, Page: params.Page, PageSize: params.PageSize},
	})
}

// GetDeliveryOrder handles GET /api/v1/orders/delivery/:id.
func (h *FulfillmentHandler) GetDeliveryOrder(c *gin.Context) {
	order, err := h.fulfillmentSvc.GetDeliveryOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// ShipDeliveryOrder handles POST /api/v1/orders/delivery/:id/ship.
func (h *FulfillmentHandler) ShipDeliveryOrder(c *gin.Context) {
	var req dto.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	order, err := h.fulfillmentSvc.ShipDeliveryOrder(c.Request.Context(), ports.ShipOrderRequest{
		OrderID:    c.Param("id"),
		Partner:    req.Partner,
		AWBNumber:  req.AWBNumber,
		Note:       req.Note,
		NotifyUser: req.NotifyUser,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// DeliverOrder handles POST /api/v1/orders/delivery/:id/deliver.
func (h *FulfillmentHandler) DeliverOrder(c *gin.Context) {
	req, ok := bindTransition(c)
	if !ok {
		return
	}
	order, err := h.fulfillmentSvc.DeliverOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// CancelDeliveryOrder handles POST /api/v1/orders/delivery/:id/cancel.
func (h *FulfillmentHandler) CancelDeliveryOrder(c *gin.Context) {
	req, ok := bindTransition(c)
	if !ok {
		return
	}
	order, err := h.fulfillmentSvc.CancelDeliveryOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// OverrideDeliveryStatus handles PUT /api/v1/orders/delivery/:id/status.
func (h *FulfillmentHandler) OverrideDeliveryStatus(c *gin.Context) {
	req, ok := bindOverride(c)
	if !ok {
		return
	}
	order, err := h.fulfillmentSvc.OverrideDeliveryStatus(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// ListPickupOrders handles GET /api/v1/orders/pickup.
func (h *FulfillmentHandler) ListPickupOrders(c *gin.Context) {
	params := orderListParams(c)
	orders, total, err := h.fulfillmentSvc.ListPickupOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ListResponse{
		Items: orders,
		Meta:  dto.ListMeta{Total: total, Page: params.Page, PageSize: params.PageSize},
	})
}

// GetPickupOrder handles GET /api/v1/orders/pickup/:id.
func (h *FulfillmentHandler) GetPickupOrder(c *gin.Context) {
	order, err := h.fulfillmentSvc.GetPickupOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// MarkPicked handles POST /api/v1/orders/pickup/:id/pick.
func (h *FulfillmentHandler) MarkPicked(c *gin.Context) {
	req, ok := bindTransition(c)
	if !ok {
		return
	}
	order, err := h.fulfillmentSvc.MarkPicked(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// MarkMissed handles POST /api/v1/orders/pickup/:id/miss.
func (h *FulfillmentHandler) MarkMissed(c *gin.Context) {
	req, ok := bindTransition(c)
	if !ok {
		return
	}
	order, err := h.fulfillmentSvc.MarkMissed(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// CancelPickupOrder handles POST /api/v1/orders/pickup/:id/cancel.
func (h *FulfillmentHandler) CancelPickupOrder(c *gin.Context) {
	req, ok := bindTransition(c)
	if !ok {
		return
	}
	order, err := h.fulfillmentSvc.CancelPickupOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// OverridePickupStatus handles PUT /api/v1/orders/pickup/:id/status.
func (h *FulfillmentHandler) OverridePickupStatus(c *gin.Context) {
	req, ok := bindOverride(c)
	if !ok {
		return
	}
	order, err := h.fulfillmentSvc.OverridePickupStatus(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, order)
}

// bindTransition binds the shared transition request body. An empty body is
// allowed; all fields are optional.
func bindTransition(c *gin.Context) (ports.TransitionRequest, bool) {
	var req dto.TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return ports.TransitionRequest{}, false
		}
		dto.SanitizeStruct(&req)
	}
	return ports.TransitionRequest{
		OrderID:      c.Param("id"),
		Note:         req.Note,
		Confirm:      req.Confirm,
		NotifyUser:   req.NotifyUser,
		NotifyVendor: req.NotifyVendor,
	}, true
}

func bindOverride(c *gin.Context) (ports.StatusOverrideRequest, bool) {
	var req dto.StatusOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return ports.StatusOverrideRequest{}, false
	}
	dto.SanitizeStruct(&req)
	return ports.StatusOverrideRequest{
		OrderID:      c.Param("id"),
		NewStatus:    req.Status,
		Note:         req.Note,
		NotifyUser:   req.NotifyUser,
		NotifyVendor: req.NotifyVendor,
	}, true
}
