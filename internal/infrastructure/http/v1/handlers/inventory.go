package handlers

import (
	"github.com/gin-gonic/gin"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/domain/inventory"
	"retailcore/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves the inventory adjustment endpoints.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

func NewInventoryHandler(service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *InventoryHandler) CreateAdjustment(c *gin.Context) {
	var req dto.CreateAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product_id").WithDetail("product_id", req.ProductID))
		return
	}

	adj, err := h.service.CreateAdjustment(c.Request.Context(), inventory.CreateAdjustmentInput{
		ProductID:      productID,
		AdjustmentType: inventory.AdjustmentType(req.AdjustmentType),
		Quantity:       req.Quantity,
		Reason:         req.Reason,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Inventory adjustment created successfully", adj)
}

func (h *InventoryHandler) List(c *gin.Context) {
	adjustments, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	message := "Inventory adjustments retrieved successfully"
	if len(adjustments) == 0 {
		message = "No inventory adjustments found"
	}
	h.OK(c, message, adjustments)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	adjustmentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	adj, err := h.service.FindByID(c.Request.Context(), adjustmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Inventory adjustment retrieved successfully", adj)
}

// ProductHistory returns a product's adjustment history, newest first.
func (h *InventoryHandler) ProductHistory(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.service.FindProductHistory(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	message := "Product adjustment history retrieved successfully"
	if len(history) == 0 {
		message = "No adjustments found for this product"
	}
	h.OK(c, message, history)
}
