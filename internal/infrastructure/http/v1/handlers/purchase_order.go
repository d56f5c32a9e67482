package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/types"
	"retailcore/internal/domain/purchases"
	"retailcore/internal/infrastructure/http/v1/dto"
)

// PurchaseOrderHandler serves the purchase order endpoints.
type PurchaseOrderHandler struct {
	*BaseHandler
	service *purchases.Service
}

func NewPurchaseOrderHandler(service *purchases.Service) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	supplierID, err := id.Parse(req.SupplierID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid supplier_id").WithDetail("supplier_id", req.SupplierID))
		return
	}

	orderDate, err := parseDate(req.OrderDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("order_date must be a valid date").WithDetail("order_date", req.OrderDate))
		return
	}

	lines := make([]purchases.Line, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product_id").WithDetail("product_id", item.ProductID))
			return
		}
		unitPrice, err := types.NewMoneyFromString(item.UnitPrice)
		if err != nil {
			h.Error(c, apperror.NewValidation("unit_price must be a decimal number").WithDetail("unit_price", item.UnitPrice))
			return
		}
		lines = append(lines, purchases.Line{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
	}

	order, err := h.service.Create(c.Request.Context(), purchases.CreateOrderInput{
		SupplierID: supplierID,
		OrderDate:  orderDate,
		Lines:      lines,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Purchase order created successfully", order)
}

func (h *PurchaseOrderHandler) List(c *gin.Context) {
	orders, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	message := "Purchase orders retrieved successfully"
	if len(orders) == 0 {
		message = "No purchase orders found"
	}
	h.OK(c, message, orders)
}

func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.FindByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Purchase order retrieved successfully", order)
}

func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReceivePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	receivedDate, err := parseDate(req.ReceivedDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("received_date must be a valid date").WithDetail("received_date", req.ReceivedDate))
		return
	}

	order, err := h.service.Receive(c.Request.Context(), orderID, receivedDate)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Purchase order received successfully", order)
}

// parseDate accepts plain dates ("2025-04-01") and RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.Cancel(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Purchase order cancelled successfully", order)
}
