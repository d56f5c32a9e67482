package handlers

import (
	"github.com/gin-gonic/gin"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/domain/sales"
	"retailcore/internal/infrastructure/http/v1/dto"
)

// SaleHandler serves the sale endpoints.
type SaleHandler struct {
	*BaseHandler
	service *sales.Service
}

func NewSaleHandler(service *sales.Service) *SaleHandler {
	return &SaleHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lines := make([]sales.Line, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product_id").WithDetail("product_id", item.ProductID))
			return
		}
		lines = append(lines, sales.Line{ProductID: productID, Quantity: item.Quantity})
	}

	sale, err := h.service.CreateSale(c.Request.Context(), sales.CreateSaleInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Lines:         lines,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Sale created successfully", sale)
}

func (h *SaleHandler) List(c *gin.Context) {
	list, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	message := "Sales retrieved successfully"
	if len(list) == 0 {
		message = "No sales found"
	}
	h.OK(c, message, list)
}

func (h *SaleHandler) Get(c *gin.Context) {
	saleID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.service.FindByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Sale retrieved successfully", sale)
}
