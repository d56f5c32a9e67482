package handlers

import (
	"github.com/gin-gonic/gin"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/types"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

func NewProductHandler(service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	price, err := types.NewMoneyFromString(req.Price)
	if err != nil {
		h.Error(c, apperror.NewValidation("price must be a decimal number").WithDetail("price", req.Price))
		return
	}

	p, err := h.service.Create(c.Request.Context(), product.CreateInput{
		Name:  req.Name,
		SKU:   req.SKU,
		Price: price,
		Stock: req.Stock,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Product created successfully", p)
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	message := "Products retrieved successfully"
	if len(products) == 0 {
		message = "No products found"
	}
	h.OK(c, message, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Product retrieved successfully", p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input := product.UpdateInput{Name: req.Name, SKU: req.SKU}
	if req.Price != nil {
		price, err := types.NewMoneyFromString(*req.Price)
		if err != nil {
			h.Error(c, apperror.NewValidation("price must be a decimal number").WithDetail("price", *req.Price))
			return
		}
		input.Price = &price
	}

	p, err := h.service.Update(c.Request.Context(), productID, input)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Product updated successfully", p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Product deleted successfully", nil)
}
