package handlers

import (
	"github.com/gin-gonic/gin"

	"retailcore/internal/domain/catalogs/supplier"
	"retailcore/internal/infrastructure/http/v1/dto"
)

// SupplierHandler serves the supplier catalog endpoints.
type SupplierHandler struct {
	*BaseHandler
	service *supplier.Service
}

func NewSupplierHandler(service *supplier.Service) *SupplierHandler {
	return &SupplierHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.service.Create(c.Request.Context(), supplier.CreateInput{
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, "Supplier created successfully", s)
}

func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	message := "Suppliers retrieved successfully"
	if len(suppliers) == 0 {
		message = "No suppliers found"
	}
	h.OK(c, message, suppliers)
}

func (h *SupplierHandler) Get(c *gin.Context) {
	supplierID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Supplier retrieved successfully", s)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	supplierID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.service.Update(c.Request.Context(), supplierID, supplier.UpdateInput{
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Supplier updated successfully", s)
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	supplierID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), supplierID); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Supplier deleted successfully", nil)
}
