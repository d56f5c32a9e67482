package handlers

import (
	"github.com/gin-gonic/gin"

	"retailcore/internal/domain/reports"
	"retailcore/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves the reporting endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

func NewReportsHandler(service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: NewBaseHandler(), service: service}
}

func (h *ReportsHandler) dateRange(c *gin.Context) (reports.DateRange, bool) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return reports.DateRange{}, false
	}
	return reports.DateRange{Start: q.StartDate, End: q.EndDate}, true
}

func (h *ReportsHandler) Sales(c *gin.Context) {
	rng, ok := h.dateRange(c)
	if !ok {
		return
	}

	report, err := h.service.SalesReport(c.Request.Context(), rng)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Sales report generated successfully", report)
}

func (h *ReportsHandler) Inventory(c *gin.Context) {
	report, err := h.service.InventoryReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Inventory report generated successfully", report)
}

func (h *ReportsHandler) Purchases(c *gin.Context) {
	rng, ok := h.dateRange(c)
	if !ok {
		return
	}

	report, err := h.service.PurchasesReport(c.Request.Context(), rng)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, "Purchase report generated successfully", report)
}
