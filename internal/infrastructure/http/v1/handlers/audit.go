package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"retailcore/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	*BaseHandler
	log *postgres.AuditLog
}

func NewAuditHandler(log *postgres.AuditLog) *AuditHandler {
	return &AuditHandler{BaseHandler: NewBaseHandler(), log: log}
}

func (h *AuditHandler) Recent(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.log.Recent(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	message := "Audit entries retrieved successfully"
	if len(entries) == 0 {
		message = "No audit entries found"
	}
	h.OK(c, message, entries)
}
