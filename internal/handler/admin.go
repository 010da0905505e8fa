package handler

import (
	"net/http"

	"liquorpos/internal/dto"
	"liquorpos/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes owner-gated maintenance operations.
type AdminHandler struct {
	migrations service.MigrationService
}

func NewAdminHandler(migrations service.MigrationService) *AdminHandler {
	return &AdminHandler{migrations: migrations}
}

// Migrate runs the one-shot stock-entry backfill.
func (h *AdminHandler) Migrate(c *gin.Context) {
	var req dto.MigrateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.migrations.BackfillStockEntries(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
