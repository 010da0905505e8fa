package handler

import (
	"net/http"

	"liquorpos/internal/dto"
	"liquorpos/internal/service"

	"github.com/gin-gonic/gin"
)

// StockHandler exposes the stock side of the ledger: additions, removals
// and the derived stock views.
type StockHandler struct {
	ledger  service.LedgerService
	reports service.ReportService
}

func NewStockHandler(ledger service.LedgerService, reports service.ReportService) *StockHandler {
	return &StockHandler{ledger: ledger, reports: reports}
}

// AddStock registers a stock addition, creating the brand on first sight of
// a (name, type) pair.
func (h *StockHandler) AddStock(c *gin.Context) {
	var req dto.AddStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.AddStock(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RemoveStock removes bottles from a brand. Owner-gated; a sentinel
// quantity zeroes the brand entirely.
func (h *StockHandler) RemoveStock(c *gin.Context) {
	var req dto.RemoveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.RemoveStock(c.Request.Context(), c.Param("brandId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StockLevels returns every brand with its derived stock status.
func (h *StockHandler) StockLevels(c *gin.Context) {
	resp, err := h.reports.StockLevels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// WeeklyHistory returns stock additions grouped by ISO week, newest first.
func (h *StockHandler) WeeklyHistory(c *gin.Context) {
	resp, err := h.reports.WeeklyStockHistory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
