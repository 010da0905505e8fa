package handler

import (
	"net/http"

	"liquorpos/internal/apierror"
	"liquorpos/internal/dto"
	"liquorpos/internal/service"

	"github.com/gin-gonic/gin"
)

// SalesHandler exposes single-item and cart checkouts plus the history view.
type SalesHandler struct {
	ledger  service.LedgerService
	reports service.ReportService
}

func NewSalesHandler(ledger service.LedgerService, reports service.ReportService) *SalesHandler {
	return &SalesHandler{ledger: ledger, reports: reports}
}

// CreateSingle sells bottles of one brand (legacy single-item shape).
func (h *SalesHandler) CreateSingle(c *gin.Context) {
	var req dto.SingleSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.CreateSingleTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateCart checks out a multi-item cart, all-or-nothing.
func (h *SalesHandler) CreateCart(c *gin.Context) {
	var req dto.CartSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.CreateCartTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns transactions within an optional date window, newest first.
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid filter: "+err.Error()))
		return
	}
	resp, err := h.reports.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete reverses a sale and restores its stock. Owner-gated.
func (h *SalesHandler) Delete(c *gin.Context) {
	var req dto.DeleteTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.DeleteTransaction(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
