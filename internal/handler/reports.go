package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"liquorpos/internal/apierror"
	"liquorpos/internal/dto"
	"liquorpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const searchCacheTTL = 30 * time.Second

// ReportsHandler serves the analytics dashboard and the brand feeds.
type ReportsHandler struct {
	reports service.ReportService
	rdb     *redis.Client
}

func NewReportsHandler(reports service.ReportService, rdb *redis.Client) *ReportsHandler {
	return &ReportsHandler{reports: reports, rdb: rdb}
}

// Analytics aggregates revenue and stock metrics over an optional window.
func (h *ReportsHandler) Analytics(c *gin.Context) {
	var filter dto.AnalyticsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid filter: "+err.Error()))
		return
	}
	resp, err := h.reports.Analytics(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListBrands returns the selling-page feed, most recently touched first.
func (h *ReportsHandler) ListBrands(c *gin.Context) {
	resp, err := h.reports.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SearchBrands matches brands by name or type. Results are cached in Redis
// for a short TTL — the till fires a query per keystroke.
func (h *ReportsHandler) SearchBrands(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusOK, []dto.BrandResponse{})
		return
	}

	ctx := c.Request.Context()
	cacheKey := "brands:search:" + strings.ToLower(term)

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp []dto.BrandResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	resp, err := h.reports.SearchBrands(ctx, term)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, searchCacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}
