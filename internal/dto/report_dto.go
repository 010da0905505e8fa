package dto

import (
	"github.com/shopspring/decimal"
)

// AnalyticsFilter bounds the analytics window. Epoch milliseconds, inclusive.
type AnalyticsFilter struct {
	DateFrom *int64 `form:"date_from"`
	DateTo   *int64 `form:"date_to"`
}

// TopSellingBrand is one row of the top-sellers ranking, grouped by
// (name, type) across both transaction shapes.
type TopSellingBrand struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// AnalyticsResponse aggregates revenue and stock metrics. Transaction
// metrics honor the date window; stock metrics always cover the full
// catalog.
type AnalyticsResponse struct {
	TotalRevenue      decimal.Decimal   `json:"totalRevenue"`
	TotalTransactions int               `json:"totalTransactions"`
	TotalBottlesSold  int               `json:"totalBottlesSold"`
	CashRevenue       decimal.Decimal   `json:"cashRevenue"`
	UPIRevenue        decimal.Decimal   `json:"upiRevenue"`
	TotalBrands       int               `json:"totalBrands"`
	TotalStock        int               `json:"totalStock"`
	OutOfStockBrands  int               `json:"outOfStockBrands"`
	LowStockBrands    int               `json:"lowStockBrands"`
	TopSellingBrands  []TopSellingBrand `json:"topSellingBrands"`
}

// MigrateRequest runs the one-shot stock-entry backfill. Owner-gated.
type MigrateRequest struct {
	OwnerPassword string `json:"ownerPassword" validate:"required"`
}

type MigrateResponse struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	BrandsProcessed     int    `json:"brandsProcessed"`
	StockEntriesCreated int    `json:"stockEntriesCreated"`
}
