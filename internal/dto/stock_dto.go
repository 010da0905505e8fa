package dto

import (
	"github.com/shopspring/decimal"
)

// AddStockRequest registers a stock addition. The operation boundary
// re-validates price and quantity positivity — callers are not trusted.
type AddStockRequest struct {
	Name     string          `json:"name" validate:"required"`
	Type     string          `json:"type" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"required,gt=0"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
}

type AddStockResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	BrandID    string          `json:"brandId"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// RemoveStockRequest removes bottles from a brand. A quantity at or above
// the sentinel threshold means "remove everything".
type RemoveStockRequest struct {
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	OwnerPassword string `json:"ownerPassword" validate:"required"`
}

type RemoveStockResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StockLevelResponse is one catalog row annotated with its derived status.
type StockLevelResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	StockStatus string          `json:"stockStatus"` // "out" | "low" | "good"
	TotalValue  decimal.Decimal `json:"totalValue"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// StockEntryResponse is one immutable stock-addition record.
type StockEntryResponse struct {
	ID             string          `json:"id"`
	BrandID        string          `json:"brandId"`
	BrandName      string          `json:"brandName"`
	BrandType      string          `json:"brandType"`
	Quantity       int             `json:"quantity"`
	PricePerBottle decimal.Decimal `json:"pricePerBottle"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	AddedDate      string          `json:"addedDate"`
	WeekOfYear     string          `json:"weekOfYear"`
}

// WeeklyStockGroup is one ISO week of stock additions, newest week first.
type WeeklyStockGroup struct {
	Week       string               `json:"week"`
	TotalValue decimal.Decimal      `json:"totalValue"`
	Entries    []StockEntryResponse `json:"entries"`
}

// BrandResponse is the selling-page feed row.
type BrandResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	UpdatedAt string          `json:"updatedAt"`
}
