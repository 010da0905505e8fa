package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockEntry records one stock-addition event. Rows are append-only:
// never updated or deleted once written. Brand name/type are denormalized
// at insert time so weekly rollups do not need a join.
type StockEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BrandID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"brandId"`
	BrandName      string          `gorm:"not null" json:"brandName"`
	BrandType      string          `gorm:"not null" json:"brandType"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	PricePerBottle decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"pricePerBottle"`
	TotalValue     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalValue"`
	AddedDate      time.Time       `gorm:"not null;index" json:"addedDate"`
	// WeekOfYear is the ISO week key, e.g. "2025-W32". Zero-padded week
	// numbers make lexicographic order equal chronological order.
	WeekOfYear string    `gorm:"not null;index" json:"weekOfYear"`
	CreatedAt  time.Time `json:"createdAt"`

	Brand *Brand `gorm:"foreignKey:BrandID" json:"-"`
}

// TableName overrides GORM's default pluralization (stock_entrys → stock_entries).
func (StockEntry) TableName() string { return "stock_entries" }
