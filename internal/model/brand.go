package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Brand is a sellable catalog item identified by the (name, type) pair,
// e.g. ("Johnnie Walker", "Black Label 750ml"). Price always reflects the
// most recent stock addition. Quantity can never go below zero — the DB
// carries a CHECK constraint and every decrement is conditional.
//
// Brands are never physically deleted: "complete removal" zeroes the
// quantity and keeps the row so historical entries stay resolvable.
type Brand struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string          `gorm:"not null;uniqueIndex:idx_brand_name_type" json:"name"`
	Type     string          `gorm:"not null;uniqueIndex:idx_brand_name_type" json:"type"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity int             `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
