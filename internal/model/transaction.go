package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction type discriminator values. Legacy rows with an empty Type are
// treated as single-item sales.
const (
	TransactionSingle = "single"
	TransactionMulti  = "multi"
)

// Payment methods accepted at the till.
const (
	PaymentCash = "cash"
	PaymentUPI  = "upi"
)

// Transaction is one completed sale. Two shapes coexist: the legacy
// single-item shape stores the brand fields inline, the multi-item cart
// shape stores one TransactionItem row per cart line. TotalAmount is fixed
// at creation time and never recomputed.
type Transaction struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Type string    `gorm:"index" json:"transactionType"`

	// Single-item shape (null for multi-item sales)
	BrandID        *uuid.UUID       `gorm:"type:uuid;index" json:"brandId,omitempty"`
	BrandName      *string          `json:"brandName,omitempty"`
	BrandType      *string          `json:"brandType,omitempty"`
	Quantity       *int             `json:"quantity,omitempty"`
	PricePerBottle *decimal.Decimal `gorm:"type:decimal(10,2)" json:"pricePerBottle,omitempty"`

	// Multi-item shape
	Items []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	PaymentMethod string          `gorm:"not null;index" json:"paymentMethod"`
	CustomerName  *string         `json:"customerName,omitempty"`
	CustomerPhone *string         `json:"customerPhone,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"createdAt"`
}

// IsMulti reports whether the row carries the multi-item cart shape.
func (t *Transaction) IsMulti() bool { return t.Type == TransactionMulti }

// TransactionItem is one cart line of a multi-item sale. Brand name, type
// and price are snapshots taken at checkout.
type TransactionItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	TransactionID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	BrandID        uuid.UUID       `gorm:"type:uuid;not null" json:"brandId"`
	BrandName      string          `gorm:"not null" json:"brandName"`
	BrandType      string          `gorm:"not null" json:"brandType"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	PricePerBottle decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"pricePerBottle"`
	ItemTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"itemTotal"`
}
