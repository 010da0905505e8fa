package dto

import (
	"github.com/shopspring/decimal"
)

// SingleSaleRequest sells bottles of one brand (legacy single-item shape).
type SingleSaleRequest struct {
	BrandID       string  `json:"brandId" validate:"required,uuid"`
	Quantity      int     `json:"quantity" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=cash upi"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
}

type SingleSaleResponse struct {
	Success        bool            `json:"success"`
	TransactionID  string          `json:"transactionId"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Message        string          `json:"message"`
	RemainingStock int             `json:"remainingStock"`
}

// CartItemRequest is one line of a multi-item checkout.
type CartItemRequest struct {
	BrandID  string `json:"brandId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CartSaleRequest checks out a multi-item cart. Validation is
// all-or-nothing: any failing line rejects the whole cart with no writes.
type CartSaleRequest struct {
	Items         []CartItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod" validate:"required,oneof=cash upi"`
	CustomerName  *string           `json:"customerName,omitempty"`
	CustomerPhone *string           `json:"customerPhone,omitempty"`
}

// SaleItemResponse is the committed snapshot of one cart line.
type SaleItemResponse struct {
	BrandID        string          `json:"brandId"`
	BrandName      string          `json:"brandName"`
	BrandType      string          `json:"brandType"`
	Quantity       int             `json:"quantity"`
	PricePerBottle decimal.Decimal `json:"pricePerBottle"`
	ItemTotal      decimal.Decimal `json:"itemTotal"`
}

type CartSaleResponse struct {
	Success       bool               `json:"success"`
	TransactionID string             `json:"transactionId"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	ItemCount     int                `json:"itemCount"`
	Message       string             `json:"message"`
	Items         []SaleItemResponse `json:"items"`
}

// DeleteTransactionRequest reverses a sale. Owner-gated.
type DeleteTransactionRequest struct {
	OwnerPassword string `json:"ownerPassword" validate:"required"`
}

type DeleteTransactionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TransactionFilter bounds a transaction listing. Bounds are epoch
// milliseconds, inclusive, either optional.
type TransactionFilter struct {
	DateFrom *int64 `form:"date_from"`
	DateTo   *int64 `form:"date_to"`
	Limit    int    `form:"limit"`
}

// TransactionResponse renders either sale shape for the history view.
type TransactionResponse struct {
	ID              string             `json:"id"`
	TransactionType string             `json:"transactionType"`
	BrandName       *string            `json:"brandName,omitempty"`
	BrandType       *string            `json:"brandType,omitempty"`
	Quantity        *int               `json:"quantity,omitempty"`
	PricePerBottle  *decimal.Decimal   `json:"pricePerBottle,omitempty"`
	Items           []SaleItemResponse `json:"items,omitempty"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	PaymentMethod   string             `json:"paymentMethod"`
	CustomerName    *string            `json:"customerName,omitempty"`
	CustomerPhone   *string            `json:"customerPhone,omitempty"`
	CreatedAt       string             `json:"createdAt"`
}
