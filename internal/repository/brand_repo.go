package repository

import (
	"context"

	"liquorpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BrandRepository defines the data access contract for the brand catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type BrandRepository interface {
	Create(ctx context.Context, b *model.Brand) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	FindByNameType(ctx context.Context, name, brandType string) (*model.Brand, error)
	// ListByUpdated returns every brand, most recently touched first.
	ListByUpdated(ctx context.Context) ([]model.Brand, error)
	// ListByName returns every brand ordered by name ascending.
	ListByName(ctx context.Context) ([]model.Brand, error)
	// Search matches name or type case-insensitively, capped at limit rows.
	Search(ctx context.Context, term string, limit int) ([]model.Brand, error)

	// Used inside transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, b *model.Brand) error
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Brand, error)
	// AddStockTx adds qty bottles and overwrites the price with the latest.
	AddStockTx(tx *gorm.DB, id uuid.UUID, qty int, price decimal.Decimal) error
	// DecrementStockTx subtracts qty only when at least qty bottles remain.
	// Returns the number of rows updated: 0 means the guard failed and no
	// write happened. This is the atomic decrement-if-≥N the ledger relies
	// on — stock can never be observed negative.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error)
	// IncrementStockTx adds qty back (transaction deletion restore).
	IncrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error
	// ZeroStockTx forces quantity to 0 (sentinel "remove everything").
	ZeroStockTx(tx *gorm.DB, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type brandRepo struct{ db *gorm.DB }

func NewBrandRepository(db *gorm.DB) BrandRepository { return &brandRepo{db: db} }

func (r *brandRepo) Create(ctx context.Context, b *model.Brand) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *brandRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	var b model.Brand
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepo) FindByNameType(ctx context.Context, name, brandType string) (*model.Brand, error) {
	var b model.Brand
	err := r.db.WithContext(ctx).Where("name = ? AND type = ?", name, brandType).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepo) ListByUpdated(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&brands).Error
	return brands, err
}

func (r *brandRepo) ListByName(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error
	return brands, err
}

func (r *brandRepo) Search(ctx context.Context, term string, limit int) ([]model.Brand, error) {
	var brands []model.Brand
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR type ILIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&brands).Error
	return brands, err
}

func (r *brandRepo) CreateTx(tx *gorm.DB, b *model.Brand) error {
	return tx.Create(b).Error
}

func (r *brandRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Brand, error) {
	var b model.Brand
	err := tx.First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepo) AddStockTx(tx *gorm.DB, id uuid.UUID, qty int, price decimal.Decimal) error {
	return tx.Model(&model.Brand{}).Where("id = ?", id).Updates(map[string]interface{}{
		"quantity": gorm.Expr("quantity + ?", qty),
		"price":    price,
	}).Error
}

func (r *brandRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.Brand{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *brandRepo) IncrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.Brand{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}

func (r *brandRepo) ZeroStockTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Brand{}).Where("id = ?", id).Update("quantity", 0).Error
}

func (r *brandRepo) DB() *gorm.DB { return r.db }
