package repository

import (
	"context"
	"time"

	"liquorpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository persists completed sales. Rows are immutable after
// creation; the only mutation is the owner-gated delete.
type TransactionRepository interface {
	CreateTx(tx *gorm.DB, t *model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	// ListInRange returns transactions within [from, to] (either bound
	// optional, inclusive), newest first, capped at limit when limit > 0.
	ListInRange(ctx context.Context, from, to *time.Time, limit int) ([]model.Transaction, error)
	DB() *gorm.DB
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository { return &transactionRepo{db: db} }

func (r *transactionRepo) CreateTx(tx *gorm.DB, t *model.Transaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).Preload("Items").First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	// Items go with the parent via ON DELETE CASCADE.
	return tx.Delete(&model.Transaction{}, "id = ?", id).Error
}

func (r *transactionRepo) ListInRange(ctx context.Context, from, to *time.Time, limit int) ([]model.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).Preload("Items")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var txs []model.Transaction
	err := q.Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) DB() *gorm.DB { return r.db }
