package repository

import (
	"context"

	"liquorpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockEntryRepository is append-only: entries are written once at stock
// addition (or backfill) and only ever read afterwards.
type StockEntryRepository interface {
	CreateTx(tx *gorm.DB, e *model.StockEntry) error
	// ListAll returns every entry, newest addition first.
	ListAll(ctx context.Context) ([]model.StockEntry, error)
	// BrandIDsWithEntries returns the set of brand ids that already have at
	// least one stock entry. Used by the backfill job.
	BrandIDsWithEntries(ctx context.Context) (map[uuid.UUID]bool, error)
}

type stockEntryRepo struct{ db *gorm.DB }

func NewStockEntryRepository(db *gorm.DB) StockEntryRepository { return &stockEntryRepo{db: db} }

func (r *stockEntryRepo) CreateTx(tx *gorm.DB, e *model.StockEntry) error {
	return tx.Create(e).Error
}

func (r *stockEntryRepo) ListAll(ctx context.Context) ([]model.StockEntry, error) {
	var entries []model.StockEntry
	err := r.db.WithContext(ctx).Order("added_date DESC").Find(&entries).Error
	return entries, err
}

func (r *stockEntryRepo) BrandIDsWithEntries(ctx context.Context) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.StockEntry{}).
		Distinct("brand_id").Pluck("brand_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
