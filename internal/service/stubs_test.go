package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"liquorpos/internal/model"
	"liquorpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── In-memory BrandRepository stub ───────────────────────────────────────────
// Find methods hand out copies, the way a DB does — mutating a returned
// brand must not silently change the stored row.

type stubBrandRepo struct {
	brands map[uuid.UUID]*model.Brand
}

func newStubBrandRepo() *stubBrandRepo {
	return &stubBrandRepo{brands: make(map[uuid.UUID]*model.Brand)}
}

func (r *stubBrandRepo) add(name, brandType string, price decimal.Decimal, qty int) uuid.UUID {
	id := uuid.New()
	now := time.Now()
	r.brands[id] = &model.Brand{
		ID: id, Name: name, Type: brandType, Price: price, Quantity: qty,
		CreatedAt: now, UpdatedAt: now,
	}
	return id
}

func (r *stubBrandRepo) get(id uuid.UUID) *model.Brand { return r.brands[id] }

func (r *stubBrandRepo) Create(_ context.Context, b *model.Brand) error {
	return r.CreateTx(nil, b)
}

func (r *stubBrandRepo) CreateTx(_ *gorm.DB, b *model.Brand) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	clone := *b
	r.brands[b.ID] = &clone
	return nil
}

func (r *stubBrandRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Brand, error) {
	b, ok := r.brands[id]
	if !ok {
		return nil, errNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBrandRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Brand, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubBrandRepo) FindByNameType(_ context.Context, name, brandType string) (*model.Brand, error) {
	for _, b := range r.brands {
		if b.Name == name && b.Type == brandType {
			clone := *b
			return &clone, nil
		}
	}
	return nil, errNotFound
}

func (r *stubBrandRepo) ListByUpdated(_ context.Context) ([]model.Brand, error) {
	out := r.all()
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *stubBrandRepo) ListByName(_ context.Context) ([]model.Brand, error) {
	out := r.all()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubBrandRepo) Search(_ context.Context, term string, limit int) ([]model.Brand, error) {
	lower := strings.ToLower(term)
	var out []model.Brand
	for _, b := range r.all() {
		if strings.Contains(strings.ToLower(b.Name), lower) ||
			strings.Contains(strings.ToLower(b.Type), lower) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubBrandRepo) all() []model.Brand {
	out := make([]model.Brand, 0, len(r.brands))
	for _, b := range r.brands {
		out = append(out, *b)
	}
	return out
}

func (r *stubBrandRepo) AddStockTx(_ *gorm.DB, id uuid.UUID, qty int, price decimal.Decimal) error {
	b, ok := r.brands[id]
	if !ok {
		return errNotFound
	}
	b.Quantity += qty
	b.Price = price
	b.UpdatedAt = time.Now()
	return nil
}

func (r *stubBrandRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	b, ok := r.brands[id]
	if !ok || b.Quantity < qty {
		return 0, nil
	}
	b.Quantity -= qty
	b.UpdatedAt = time.Now()
	return 1, nil
}

func (r *stubBrandRepo) IncrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	if b, ok := r.brands[id]; ok {
		b.Quantity += qty
		b.UpdatedAt = time.Now()
	}
	return nil
}

func (r *stubBrandRepo) ZeroStockTx(_ *gorm.DB, id uuid.UUID) error {
	if b, ok := r.brands[id]; ok {
		b.Quantity = 0
		b.UpdatedAt = time.Now()
	}
	return nil
}

func (r *stubBrandRepo) DB() *gorm.DB { return nil }

var _ repository.BrandRepository = (*stubBrandRepo)(nil)

// ── In-memory StockEntryRepository stub ──────────────────────────────────────

type stubStockEntryRepo struct {
	entries []model.StockEntry
}

func (r *stubStockEntryRepo) CreateTx(_ *gorm.DB, e *model.StockEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubStockEntryRepo) ListAll(_ context.Context) ([]model.StockEntry, error) {
	out := make([]model.StockEntry, len(r.entries))
	copy(out, r.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].AddedDate.After(out[j].AddedDate) })
	return out, nil
}

func (r *stubStockEntryRepo) BrandIDsWithEntries(_ context.Context) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool)
	for _, e := range r.entries {
		set[e.BrandID] = true
	}
	return set, nil
}

var _ repository.StockEntryRepository = (*stubStockEntryRepo)(nil)

// ── In-memory TransactionRepository stub ─────────────────────────────────────

type stubTransactionRepo struct {
	txs map[uuid.UUID]*model.Transaction
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{txs: make(map[uuid.UUID]*model.Transaction)}
}

func (r *stubTransactionRepo) CreateTx(_ *gorm.DB, t *model.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	clone := *t
	r.txs[t.ID] = &clone
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	t, ok := r.txs[id]
	if !ok {
		return nil, errNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTransactionRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.txs, id)
	return nil
}

func (r *stubTransactionRepo) ListInRange(_ context.Context, from, to *time.Time, limit int) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.txs {
		if from != nil && t.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && t.CreatedAt.After(*to) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubTransactionRepo) DB() *gorm.DB { return nil }

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// ── In-memory MigrationRepository stub ───────────────────────────────────────

type stubMigrationRepo struct {
	completed map[string]bool
}

func newStubMigrationRepo() *stubMigrationRepo {
	return &stubMigrationRepo{completed: make(map[string]bool)}
}

func (r *stubMigrationRepo) IsCompleted(_ context.Context, name string) (bool, error) {
	return r.completed[name], nil
}

func (r *stubMigrationRepo) MarkCompletedTx(_ *gorm.DB, name string) error {
	r.completed[name] = true
	return nil
}

var _ repository.MigrationRepository = (*stubMigrationRepo)(nil)
