package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"liquorpos/internal/apperr"
	"liquorpos/internal/auth"
	"liquorpos/internal/dto"
	"liquorpos/internal/model"
	"liquorpos/internal/repository"
	"liquorpos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompleteRemovalThreshold is the sentinel: a removal request at or above
// this quantity means "remove everything", zeroing the brand's stock
// regardless of how many bottles remain.
const CompleteRemovalThreshold = 99999

// LedgerService is the mutation surface of the inventory ledger. Every
// operation is an atomic read-validate-write sequence: the catalog, the
// stock-entry log and the transaction log can never diverge from each
// other, and no brand's quantity is ever observable below zero.
type LedgerService interface {
	AddStock(ctx context.Context, req dto.AddStockRequest) (*dto.AddStockResponse, error)
	CreateSingleTransaction(ctx context.Context, req dto.SingleSaleRequest) (*dto.SingleSaleResponse, error)
	CreateCartTransaction(ctx context.Context, req dto.CartSaleRequest) (*dto.CartSaleResponse, error)
	RemoveStock(ctx context.Context, brandID string, req dto.RemoveStockRequest) (*dto.RemoveStockResponse, error)
	DeleteTransaction(ctx context.Context, transactionID string, req dto.DeleteTransactionRequest) (*dto.DeleteTransactionResponse, error)
}

type ledgerService struct {
	brands     repository.BrandRepository
	entries    repository.StockEntryRepository
	txs        repository.TransactionRepository
	guard      auth.Guard
	dispatcher *worker.Dispatcher
}

func NewLedgerService(
	brands repository.BrandRepository,
	entries repository.StockEntryRepository,
	txs repository.TransactionRepository,
	guard auth.Guard,
	dispatcher *worker.Dispatcher,
) LedgerService {
	return &ledgerService{
		brands:     brands,
		entries:    entries,
		txs:        txs,
		guard:      guard,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// isoWeekKey formats t's ISO week as "YYYY-Www", zero-padded so the keys
// sort chronologically as plain strings.
func isoWeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ── AddStock ─────────────────────────────────────────────────────────────────
// Upsert by (name, type): an existing brand gains quantity and has its price
// overwritten with the latest; a new (name, type) pair creates a catalog row.
// Either way one StockEntry is appended — the weekly history counts every
// addition, including the first.

func (s *ledgerService) AddStock(ctx context.Context, req dto.AddStockRequest) (*dto.AddStockResponse, error) {
	name := strings.TrimSpace(req.Name)
	brandType := strings.TrimSpace(req.Type)
	if name == "" || brandType == "" {
		return nil, apperr.InvalidInput("Brand name and type are required")
	}
	if req.Quantity <= 0 {
		return nil, apperr.InvalidInput("Quantity must be positive")
	}
	if !req.Price.IsPositive() {
		return nil, apperr.InvalidInput("Price must be positive")
	}

	now := time.Now()
	totalValue := req.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))

	var (
		brandID uuid.UUID
		message string
	)
	txErr := runTx(ctx, s.brands.DB(), func(tx *gorm.DB) error {
		existing, err := s.brands.FindByNameType(ctx, name, brandType)
		if err == nil {
			if err := s.brands.AddStockTx(tx, existing.ID, req.Quantity, req.Price); err != nil {
				return err
			}
			brandID = existing.ID
			message = fmt.Sprintf("Updated %s %s. New quantity: %d", name, brandType, existing.Quantity+req.Quantity)
		} else {
			brand := &model.Brand{
				Name:     name,
				Type:     brandType,
				Price:    req.Price,
				Quantity: req.Quantity,
			}
			if err := s.brands.CreateTx(tx, brand); err != nil {
				return err
			}
			brandID = brand.ID
			message = fmt.Sprintf("Added new brand: %s %s with %d bottles", name, brandType, req.Quantity)
		}

		entry := &model.StockEntry{
			BrandID:        brandID,
			BrandName:      name,
			BrandType:      brandType,
			Quantity:       req.Quantity,
			PricePerBottle: req.Price,
			TotalValue:     totalValue,
			AddedDate:      now,
			WeekOfYear:     isoWeekKey(now),
		}
		return s.entries.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, apperr.Wrap(txErr, "failed to add stock")
	}

	// Best-effort backup hook — fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueBackup(ctx)
	}

	return &dto.AddStockResponse{
		Success:    true,
		Message:    message,
		BrandID:    brandID.String(),
		TotalValue: totalValue,
	}, nil
}

// ── CreateSingleTransaction ──────────────────────────────────────────────────

func (s *ledgerService) CreateSingleTransaction(ctx context.Context, req dto.SingleSaleRequest) (*dto.SingleSaleResponse, error) {
	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return nil, apperr.InvalidInput("Invalid brand id")
	}
	if req.Quantity <= 0 {
		return nil, apperr.InvalidInput("Quantity must be positive")
	}

	brand, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		return nil, apperr.NotFound("Brand not found")
	}
	if brand.Quantity < req.Quantity {
		return nil, apperr.InsufficientStock("Not enough stock. Available: %d, Requested: %d",
			brand.Quantity, req.Quantity)
	}

	totalAmount := brand.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
	sale := &model.Transaction{
		Type:           model.TransactionSingle,
		BrandID:        &brand.ID,
		BrandName:      &brand.Name,
		BrandType:      &brand.Type,
		Quantity:       &req.Quantity,
		PricePerBottle: &brand.Price,
		TotalAmount:    totalAmount,
		PaymentMethod:  req.PaymentMethod,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
	}

	txErr := runTx(ctx, s.txs.DB(), func(tx *gorm.DB) error {
		if err := s.txs.CreateTx(tx, sale); err != nil {
			return err
		}
		rows, err := s.brands.DecrementStockTx(tx, brand.ID, req.Quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Stock was depleted between the pre-check and the decrement.
			// Rolling back also removes the transaction row.
			return apperr.InsufficientStock("Not enough stock. Available: %d, Requested: %d",
				brand.Quantity, req.Quantity)
		}
		return nil
	})
	if txErr != nil {
		if e, ok := txErr.(*apperr.Error); ok {
			return nil, e
		}
		return nil, apperr.Wrap(txErr, "failed to record sale")
	}

	return &dto.SingleSaleResponse{
		Success:       true,
		TransactionID: sale.ID.String(),
		TotalAmount:   totalAmount,
		Message: fmt.Sprintf("Sale recorded: %d x %s %s = ₹%s",
			req.Quantity, brand.Name, brand.Type, totalAmount.String()),
		RemainingStock: brand.Quantity - req.Quantity,
	}, nil
}

// ── CreateCartTransaction ────────────────────────────────────────────────────
// The safety-critical sequence of the ledger. Phase 1 validates every cart
// line and snapshots prices before anything is written; phase 2 runs inside
// one DB transaction, so a failed decrement on the last item unwinds the
// transaction row and every earlier decrement. Combined with the
// conditional decrement guard, a cart can never partially apply and stock
// can never dip below zero, even when two checkouts race on the same brand.

func (s *ledgerService) CreateCartTransaction(ctx context.Context, req dto.CartSaleRequest) (*dto.CartSaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperr.InvalidInput("Cart cannot be empty")
	}

	type resolvedItem struct {
		brandID   uuid.UUID
		brandName string
		brandType string
		quantity  int
		price     decimal.Decimal
		itemTotal decimal.Decimal
	}

	// Phase 1: validate all items, no writes.
	resolved := make([]resolvedItem, 0, len(req.Items))
	totalAmount := decimal.Zero
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperr.InvalidInput("Quantity must be positive")
		}
		brandID, err := uuid.Parse(item.BrandID)
		if err != nil {
			return nil, apperr.InvalidInput("Invalid brand id")
		}
		brand, err := s.brands.FindByID(ctx, brandID)
		if err != nil {
			return nil, apperr.NotFound("Brand not found for item")
		}
		if brand.Quantity < item.Quantity {
			return nil, apperr.InsufficientStock("Not enough stock for %s %s. Available: %d, Requested: %d",
				brand.Name, brand.Type, brand.Quantity, item.Quantity)
		}
		itemTotal := brand.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalAmount = totalAmount.Add(itemTotal)
		resolved = append(resolved, resolvedItem{
			brandID:   brand.ID,
			brandName: brand.Name,
			brandType: brand.Type,
			quantity:  item.Quantity,
			price:     brand.Price,
			itemTotal: itemTotal,
		})
	}

	sale := &model.Transaction{
		Type:          model.TransactionMulti,
		TotalAmount:   totalAmount,
		PaymentMethod: req.PaymentMethod,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}
	for _, r := range resolved {
		sale.Items = append(sale.Items, model.TransactionItem{
			BrandID:        r.brandID,
			BrandName:      r.brandName,
			BrandType:      r.brandType,
			Quantity:       r.quantity,
			PricePerBottle: r.price,
			ItemTotal:      r.itemTotal,
		})
	}

	// Phase 2: commit, all-or-nothing.
	txErr := runTx(ctx, s.txs.DB(), func(tx *gorm.DB) error {
		if err := s.txs.CreateTx(tx, sale); err != nil {
			return err
		}
		for _, r := range resolved {
			rows, err := s.brands.DecrementStockTx(tx, r.brandID, r.quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return apperr.InsufficientStock("Not enough stock for %s %s. Available: %d, Requested: %d",
					r.brandName, r.brandType, s.currentQuantity(ctx, r.brandID), r.quantity)
			}
		}
		return nil
	})
	if txErr != nil {
		if e, ok := txErr.(*apperr.Error); ok {
			return nil, e
		}
		return nil, apperr.Wrap(txErr, "failed to record cart sale")
	}

	summaries := make([]string, 0, len(resolved))
	items := make([]dto.SaleItemResponse, 0, len(resolved))
	for _, r := range resolved {
		summaries = append(summaries, fmt.Sprintf("%d x %s %s = ₹%s",
			r.quantity, r.brandName, r.brandType, r.itemTotal.String()))
		items = append(items, dto.SaleItemResponse{
			BrandID:        r.brandID.String(),
			BrandName:      r.brandName,
			BrandType:      r.brandType,
			Quantity:       r.quantity,
			PricePerBottle: r.price,
			ItemTotal:      r.itemTotal,
		})
	}

	return &dto.CartSaleResponse{
		Success:       true,
		TransactionID: sale.ID.String(),
		TotalAmount:   totalAmount,
		ItemCount:     len(resolved),
		Message: fmt.Sprintf("Multi-item sale recorded: %s. Total: ₹%s",
			strings.Join(summaries, ", "), totalAmount.String()),
		Items: items,
	}, nil
}

// currentQuantity re-reads a brand's quantity for error messages only.
func (s *ledgerService) currentQuantity(ctx context.Context, id uuid.UUID) int {
	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return 0
	}
	return brand.Quantity
}

// ── RemoveStock ──────────────────────────────────────────────────────────────
// Owner-gated. "Delete brand" is deliberately a zeroing of quantity via the
// sentinel, never a row deletion: stock entries and transactions keep
// resolving against the zeroed brand.

func (s *ledgerService) RemoveStock(ctx context.Context, brandIDStr string, req dto.RemoveStockRequest) (*dto.RemoveStockResponse, error) {
	if err := s.guard.Authorize(req.OwnerPassword); err != nil {
		return nil, err
	}
	brandID, err := uuid.Parse(brandIDStr)
	if err != nil {
		return nil, apperr.InvalidInput("Invalid brand id")
	}
	if req.Quantity <= 0 {
		return nil, apperr.InvalidInput("Quantity must be positive")
	}

	brand, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		return nil, apperr.NotFound("Brand not found")
	}

	completeRemoval := req.Quantity >= CompleteRemovalThreshold
	if !completeRemoval && brand.Quantity < req.Quantity {
		return nil, apperr.InsufficientStock("Not enough stock. Available: %d, Requested: %d",
			brand.Quantity, req.Quantity)
	}

	var message string
	txErr := runTx(ctx, s.brands.DB(), func(tx *gorm.DB) error {
		if completeRemoval {
			if err := s.brands.ZeroStockTx(tx, brand.ID); err != nil {
				return err
			}
			message = fmt.Sprintf("Completely removed %s %s from inventory (removed %d bottles)",
				brand.Name, brand.Type, brand.Quantity)
			return nil
		}

		rows, err := s.brands.DecrementStockTx(tx, brand.ID, req.Quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.InsufficientStock("Not enough stock. Available: %d, Requested: %d",
				brand.Quantity, req.Quantity)
		}
		message = fmt.Sprintf("Removed %d bottles of %s %s. Remaining: %d",
			req.Quantity, brand.Name, brand.Type, brand.Quantity-req.Quantity)
		return nil
	})
	if txErr != nil {
		if e, ok := txErr.(*apperr.Error); ok {
			return nil, e
		}
		return nil, apperr.Wrap(txErr, "failed to remove stock")
	}

	return &dto.RemoveStockResponse{Success: true, Message: message}, nil
}

// ── DeleteTransaction ────────────────────────────────────────────────────────
// Owner-gated. Restores the sold bottles back to the brand, then deletes the
// row. Restoration is defined for the single-item shape only; whether a
// multi-item deletion should restore per-item stock is an unresolved
// question upstream, so those fail with NotImplemented instead of guessing.

func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionIDStr string, req dto.DeleteTransactionRequest) (*dto.DeleteTransactionResponse, error) {
	if err := s.guard.Authorize(req.OwnerPassword); err != nil {
		return nil, err
	}
	transactionID, err := uuid.Parse(transactionIDStr)
	if err != nil {
		return nil, apperr.InvalidInput("Invalid transaction id")
	}

	sale, err := s.txs.FindByID(ctx, transactionID)
	if err != nil {
		return nil, apperr.NotFound("Transaction not found")
	}
	if sale.IsMulti() {
		return nil, apperr.NotImplemented("Deleting multi-item transactions is not supported")
	}

	qty := 0
	if sale.Quantity != nil {
		qty = *sale.Quantity
	}

	txErr := runTx(ctx, s.txs.DB(), func(tx *gorm.DB) error {
		// Restore stock; a zeroed-but-present brand gets its bottles back,
		// a missing brand id is skipped and the delete still proceeds.
		if sale.BrandID != nil && qty > 0 {
			if err := s.brands.IncrementStockTx(tx, *sale.BrandID, qty); err != nil {
				return err
			}
		}
		return s.txs.DeleteTx(tx, sale.ID)
	})
	if txErr != nil {
		return nil, apperr.Wrap(txErr, "failed to delete transaction")
	}

	name, brandType := "", ""
	if sale.BrandName != nil {
		name = *sale.BrandName
	}
	if sale.BrandType != nil {
		brandType = *sale.BrandType
	}

	return &dto.DeleteTransactionResponse{
		Success: true,
		Message: fmt.Sprintf("Transaction deleted and %d bottles of %s %s restored to stock",
			qty, name, brandType),
	}, nil
}
