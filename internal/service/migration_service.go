package service

import (
	"context"
	"fmt"
	"time"

	"liquorpos/internal/apperr"
	"liquorpos/internal/auth"
	"liquorpos/internal/dto"
	"liquorpos/internal/model"
	"liquorpos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// stockEntryBackfillJob is the completion-marker name for the one-shot
// backfill. Re-running after brand quantities have changed would misstate
// the addition history, so the marker makes the job run exactly once.
const stockEntryBackfillJob = "stock_entry_backfill"

// MigrationService runs one-shot reconciliation jobs against the ledger.
type MigrationService interface {
	// BackfillStockEntries synthesizes a StockEntry for every brand that
	// predates the stock-entry log: current quantity and price, the brand's
	// original creation time as the added date. Best-effort reconstruction,
	// not an authoritative history.
	BackfillStockEntries(ctx context.Context, req dto.MigrateRequest) (*dto.MigrateResponse, error)
}

type migrationService struct {
	brands     repository.BrandRepository
	entries    repository.StockEntryRepository
	migrations repository.MigrationRepository
	guard      auth.Guard
}

func NewMigrationService(
	brands repository.BrandRepository,
	entries repository.StockEntryRepository,
	migrations repository.MigrationRepository,
	guard auth.Guard,
) MigrationService {
	return &migrationService{
		brands:     brands,
		entries:    entries,
		migrations: migrations,
		guard:      guard,
	}
}

func (s *migrationService) BackfillStockEntries(ctx context.Context, req dto.MigrateRequest) (*dto.MigrateResponse, error) {
	if err := s.guard.Authorize(req.OwnerPassword); err != nil {
		return nil, err
	}

	done, err := s.migrations.IsCompleted(ctx, stockEntryBackfillJob)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check migration state")
	}
	if done {
		return &dto.MigrateResponse{
			Success: true,
			Message: "Migration already completed; skipping.",
		}, nil
	}

	brands, err := s.brands.ListByName(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load brands")
	}
	covered, err := s.entries.BrandIDsWithEntries(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load stock entries")
	}

	now := time.Now()
	week := isoWeekKey(now)
	created := 0

	txErr := runTx(ctx, s.brands.DB(), func(tx *gorm.DB) error {
		for _, b := range brands {
			if b.Quantity <= 0 || covered[b.ID] {
				continue
			}
			addedDate := b.CreatedAt
			if addedDate.IsZero() {
				addedDate = now
			}
			entry := &model.StockEntry{
				BrandID:        b.ID,
				BrandName:      b.Name,
				BrandType:      b.Type,
				Quantity:       b.Quantity,
				PricePerBottle: b.Price,
				TotalValue:     b.Price.Mul(decimal.NewFromInt(int64(b.Quantity))),
				AddedDate:      addedDate,
				WeekOfYear:     week,
			}
			if err := s.entries.CreateTx(tx, entry); err != nil {
				return err
			}
			created++
		}
		return s.migrations.MarkCompletedTx(tx, stockEntryBackfillJob)
	})
	if txErr != nil {
		return nil, apperr.Wrap(txErr, "backfill failed")
	}

	return &dto.MigrateResponse{
		Success:             true,
		Message:             fmt.Sprintf("Migration completed successfully. Created %d stock entries for existing brands.", created),
		BrandsProcessed:     len(brands),
		StockEntriesCreated: created,
	}, nil
}
