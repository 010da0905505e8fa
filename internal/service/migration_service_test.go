package service_test

import (
	"context"
	"testing"
	"time"

	"liquorpos/internal/apperr"
	"liquorpos/internal/auth"
	"liquorpos/internal/dto"
	"liquorpos/internal/model"
	"liquorpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMigration() (service.MigrationService, *stubBrandRepo, *stubStockEntryRepo, *stubMigrationRepo) {
	brands := newStubBrandRepo()
	entries := &stubStockEntryRepo{}
	markers := newStubMigrationRepo()
	guard := auth.NewSharedSecretGuard(ownerSecret)
	svc := service.NewMigrationService(brands, entries, markers, guard)
	return svc, brands, entries, markers
}

func TestBackfillCreatesEntriesForUncoveredBrands(t *testing.T) {
	svc, brands, entries, _ := buildMigration()

	stocked := brands.add("Royal Stag", "750ml", price(1200), 5)
	brands.add("Old Monk", "1L", price(700), 0) // zero stock — skipped
	covered := brands.add("Antiquity", "Blue 750ml", price(950), 3)

	// Antiquity already has an entry and must not be duplicated
	entries.entries = append(entries.entries, model.StockEntry{
		ID: uuid.New(), BrandID: covered, BrandName: "Antiquity", BrandType: "Blue 750ml",
		Quantity: 3, TotalValue: price(2850),
		AddedDate: time.Now(), WeekOfYear: "2025-W30",
	})

	resp, err := svc.BackfillStockEntries(context.Background(), dto.MigrateRequest{OwnerPassword: ownerSecret})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.BrandsProcessed)
	assert.Equal(t, 1, resp.StockEntriesCreated)

	require.Len(t, entries.entries, 2)
	synthesized := entries.entries[1]
	assert.Equal(t, stocked, synthesized.BrandID)
	assert.Equal(t, 5, synthesized.Quantity)
	assert.True(t, synthesized.TotalValue.Equal(price(6000)))
	// AddedDate reuses the brand's original creation time
	assert.Equal(t, brands.get(stocked).CreatedAt, synthesized.AddedDate)
}

func TestBackfillRunsOnlyOnce(t *testing.T) {
	svc, brands, entries, markers := buildMigration()
	brands.add("Royal Stag", "750ml", price(1200), 5)

	_, err := svc.BackfillStockEntries(context.Background(), dto.MigrateRequest{OwnerPassword: ownerSecret})
	require.NoError(t, err)
	require.Len(t, entries.entries, 1)
	assert.True(t, markers.completed["stock_entry_backfill"])

	// Second run is a guarded no-op even though quantities may have changed
	resp, err := svc.BackfillStockEntries(context.Background(), dto.MigrateRequest{OwnerPassword: ownerSecret})
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "already completed")
	assert.Len(t, entries.entries, 1)
}

func TestBackfillRequiresOwnerPassword(t *testing.T) {
	svc, brands, entries, _ := buildMigration()
	brands.add("Royal Stag", "750ml", price(1200), 5)

	_, err := svc.BackfillStockEntries(context.Background(), dto.MigrateRequest{OwnerPassword: "nope"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Empty(t, entries.entries)
}
