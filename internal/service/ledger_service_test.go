package service_test

import (
	"context"
	"testing"

	"liquorpos/internal/apperr"
	"liquorpos/internal/auth"
	"liquorpos/internal/dto"
	"liquorpos/internal/model"
	"liquorpos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerSecret = "owner-secret"

func buildLedger() (service.LedgerService, *stubBrandRepo, *stubStockEntryRepo, *stubTransactionRepo) {
	brands := newStubBrandRepo()
	entries := &stubStockEntryRepo{}
	txs := newStubTransactionRepo()
	guard := auth.NewSharedSecretGuard(ownerSecret)
	svc := service.NewLedgerService(brands, entries, txs, guard, nil)
	return svc, brands, entries, txs
}

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ── AddStock ─────────────────────────────────────────────────────────────────

func TestAddStockCreatesNewBrand(t *testing.T) {
	svc, brands, entries, _ := buildLedger()

	resp, err := svc.AddStock(context.Background(), dto.AddStockRequest{
		Name: "Johnnie Walker", Type: "Black Label 750ml", Price: price(3200), Quantity: 12,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Added new brand: Johnnie Walker Black Label 750ml with 12 bottles", resp.Message)
	assert.True(t, resp.TotalValue.Equal(price(38400)))

	require.Len(t, entries.entries, 1)
	entry := entries.entries[0]
	assert.Equal(t, "Johnnie Walker", entry.BrandName)
	assert.Equal(t, 12, entry.Quantity)
	assert.True(t, entry.TotalValue.Equal(price(38400)))
	assert.Regexp(t, `^\d{4}-W\d{2}$`, entry.WeekOfYear)

	created, err := brands.FindByNameType(context.Background(), "Johnnie Walker", "Black Label 750ml")
	require.NoError(t, err)
	assert.Equal(t, 12, created.Quantity)
}

func TestAddStockAccumulatesQuantityAndTakesLatestPrice(t *testing.T) {
	svc, brands, entries, _ := buildLedger()
	ctx := context.Background()

	adds := []struct {
		price int64
		qty   int
	}{{1200, 5}, {1250, 3}, {1100, 10}}

	total := 0
	for _, a := range adds {
		resp, err := svc.AddStock(ctx, dto.AddStockRequest{
			Name: "Royal Stag", Type: "750ml", Price: price(a.price), Quantity: a.qty,
		})
		require.NoError(t, err)
		total += a.qty
		assert.True(t, resp.Success)
	}

	brand, err := brands.FindByNameType(ctx, "Royal Stag", "750ml")
	require.NoError(t, err)
	assert.Equal(t, total, brand.Quantity, "final quantity is the sum of all additions")
	assert.True(t, brand.Price.Equal(price(1100)), "price reflects the most recent addition")

	// One append-only entry per call, never merged
	assert.Len(t, entries.entries, len(adds))
}

func TestAddStockUpdateMessageReportsNewTotal(t *testing.T) {
	svc, _, _, _ := buildLedger()
	ctx := context.Background()

	_, err := svc.AddStock(ctx, dto.AddStockRequest{Name: "Old Monk", Type: "1L", Price: price(700), Quantity: 4})
	require.NoError(t, err)

	resp, err := svc.AddStock(ctx, dto.AddStockRequest{Name: "Old Monk", Type: "1L", Price: price(720), Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, "Updated Old Monk 1L. New quantity: 10", resp.Message)
}

func TestAddStockRejectsBadInput(t *testing.T) {
	svc, _, entries, _ := buildLedger()
	ctx := context.Background()

	cases := []dto.AddStockRequest{
		{Name: "", Type: "750ml", Price: price(100), Quantity: 1},
		{Name: "Brand", Type: "  ", Price: price(100), Quantity: 1},
		{Name: "Brand", Type: "750ml", Price: price(100), Quantity: 0},
		{Name: "Brand", Type: "750ml", Price: price(100), Quantity: -2},
		{Name: "Brand", Type: "750ml", Price: decimal.Zero, Quantity: 1},
		{Name: "Brand", Type: "750ml", Price: price(-10), Quantity: 1},
	}
	for _, req := range cases {
		_, err := svc.AddStock(ctx, req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	}
	assert.Empty(t, entries.entries, "rejected additions must not touch the log")
}

// ── CreateSingleTransaction ──────────────────────────────────────────────────

func TestSingleSaleDecrementsStock(t *testing.T) {
	svc, brands, _, txs := buildLedger()
	id := brands.add("Royal Stag", "750ml", price(1200), 5)

	resp, err := svc.CreateSingleTransaction(context.Background(), dto.SingleSaleRequest{
		BrandID: id.String(), Quantity: 3, PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(price(3600)))
	assert.Equal(t, 2, resp.RemainingStock)
	assert.Equal(t, "Sale recorded: 3 x Royal Stag 750ml = ₹3600", resp.Message)
	assert.Equal(t, 2, brands.get(id).Quantity)
	assert.Len(t, txs.txs, 1)
}

func TestSingleSaleInsufficientStock(t *testing.T) {
	svc, brands, _, txs := buildLedger()
	id := brands.add("Royal Stag", "750ml", price(1200), 2)

	_, err := svc.CreateSingleTransaction(context.Background(), dto.SingleSaleRequest{
		BrandID: id.String(), Quantity: 5, PaymentMethod: model.PaymentCash,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Available: 2, Requested: 5")
	assert.Equal(t, 2, brands.get(id).Quantity, "stock untouched on rejection")
	assert.Empty(t, txs.txs)
}

func TestSingleSaleUnknownBrand(t *testing.T) {
	svc, _, _, _ := buildLedger()

	_, err := svc.CreateSingleTransaction(context.Background(), dto.SingleSaleRequest{
		BrandID: "0d9783f3-ec2b-4fd8-8b5c-9a05b1f0c7e4", Quantity: 1, PaymentMethod: model.PaymentUPI,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// ── CreateCartTransaction ────────────────────────────────────────────────────

func TestCartSaleCommitsAllItems(t *testing.T) {
	svc, brands, _, txs := buildLedger()
	whisky := brands.add("Johnnie Walker", "Black Label 750ml", price(3200), 10)
	rum := brands.add("Old Monk", "1L", price(700), 8)

	resp, err := svc.CreateCartTransaction(context.Background(), dto.CartSaleRequest{
		Items: []dto.CartItemRequest{
			{BrandID: whisky.String(), Quantity: 2},
			{BrandID: rum.String(), Quantity: 3},
		},
		PaymentMethod: model.PaymentUPI,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ItemCount)
	assert.True(t, resp.TotalAmount.Equal(price(2*3200+3*700)))

	// Sum of item subtotals always equals the transaction total
	sum := decimal.Zero
	for _, item := range resp.Items {
		sum = sum.Add(item.ItemTotal)
	}
	assert.True(t, sum.Equal(resp.TotalAmount))

	assert.Equal(t, 8, brands.get(whisky).Quantity)
	assert.Equal(t, 5, brands.get(rum).Quantity)

	require.Len(t, txs.txs, 1)
	for _, recorded := range txs.txs {
		assert.Equal(t, model.TransactionMulti, recorded.Type)
		assert.Len(t, recorded.Items, 2)
	}
}

func TestCartSaleRejectsWholeCartWhenOneItemFails(t *testing.T) {
	svc, brands, _, txs := buildLedger()
	whisky := brands.add("Johnnie Walker", "Black Label 750ml", price(3200), 10)
	rum := brands.add("Old Monk", "1L", price(700), 1)

	_, err := svc.CreateCartTransaction(context.Background(), dto.CartSaleRequest{
		Items: []dto.CartItemRequest{
			{BrandID: whisky.String(), Quantity: 2}, // would succeed alone
			{BrandID: rum.String(), Quantity: 5},    // insufficient
		},
		PaymentMethod: model.PaymentCash,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Old Monk 1L")
	assert.Contains(t, err.Error(), "Available: 1, Requested: 5")

	assert.Equal(t, 10, brands.get(whisky).Quantity, "earlier items must not be applied")
	assert.Equal(t, 1, brands.get(rum).Quantity)
	assert.Empty(t, txs.txs)
}

func TestCartSaleRejectsEmptyCart(t *testing.T) {
	svc, _, _, _ := buildLedger()

	_, err := svc.CreateCartTransaction(context.Background(), dto.CartSaleRequest{
		Items: nil, PaymentMethod: model.PaymentCash,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	assert.Equal(t, "Cart cannot be empty", err.Error())
}

// Checkout walkthrough: stock 5, sell 3, then try to sell 5 more.
func TestCheckoutDepletionScenario(t *testing.T) {
	svc, brands, _, txs := buildLedger()
	ctx := context.Background()

	added, err := svc.AddStock(ctx, dto.AddStockRequest{
		Name: "Royal Stag", Type: "750ml", Price: price(1200), Quantity: 5,
	})
	require.NoError(t, err)

	first, err := svc.CreateCartTransaction(ctx, dto.CartSaleRequest{
		Items:         []dto.CartItemRequest{{BrandID: added.BrandID, Quantity: 3}},
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, first.TotalAmount.Equal(price(3600)))

	brand, err := brands.FindByNameType(ctx, "Royal Stag", "750ml")
	require.NoError(t, err)
	assert.Equal(t, 2, brand.Quantity)

	_, err = svc.CreateCartTransaction(ctx, dto.CartSaleRequest{
		Items:         []dto.CartItemRequest{{BrandID: added.BrandID, Quantity: 5}},
		PaymentMethod: model.PaymentCash,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))

	brand, err = brands.FindByNameType(ctx, "Royal Stag", "750ml")
	require.NoError(t, err)
	assert.Equal(t, 2, brand.Quantity, "failed checkout leaves stock unchanged")
	assert.Len(t, txs.txs, 1, "failed checkout records no transaction")
}

// ── RemoveStock ──────────────────────────────────────────────────────────────

func TestRemoveStockRequiresOwnerPassword(t *testing.T) {
	svc, brands, _, _ := buildLedger()
	id := brands.add("Old Monk", "1L", price(700), 6)

	_, err := svc.RemoveStock(context.Background(), id.String(), dto.RemoveStockRequest{
		Quantity: 2, OwnerPassword: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Equal(t, "Unauthorized: Invalid owner password", err.Error())
	assert.Equal(t, 6, brands.get(id).Quantity, "unauthorized removal is a no-op")
}

func TestRemoveStockOrdinary(t *testing.T) {
	svc, brands, _, _ := buildLedger()
	id := brands.add("Old Monk", "1L", price(700), 6)

	resp, err := svc.RemoveStock(context.Background(), id.String(), dto.RemoveStockRequest{
		Quantity: 2, OwnerPassword: ownerSecret,
	})
	require.NoError(t, err)
	assert.Equal(t, "Removed 2 bottles of Old Monk 1L. Remaining: 4", resp.Message)
	assert.Equal(t, 4, brands.get(id).Quantity)
}

func TestRemoveStockSentinelZeroesBrand(t *testing.T) {
	svc, brands, _, _ := buildLedger()
	id := brands.add("Old Monk", "1L", price(700), 7)

	resp, err := svc.RemoveStock(context.Background(), id.String(), dto.RemoveStockRequest{
		Quantity: service.CompleteRemovalThreshold, OwnerPassword: ownerSecret,
	})
	require.NoError(t, err)
	assert.Equal(t, "Completely removed Old Monk 1L from inventory (removed 7 bottles)", resp.Message)
	assert.Equal(t, 0, brands.get(id).Quantity)
	assert.NotNil(t, brands.get(id), "sentinel removal zeroes, never deletes the row")
}

func TestRemoveStockInsufficient(t *testing.T) {
	svc, brands, _, _ := buildLedger()
	id := brands.add("Old Monk", "1L", price(700), 3)

	_, err := svc.RemoveStock(context.Background(), id.String(), dto.RemoveStockRequest{
		Quantity: 4, OwnerPassword: ownerSecret,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))
	assert.Equal(t, 3, brands.get(id).Quantity)
}

// ── DeleteTransaction ────────────────────────────────────────────────────────

func TestDeleteSingleTransactionRestoresStock(t *testing.T) {
	svc, brands, _, txs := buildLedger()
	id := brands.add("Royal Stag", "750ml", price(1200), 5)

	sale, err := svc.CreateSingleTransaction(context.Background(), dto.SingleSaleRequest{
		BrandID: id.String(), Quantity: 3, PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)
	require.Equal(t, 2, brands.get(id).Quantity)

	resp, err := svc.DeleteTransaction(context.Background(), sale.TransactionID, dto.DeleteTransactionRequest{
		OwnerPassword: ownerSecret,
	})
	require.NoError(t, err)
	assert.Equal(t, "Transaction deleted and 3 bottles of Royal Stag 750ml restored to stock", resp.Message)
	assert.Equal(t, 5, brands.get(id).Quantity, "quantity increases by exactly the deleted sale's quantity")
	assert.Empty(t, txs.txs)
}

func TestDeleteTransactionUnauthorized(t *testing.T) {
	svc, brands, _, txs := buildLedger()
	id := brands.add("Royal Stag", "750ml", price(1200), 5)

	sale, err := svc.CreateSingleTransaction(context.Background(), dto.SingleSaleRequest{
		BrandID: id.String(), Quantity: 1, PaymentMethod: model.PaymentUPI,
	})
	require.NoError(t, err)

	_, err = svc.DeleteTransaction(context.Background(), sale.TransactionID, dto.DeleteTransactionRequest{
		OwnerPassword: "guess",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Len(t, txs.txs, 1, "transaction survives an unauthorized delete")
	assert.Equal(t, 4, brands.get(id).Quantity)
}

func TestDeleteMultiTransactionUnsupported(t *testing.T) {
	svc, brands, _, txs := buildLedger()
	id := brands.add("Old Monk", "1L", price(700), 10)

	cart, err := svc.CreateCartTransaction(context.Background(), dto.CartSaleRequest{
		Items:         []dto.CartItemRequest{{BrandID: id.String(), Quantity: 4}},
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)

	_, err = svc.DeleteTransaction(context.Background(), cart.TransactionID, dto.DeleteTransactionRequest{
		OwnerPassword: ownerSecret,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotImplemented, apperr.KindOf(err))
	assert.Len(t, txs.txs, 1, "unsupported delete leaves the row in place")
	assert.Equal(t, 6, brands.get(id).Quantity, "no partial restoration")
}

func TestDeleteTransactionNotFound(t *testing.T) {
	svc, _, _, _ := buildLedger()

	_, err := svc.DeleteTransaction(context.Background(), "41bbf1cd-2c4c-4d3e-b35e-8f316b3fbf87", dto.DeleteTransactionRequest{
		OwnerPassword: ownerSecret,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
