package service

import (
	"context"
	"sort"
	"time"

	"liquorpos/internal/apperr"
	"liquorpos/internal/dto"
	"liquorpos/internal/model"
	"liquorpos/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService covers the read-only aggregation queries: stock levels,
// the weekly stock history and the analytics dashboard. Pure projections —
// no query here mutates anything.
type ReportService interface {
	StockLevels(ctx context.Context) ([]dto.StockLevelResponse, error)
	WeeklyStockHistory(ctx context.Context) ([]dto.WeeklyStockGroup, error)
	Analytics(ctx context.Context, filter dto.AnalyticsFilter) (*dto.AnalyticsResponse, error)
	ListBrands(ctx context.Context) ([]dto.BrandResponse, error)
	SearchBrands(ctx context.Context, term string) ([]dto.BrandResponse, error)
	ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionResponse, error)
}

type reportService struct {
	brands  repository.BrandRepository
	entries repository.StockEntryRepository
	txs     repository.TransactionRepository

	lowStockThreshold int
	topSellersLimit   int
	searchLimit       int
}

func NewReportService(
	brands repository.BrandRepository,
	entries repository.StockEntryRepository,
	txs repository.TransactionRepository,
	lowStockThreshold, topSellersLimit int,
) ReportService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	if topSellersLimit <= 0 {
		topSellersLimit = 5
	}
	return &reportService{
		brands:            brands,
		entries:           entries,
		txs:               txs,
		lowStockThreshold: lowStockThreshold,
		topSellersLimit:   topSellersLimit,
		searchLimit:       10,
	}
}

const timeLayout = "2006-01-02T15:04:05Z"

// ── StockLevels ──────────────────────────────────────────────────────────────

func (s *reportService) StockLevels(ctx context.Context) ([]dto.StockLevelResponse, error) {
	brands, err := s.brands.ListByName(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load stock levels")
	}

	levels := make([]dto.StockLevelResponse, 0, len(brands))
	for _, b := range brands {
		levels = append(levels, dto.StockLevelResponse{
			ID:          b.ID.String(),
			Name:        b.Name,
			Type:        b.Type,
			Price:       b.Price,
			Quantity:    b.Quantity,
			StockStatus: s.stockStatus(b.Quantity),
			TotalValue:  b.Price.Mul(decimal.NewFromInt(int64(b.Quantity))),
			CreatedAt:   b.CreatedAt.UTC().Format(timeLayout),
			UpdatedAt:   b.UpdatedAt.UTC().Format(timeLayout),
		})
	}
	return levels, nil
}

func (s *reportService) stockStatus(quantity int) string {
	switch {
	case quantity == 0:
		return "out"
	case quantity <= s.lowStockThreshold:
		return "low"
	default:
		return "good"
	}
}

// ── WeeklyStockHistory ───────────────────────────────────────────────────────
// Groups the append-only stock-entry log by ISO week key, newest week
// first. The zero-padded "YYYY-Www" keys sort chronologically as strings.

func (s *reportService) WeeklyStockHistory(ctx context.Context) ([]dto.WeeklyStockGroup, error) {
	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load stock history")
	}

	groups := make(map[string]*dto.WeeklyStockGroup)
	for _, e := range entries {
		g, ok := groups[e.WeekOfYear]
		if !ok {
			g = &dto.WeeklyStockGroup{Week: e.WeekOfYear, TotalValue: decimal.Zero}
			groups[e.WeekOfYear] = g
		}
		g.TotalValue = g.TotalValue.Add(e.TotalValue)
		g.Entries = append(g.Entries, dto.StockEntryResponse{
			ID:             e.ID.String(),
			BrandID:        e.BrandID.String(),
			BrandName:      e.BrandName,
			BrandType:      e.BrandType,
			Quantity:       e.Quantity,
			PricePerBottle: e.PricePerBottle,
			TotalValue:     e.TotalValue,
			AddedDate:      e.AddedDate.UTC().Format(timeLayout),
			WeekOfYear:     e.WeekOfYear,
		})
	}

	history := make([]dto.WeeklyStockGroup, 0, len(groups))
	for _, g := range groups {
		history = append(history, *g)
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Week > history[j].Week })
	return history, nil
}

// ── Analytics ────────────────────────────────────────────────────────────────

func (s *reportService) Analytics(ctx context.Context, filter dto.AnalyticsFilter) (*dto.AnalyticsResponse, error) {
	from, to := epochBounds(filter.DateFrom, filter.DateTo)
	txs, err := s.txs.ListInRange(ctx, from, to, 0)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load transactions")
	}
	brands, err := s.brands.ListByName(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load brands")
	}

	resp := &dto.AnalyticsResponse{
		TotalRevenue:      decimal.Zero,
		CashRevenue:       decimal.Zero,
		UPIRevenue:        decimal.Zero,
		TotalTransactions: len(txs),
		TopSellingBrands:  []dto.TopSellingBrand{},
	}

	type sellerKey struct{ name, brandType string }
	type sellerAgg struct {
		quantity int
		revenue  decimal.Decimal
	}
	sellers := make(map[sellerKey]*sellerAgg)
	bump := func(name, brandType string, qty int, revenue decimal.Decimal) {
		k := sellerKey{name, brandType}
		agg, ok := sellers[k]
		if !ok {
			agg = &sellerAgg{revenue: decimal.Zero}
			sellers[k] = agg
		}
		agg.quantity += qty
		agg.revenue = agg.revenue.Add(revenue)
	}

	// Exhaustive over both sale shapes: a legacy row without a
	// discriminator counts as single.
	for i := range txs {
		t := &txs[i]
		resp.TotalRevenue = resp.TotalRevenue.Add(t.TotalAmount)
		switch t.PaymentMethod {
		case model.PaymentCash:
			resp.CashRevenue = resp.CashRevenue.Add(t.TotalAmount)
		case model.PaymentUPI:
			resp.UPIRevenue = resp.UPIRevenue.Add(t.TotalAmount)
		}

		if t.IsMulti() {
			for _, item := range t.Items {
				resp.TotalBottlesSold += item.Quantity
				bump(item.BrandName, item.BrandType, item.Quantity, item.ItemTotal)
			}
		} else if t.Quantity != nil {
			resp.TotalBottlesSold += *t.Quantity
			name, brandType := "", ""
			if t.BrandName != nil {
				name = *t.BrandName
			}
			if t.BrandType != nil {
				brandType = *t.BrandType
			}
			bump(name, brandType, *t.Quantity, t.TotalAmount)
		}
	}

	// Stock metrics always cover the full catalog, unfiltered by date.
	resp.TotalBrands = len(brands)
	for _, b := range brands {
		resp.TotalStock += b.Quantity
		switch {
		case b.Quantity == 0:
			resp.OutOfStockBrands++
		case b.Quantity <= s.lowStockThreshold:
			resp.LowStockBrands++
		}
	}

	ranked := make([]dto.TopSellingBrand, 0, len(sellers))
	for k, agg := range sellers {
		ranked = append(ranked, dto.TopSellingBrand{
			Name:     k.name + " " + k.brandType,
			Quantity: agg.quantity,
			Revenue:  agg.revenue,
		})
	}
	// Quantity descending; ties broken by revenue descending, then name
	// ascending, so the ranking is stable across runs.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		if !ranked[i].Revenue.Equal(ranked[j].Revenue) {
			return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > s.topSellersLimit {
		ranked = ranked[:s.topSellersLimit]
	}
	resp.TopSellingBrands = ranked

	return resp, nil
}

// ── Brand feeds ──────────────────────────────────────────────────────────────

func (s *reportService) ListBrands(ctx context.Context) ([]dto.BrandResponse, error) {
	brands, err := s.brands.ListByUpdated(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list brands")
	}
	return brandResponses(brands), nil
}

func (s *reportService) SearchBrands(ctx context.Context, term string) ([]dto.BrandResponse, error) {
	brands, err := s.brands.Search(ctx, term, s.searchLimit)
	if err != nil {
		return nil, apperr.Wrap(err, "brand search failed")
	}
	return brandResponses(brands), nil
}

func brandResponses(brands []model.Brand) []dto.BrandResponse {
	out := make([]dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, dto.BrandResponse{
			ID:        b.ID.String(),
			Name:      b.Name,
			Type:      b.Type,
			Price:     b.Price,
			Quantity:  b.Quantity,
			UpdatedAt: b.UpdatedAt.UTC().Format(timeLayout),
		})
	}
	return out
}

// ── Transaction history ──────────────────────────────────────────────────────

func (s *reportService) ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionResponse, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	from, to := epochBounds(filter.DateFrom, filter.DateTo)
	txs, err := s.txs.ListInRange(ctx, from, to, limit)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list transactions")
	}

	out := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		t := &txs[i]
		resp := dto.TransactionResponse{
			ID:              t.ID.String(),
			TransactionType: t.Type,
			BrandName:       t.BrandName,
			BrandType:       t.BrandType,
			Quantity:        t.Quantity,
			PricePerBottle:  t.PricePerBottle,
			TotalAmount:     t.TotalAmount,
			PaymentMethod:   t.PaymentMethod,
			CustomerName:    t.CustomerName,
			CustomerPhone:   t.CustomerPhone,
			CreatedAt:       t.CreatedAt.UTC().Format(timeLayout),
		}
		if resp.TransactionType == "" {
			resp.TransactionType = model.TransactionSingle
		}
		for _, item := range t.Items {
			resp.Items = append(resp.Items, dto.SaleItemResponse{
				BrandID:        item.BrandID.String(),
				BrandName:      item.BrandName,
				BrandType:      item.BrandType,
				Quantity:       item.Quantity,
				PricePerBottle: item.PricePerBottle,
				ItemTotal:      item.ItemTotal,
			})
		}
		out = append(out, resp)
	}
	return out, nil
}

// epochBounds converts optional epoch-millisecond bounds into time values.
func epochBounds(fromMs, toMs *int64) (from, to *time.Time) {
	if fromMs != nil {
		t := time.UnixMilli(*fromMs).UTC()
		from = &t
	}
	if toMs != nil {
		t := time.UnixMilli(*toMs).UTC()
		to = &t
	}
	return from, to
}
