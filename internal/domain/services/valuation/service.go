package valuation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/domain/entities"
	"github.com/folio-service/folio_service/internal/domain/repositories"
	"github.com/folio-service/folio_service/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Service is the valuation engine: it joins stored purchase lots with
// live quotes and exchange rates into the dashboard read model.
type Service struct {
	lots         repositories.LotRepository
	market       repositories.MarketDataGateway
	baseCurrency string
	logger       *zap.Logger
	now          func() time.Time
}

// NewService creates the valuation engine. Pass nil for clock to use time.Now.
func NewService(lots repositories.LotRepository, market repositories.MarketDataGateway, baseCurrency string, logger *zap.Logger, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		lots:         lots,
		market:       market,
		baseCurrency: baseCurrency,
		logger:       logger,
		now:          clock,
	}
}

// lotGroup aggregates one ticker's lots before quote resolution
type lotGroup struct {
	ticker           string
	totalQuantity    decimal.Decimal
	totalCost        decimal.Decimal
	purchaseCurrency string
	displayName      string
}

// Summary computes the full portfolio summary for one user. The position
// store being unreachable is the only fatal condition; every market-data
// failure degrades to safe defaults instead.
func (s *Service) Summary(ctx context.Context, userID string) (*entities.PortfolioSummary, error) {
	lots, err := s.lots.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.StoreUnavailable(err)
	}

	summary := &entities.PortfolioSummary{
		BaseCurrency:         s.baseCurrency,
		TotalInvestedBase:    decimal.Zero,
		TotalMarketValueBase: decimal.Zero,
		TotalReturnValue:     decimal.Zero,
		TotalReturnPct:       decimal.Zero,
		Positions:            []entities.AssetPosition{},
		Equities:             []entities.AssetPosition{},
		Cryptos:              []entities.AssetPosition{},
		GeneratedAt:          s.now().UTC(),
	}

	if len(lots) == 0 {
		return summary, nil
	}

	groups, order := groupLots(lots)

	quotes := s.market.LatestPrices(ctx, order)
	rates := s.market.RateTable(ctx, s.baseCurrency)

	positions := make([]entities.AssetPosition, 0, len(order))
	for _, ticker := range order {
		group := groups[ticker]
		if !group.totalQuantity.IsPositive() {
			// Lots with non-positive quantity are rejected at input;
			// anything here is corrupt data and is skipped, not valued
			s.logger.Warn("Skipping ticker with non-positive aggregate quantity",
				zap.String("ticker", ticker))
			continue
		}

		position := s.valuePosition(ctx, group, quotes, rates)
		positions = append(positions, position)

		summary.TotalInvestedBase = summary.TotalInvestedBase.Add(position.InvestedBase)
		summary.TotalMarketValueBase = summary.TotalMarketValueBase.Add(position.MarketValueBase)
	}

	summary.TotalReturnValue = summary.TotalMarketValueBase.Sub(summary.TotalInvestedBase)
	if !summary.TotalInvestedBase.IsZero() {
		summary.TotalReturnPct = summary.TotalReturnValue.
			Div(summary.TotalInvestedBase).Mul(hundred)
	}

	summary.Positions = withWeights(positions)
	summary.Equities = withWeights(filterKind(positions, entities.AssetKindEquity))
	summary.Cryptos = withWeights(filterKind(positions, entities.AssetKindCrypto))

	return summary, nil
}

func (s *Service) valuePosition(ctx context.Context, group lotGroup, quotes map[string]entities.Quote, rates map[string]decimal.Decimal) entities.AssetPosition {
	avgPrice := group.totalCost.Div(group.totalQuantity)

	name := group.displayName
	if name == "" {
		name = s.market.AssetName(group.ticker)
	}

	quote, hasQuote := quotes[group.ticker]

	assetCurrency := ""
	if hasQuote && quote.Currency != "" {
		assetCurrency = quote.Currency
	} else {
		assetCurrency = s.market.AssetCurrency(ctx, group.ticker, s.baseCurrency)
	}

	position := entities.AssetPosition{
		Ticker:           group.ticker,
		Name:             name,
		Kind:             entities.ClassifyTicker(group.ticker),
		PurchaseCurrency: group.purchaseCurrency,
		AssetCurrency:    assetCurrency,
		TotalQuantity:    group.totalQuantity,
		AvgPurchasePrice: avgPrice,
		InvestedOriginal: group.totalCost,
		InvestedBase:     group.totalCost.Mul(s.rateFor(rates, group.purchaseCurrency)),

		MarketValueOriginal: decimal.Zero,
		MarketValueBase:     decimal.Zero,
		ReturnValue:         decimal.Zero,
		ReturnPct:           decimal.Zero,
		WeightPct:           decimal.Zero,
	}

	// An unknown or zero price values the asset at zero but keeps it in
	// the report; its invested amount still counts toward the totals
	if !hasQuote || quote.Price.IsZero() {
		return position
	}

	price := quote.Price
	asOf := quote.AsOf
	position.CurrentPrice = &price
	position.PriceAsOf = &asOf

	position.MarketValueOriginal = group.totalQuantity.Mul(price)
	position.MarketValueBase = position.MarketValueOriginal.Mul(s.rateFor(rates, assetCurrency))
	position.ReturnValue = position.MarketValueOriginal.Sub(position.InvestedOriginal)
	if !position.InvestedOriginal.IsZero() {
		position.ReturnPct = position.ReturnValue.Div(position.InvestedOriginal).Mul(hundred)
	}

	return position
}

func (s *Service) rateFor(rates map[string]decimal.Decimal, currency string) decimal.Decimal {
	if rate, ok := rates[currency]; ok {
		return rate
	}
	s.logger.Warn("No rate for currency, defaulting to 1.0",
		zap.String("currency", currency), zap.String("base", s.baseCurrency))
	return decimal.NewFromInt(1)
}

// groupLots aggregates lots per ticker, preserving first-seen order.
// The purchase currency and custom name are taken from the oldest lot;
// all lots for one ticker are assumed to share a purchase currency.
func groupLots(lots []entities.PurchaseLot) (map[string]lotGroup, []string) {
	groups := make(map[string]lotGroup)
	order := make([]string, 0)

	for _, lot := range lots {
		group, seen := groups[lot.Ticker]
		if !seen {
			group = lotGroup{
				ticker:           lot.Ticker,
				totalQuantity:    decimal.Zero,
				totalCost:        decimal.Zero,
				purchaseCurrency: lot.PurchaseCurrency,
				displayName:      lot.DisplayName,
			}
			order = append(order, lot.Ticker)
		}

		group.totalQuantity = group.totalQuantity.Add(lot.Quantity)
		group.totalCost = group.totalCost.Add(lot.Quantity.Mul(lot.PurchasePrice))
		groups[lot.Ticker] = group
	}

	return groups, order
}

// withWeights fills WeightPct against the collection's own market value
// total. Every weight is zero when the partition is worth zero.
func withWeights(positions []entities.AssetPosition) []entities.AssetPosition {
	out := make([]entities.AssetPosition, len(positions))
	copy(out, positions)

	total := decimal.Zero
	for _, p := range out {
		total = total.Add(p.MarketValueBase)
	}

	if total.IsZero() {
		for i := range out {
			out[i].WeightPct = decimal.Zero
		}
		return out
	}

	for i := range out {
		out[i].WeightPct = out[i].MarketValueBase.Div(total).Mul(hundred)
	}
	return out
}

func filterKind(positions []entities.AssetPosition, kind entities.AssetKind) []entities.AssetPosition {
	out := make([]entities.AssetPosition, 0, len(positions))
	for _, p := range positions {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
