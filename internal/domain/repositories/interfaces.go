package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/folio-service/folio_service/internal/domain/entities"
)

// LotRepository is the position store: append-only purchase lots keyed
// by user and ticker.
type LotRepository interface {
	// Insert appends one lot row; it never deduplicates or merges
	Insert(ctx context.Context, lot *entities.PurchaseLot) error

	// DeleteByTicker removes every lot for the (user, ticker) pair.
	// Deleting a ticker the user does not hold is a no-op.
	DeleteByTicker(ctx context.Context, userID, ticker string) error

	// ListByUser returns the user's lots ordered by creation time.
	// An unknown or empty user yields an empty slice, not an error.
	ListByUser(ctx context.Context, userID string) ([]entities.PurchaseLot, error)
}

// MarketDataGateway resolves live prices and currency conversion rates.
// Implementations must degrade instead of failing: a symbol the provider
// cannot price is absent from the result, and an unresolvable rate
// defaults to one.
type MarketDataGateway interface {
	// LatestPrices performs one batched lookup for all symbols. Symbols
	// without provider data are absent from the map.
	LatestPrices(ctx context.Context, symbols []string) map[string]entities.Quote

	// RateTable maps each supported currency to its multiplicative
	// rate into the base currency. The base currency maps to 1.0.
	RateTable(ctx context.Context, base string) map[string]decimal.Decimal

	// AssetCurrency resolves the native trading currency of a symbol,
	// falling back to the base currency when unknown.
	AssetCurrency(ctx context.Context, symbol, base string) string

	// AssetName returns the best-known display name for a symbol,
	// or the symbol itself.
	AssetName(symbol string) string
}

// QuoteProvider is the raw upstream market-data client
type QuoteProvider interface {
	GetQuotes(ctx context.Context, symbols []string) (map[string]entities.Quote, error)
	GetDailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]entities.Close, error)
}

// RateCache is the TTL cache in front of exchange-rate lookups. Entries
// are replaced atomically as whole units.
type RateCache interface {
	GetRate(ctx context.Context, pair string) (decimal.Decimal, bool)
	SetRate(ctx context.Context, pair string, rate decimal.Decimal, ttl time.Duration)
}
