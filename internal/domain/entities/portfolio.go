package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetKind partitions holdings for the breakdown views
type AssetKind string

const (
	AssetKindEquity AssetKind = "equity"
	AssetKindCrypto AssetKind = "crypto"
)

// PurchaseLot is one recorded purchase event for a ticker. Lots are
// append-only; merging happens only at read-time aggregation.
type PurchaseLot struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	UserID           string          `json:"user_id" db:"user_id"`
	Ticker           string          `json:"ticker" db:"ticker"`
	Quantity         decimal.Decimal `json:"quantity" db:"quantity"`
	PurchasePrice    decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	PurchaseCurrency string          `json:"purchase_currency" db:"purchase_currency"`
	DisplayName      string          `json:"display_name,omitempty" db:"display_name"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// Quote is the most recent traded price for a symbol, in the asset's
// native currency. Fetched fresh per valuation pass, never persisted.
type Quote struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	AsOf     time.Time       `json:"as_of"`
}

// Close is a historical daily close for a symbol
type Close struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
	Date   time.Time       `json:"date"`
}

// AssetPosition aggregates all of a user's lots for one ticker, joined
// with the live quote and converted into the base currency.
type AssetPosition struct {
	Ticker           string    `json:"ticker"`
	Name             string    `json:"name"`
	Kind             AssetKind `json:"kind"`
	PurchaseCurrency string    `json:"purchase_currency"`
	AssetCurrency    string    `json:"asset_currency"`

	TotalQuantity    decimal.Decimal `json:"total_quantity"`
	AvgPurchasePrice decimal.Decimal `json:"avg_purchase_price"`

	// CurrentPrice is nil when the provider had no data for the symbol;
	// callers must treat that as unknown, not as zero.
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
	PriceAsOf    *time.Time       `json:"price_as_of,omitempty"`

	InvestedOriginal    decimal.Decimal `json:"invested_original"`
	InvestedBase        decimal.Decimal `json:"invested_base"`
	MarketValueOriginal decimal.Decimal `json:"market_value_original"`
	MarketValueBase     decimal.Decimal `json:"market_value_base"`
	ReturnValue         decimal.Decimal `json:"return_value"`
	ReturnPct           decimal.Decimal `json:"return_pct"`

	// WeightPct is relative to the partition the position is listed in
	WeightPct decimal.Decimal `json:"weight_pct"`
}

// PortfolioSummary is the full dashboard read model for one user, in the
// configured base currency. Positions carries weights against the whole
// portfolio; Equities and Cryptos carry weights against their partition.
type PortfolioSummary struct {
	BaseCurrency         string          `json:"base_currency"`
	TotalInvestedBase    decimal.Decimal `json:"total_invested_base"`
	TotalMarketValueBase decimal.Decimal `json:"total_market_value_base"`
	TotalReturnValue     decimal.Decimal `json:"total_return_value"`
	TotalReturnPct       decimal.Decimal `json:"total_return_pct"`

	Positions []AssetPosition `json:"positions"`
	Equities  []AssetPosition `json:"equities"`
	Cryptos   []AssetPosition `json:"cryptos"`

	GeneratedAt time.Time `json:"generated_at"`
}

// HeldAssets lists the tickers currently present in a user's portfolio,
// partitioned the way the delete/selection forms need them.
type HeldAssets struct {
	Equities []string `json:"equities"`
	Cryptos  []string `json:"cryptos"`
}

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// AddLotRequest is the add-equity form payload. The ticker accepts both
// catalog picks and free text; normalization happens in the portfolio service.
type AddLotRequest struct {
	Ticker           string          `json:"ticker" binding:"required"`
	Quantity         decimal.Decimal `json:"quantity" binding:"required"`
	PurchasePrice    decimal.Decimal `json:"purchase_price" binding:"required"`
	PurchaseCurrency string          `json:"purchase_currency" binding:"required,currency"`
	DisplayName      string          `json:"display_name"`
}

// CatalogEntry is one selectable symbol for the add forms
type CatalogEntry struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Market   string `json:"market"`
}
