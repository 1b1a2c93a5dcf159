package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/domain/entities"
	"github.com/folio-service/folio_service/internal/domain/repositories"
)

// Config holds gateway tuning knobs
type Config struct {
	// RateTTL bounds how long a derived exchange rate is reused
	RateTTL time.Duration
	// FXLookbackDays is the trailing calendar window queried for fx closes
	FXLookbackDays int
	// SupportedCurrencies are the currencies RateTable resolves
	SupportedCurrencies []string
}

type symbolMeta struct {
	name     string
	currency string
}

// Service is the market data gateway. It batches quote lookups, derives
// exchange rates from historical closes, and never lets a provider
// failure escape to the valuation pass.
type Service struct {
	provider repositories.QuoteProvider
	rates    repositories.RateCache
	config   Config
	logger   *zap.Logger
	now      func() time.Time

	// symbol metadata changes rarely; cached for the process lifetime
	metaMu sync.RWMutex
	meta   map[string]symbolMeta
}

// NewService creates the gateway. The clock is injectable for tests;
// pass nil to use time.Now.
func NewService(provider repositories.QuoteProvider, rates repositories.RateCache, config Config, logger *zap.Logger, clock func() time.Time) *Service {
	if config.RateTTL == 0 {
		config.RateTTL = time.Hour
	}
	if config.FXLookbackDays == 0 {
		config.FXLookbackDays = 7
	}
	if len(config.SupportedCurrencies) == 0 {
		config.SupportedCurrencies = entities.SupportedCurrencies
	}
	if clock == nil {
		clock = time.Now
	}

	svc := &Service{
		provider: provider,
		rates:    rates,
		config:   config,
		logger:   logger,
		now:      clock,
		meta:     make(map[string]symbolMeta),
	}

	// Seed metadata from the static catalogs
	for ticker, entry := range entities.EquityCatalog {
		svc.meta[ticker] = symbolMeta{name: entry.Name, currency: entry.Currency}
	}
	for ticker, entry := range entities.CryptoCatalog {
		svc.meta[ticker] = symbolMeta{name: entry.Name, currency: entry.Currency}
	}

	return svc
}

// LatestPrices performs one batched quote lookup. A provider failure
// yields an empty map and a warning; symbols without data are absent.
func (s *Service) LatestPrices(ctx context.Context, symbols []string) map[string]entities.Quote {
	if len(symbols) == 0 {
		return map[string]entities.Quote{}
	}

	quotes, err := s.provider.GetQuotes(ctx, symbols)
	if err != nil {
		s.logger.Warn("Quote fetch failed, valuing affected assets at zero",
			zap.Error(err), zap.Int("symbols", len(symbols)))
		return map[string]entities.Quote{}
	}

	if len(quotes) < len(symbols) {
		for _, symbol := range symbols {
			if _, ok := quotes[symbol]; !ok {
				s.logger.Warn("Provider returned no price for symbol",
					zap.String("symbol", symbol))
			}
		}
	}

	s.rememberMetadata(quotes)
	return quotes
}

// Rate derives the multiplicative rate from one currency into another.
// It queries the direct fx pair over the trailing lookback window and
// takes the most recent close; when only the reverse pair has data, the
// rate is inverted. The boolean is false when no window yields data.
func (s *Service) Rate(ctx context.Context, from, to string) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}

	pair := from + to
	if cached, ok := s.rates.GetRate(ctx, pair); ok {
		return cached, true
	}

	if rate, ok := s.lookupClose(ctx, fmt.Sprintf("%s%s=X", from, to)); ok {
		s.rates.SetRate(ctx, pair, rate, s.config.RateTTL)
		return rate, true
	}

	// Provider only quotes some pairs one way round
	if reverse, ok := s.lookupClose(ctx, fmt.Sprintf("%s%s=X", to, from)); ok && !reverse.IsZero() {
		rate := decimal.NewFromInt(1).Div(reverse)
		s.rates.SetRate(ctx, pair, rate, s.config.RateTTL)
		return rate, true
	}

	return decimal.Zero, false
}

// RateTable maps every supported currency to its rate into base. The
// base currency always maps to 1.0, and unresolvable currencies default
// to 1.0 with an operator-visible warning.
func (s *Service) RateTable(ctx context.Context, base string) map[string]decimal.Decimal {
	one := decimal.NewFromInt(1)
	table := map[string]decimal.Decimal{base: one}

	for _, currency := range s.config.SupportedCurrencies {
		if currency == base {
			continue
		}

		rate, ok := s.Rate(ctx, currency, base)
		if !ok {
			s.logger.Warn("Exchange rate unavailable, defaulting to 1.0",
				zap.String("from", currency), zap.String("to", base))
			rate = one
		}
		table[currency] = rate
	}

	return table
}

// AssetCurrency resolves the native trading currency of a symbol,
// falling back to the base currency when nothing knows it.
func (s *Service) AssetCurrency(ctx context.Context, symbol, base string) string {
	s.metaMu.RLock()
	m, ok := s.meta[symbol]
	s.metaMu.RUnlock()
	if ok && m.currency != "" {
		return m.currency
	}

	// Unknown free-text ticker: one spot lookup, remembered afterwards
	quotes, err := s.provider.GetQuotes(ctx, []string{symbol})
	if err == nil {
		if quote, ok := quotes[symbol]; ok && quote.Currency != "" {
			s.rememberMetadata(quotes)
			return quote.Currency
		}
	}

	return base
}

// AssetName returns the best-known display name for a symbol
func (s *Service) AssetName(symbol string) string {
	s.metaMu.RLock()
	defer s.metaMu.RUnlock()
	if m, ok := s.meta[symbol]; ok && m.name != "" {
		return m.name
	}
	return symbol
}

func (s *Service) lookupClose(ctx context.Context, symbol string) (decimal.Decimal, bool) {
	to := s.now()
	from := to.AddDate(0, 0, -s.config.FXLookbackDays)

	closes, err := s.provider.GetDailyCloses(ctx, symbol, from, to)
	if err != nil {
		s.logger.Warn("FX close lookup failed",
			zap.Error(err), zap.String("symbol", symbol))
		return decimal.Zero, false
	}
	if len(closes) == 0 {
		return decimal.Zero, false
	}

	// Closes arrive oldest first; the window exists so weekends and
	// holidays still yield a recent value
	latest := closes[len(closes)-1]
	if latest.Price.IsZero() {
		return decimal.Zero, false
	}

	return latest.Price, true
}

func (s *Service) rememberMetadata(quotes map[string]entities.Quote) {
	if len(quotes) == 0 {
		return
	}

	s.metaMu.Lock()
	defer s.metaMu.Unlock()
	for symbol, quote := range quotes {
		existing, ok := s.meta[symbol]
		if !ok {
			s.meta[symbol] = symbolMeta{name: symbol, currency: quote.Currency}
			continue
		}
		if existing.currency == "" && quote.Currency != "" {
			existing.currency = quote.Currency
			s.meta[symbol] = existing
		}
	}
}
