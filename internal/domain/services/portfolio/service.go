package portfolio

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/domain/entities"
	"github.com/folio-service/folio_service/internal/domain/repositories"
	"github.com/folio-service/folio_service/pkg/errors"
)

// Service handles the write side of the portfolio: validated lot
// creation and bulk removal per asset.
type Service struct {
	lots   repositories.LotRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates the portfolio service. Pass nil for clock to use time.Now.
func NewService(lots repositories.LotRepository, logger *zap.Logger, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		lots:   lots,
		logger: logger,
		now:    clock,
	}
}

// AddEquityLot records one stock/index/commodity purchase. The ticker
// accepts both catalog picks and free text; both paths normalize into
// the same lot shape before anything is persisted.
func (s *Service) AddEquityLot(ctx context.Context, userID string, req entities.AddLotRequest) (*entities.PurchaseLot, error) {
	lot, err := s.buildLot(userID, req)
	if err != nil {
		return nil, err
	}

	if entities.IsCryptoTicker(lot.Ticker) {
		return nil, errors.InvalidInput("crypto assets must be added through the crypto form").
			AddDetail("ticker", lot.Ticker)
	}

	if err := s.lots.Insert(ctx, lot); err != nil {
		return nil, errors.StoreUnavailable(err)
	}

	s.logger.Info("Equity lot added",
		zap.String("user_id", lot.UserID),
		zap.String("ticker", lot.Ticker),
		zap.String("quantity", lot.Quantity.String()))
	return lot, nil
}

// AddCryptoLot records one crypto purchase. The crypto form is
// restricted to the fixed symbol list and USD purchase currency.
func (s *Service) AddCryptoLot(ctx context.Context, userID string, req entities.AddLotRequest) (*entities.PurchaseLot, error) {
	lot, err := s.buildLot(userID, req)
	if err != nil {
		return nil, err
	}

	if !entities.IsCryptoTicker(lot.Ticker) {
		return nil, errors.New(errors.ErrCodeUnknownTicker, "not a supported crypto symbol").
			AddDetail("ticker", lot.Ticker)
	}
	if lot.PurchaseCurrency != "USD" {
		return nil, errors.New(errors.ErrCodeUnsupportedCurrency, "crypto purchases are recorded in USD only").
			AddDetail("purchase_currency", lot.PurchaseCurrency)
	}

	if err := s.lots.Insert(ctx, lot); err != nil {
		return nil, errors.StoreUnavailable(err)
	}

	s.logger.Info("Crypto lot added",
		zap.String("user_id", lot.UserID),
		zap.String("ticker", lot.Ticker),
		zap.String("quantity", lot.Quantity.String()))
	return lot, nil
}

// RemoveAsset deletes every lot the user holds for the ticker.
// Removing an asset the user does not hold is a no-op.
func (s *Service) RemoveAsset(ctx context.Context, userID, ticker string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New(errors.ErrCodeMissingField, "user id is required")
	}
	ticker = normalizeTicker(ticker)
	if ticker == "" {
		return errors.New(errors.ErrCodeMissingField, "ticker is required")
	}

	if err := s.lots.DeleteByTicker(ctx, userID, ticker); err != nil {
		return errors.StoreUnavailable(err)
	}

	s.logger.Info("Asset removed",
		zap.String("user_id", userID), zap.String("ticker", ticker))
	return nil
}

// HeldAssets lists the distinct tickers in the user's portfolio,
// partitioned into equities and cryptos. An empty user id yields empty
// collections, matching the dashboard's signed-out state.
func (s *Service) HeldAssets(ctx context.Context, userID string) (*entities.HeldAssets, error) {
	held := &entities.HeldAssets{
		Equities: []string{},
		Cryptos:  []string{},
	}

	if strings.TrimSpace(userID) == "" {
		return held, nil
	}

	lots, err := s.lots.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.StoreUnavailable(err)
	}

	seen := make(map[string]bool)
	for _, lot := range lots {
		if seen[lot.Ticker] {
			continue
		}
		seen[lot.Ticker] = true

		if entities.IsCryptoTicker(lot.Ticker) {
			held.Cryptos = append(held.Cryptos, lot.Ticker)
		} else {
			held.Equities = append(held.Equities, lot.Ticker)
		}
	}

	return held, nil
}

func (s *Service) buildLot(userID string, req entities.AddLotRequest) (*entities.PurchaseLot, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New(errors.ErrCodeMissingField, "user id is required")
	}

	ticker := normalizeTicker(req.Ticker)
	if ticker == "" {
		return nil, errors.New(errors.ErrCodeMissingField, "ticker is required")
	}

	if !req.Quantity.IsPositive() {
		return nil, errors.ValidationError("quantity must be positive").
			AddDetail("quantity", req.Quantity.String())
	}
	if !req.PurchasePrice.IsPositive() {
		return nil, errors.ValidationError("purchase price must be positive").
			AddDetail("purchase_price", req.PurchasePrice.String())
	}

	currency := strings.ToUpper(strings.TrimSpace(req.PurchaseCurrency))
	if !entities.IsSupportedCurrency(currency) {
		return nil, errors.New(errors.ErrCodeUnsupportedCurrency, "unsupported purchase currency").
			AddDetail("purchase_currency", req.PurchaseCurrency)
	}

	return &entities.PurchaseLot{
		ID:               uuid.New(),
		UserID:           userID,
		Ticker:           ticker,
		Quantity:         req.Quantity,
		PurchasePrice:    req.PurchasePrice,
		PurchaseCurrency: currency,
		DisplayName:      strings.TrimSpace(req.DisplayName),
		CreatedAt:        s.now().UTC(),
	}, nil
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
