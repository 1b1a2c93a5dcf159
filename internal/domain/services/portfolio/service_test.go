package portfolio

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/folio-service/folio_service/internal/domain/entities"
	apperrors "github.com/folio-service/folio_service/pkg/errors"
)

// MockLotRepository is a mock implementation of LotRepository
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) Insert(ctx context.Context, lot *entities.PurchaseLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) DeleteByTicker(ctx context.Context, userID, ticker string) error {
	args := m.Called(ctx, userID, ticker)
	return args.Error(0)
}

func (m *MockLotRepository) ListByUser(ctx context.Context, userID string) ([]entities.PurchaseLot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PurchaseLot), args.Error(1)
}

var testClock = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

func validRequest() entities.AddLotRequest {
	return entities.AddLotRequest{
		Ticker:           "AAPL",
		Quantity:         decimal.NewFromInt(10),
		PurchasePrice:    decimal.NewFromFloat(150.25),
		PurchaseCurrency: "USD",
	}
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperrors.FolioError)
	require.True(t, ok, "expected *FolioError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestAddEquityLot_Success(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	ctx := context.Background()
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*entities.PurchaseLot")).Return(nil)

	lot, err := service.AddEquityLot(ctx, "user-1", validRequest())

	require.NoError(t, err)
	assert.Equal(t, "user-1", lot.UserID)
	assert.Equal(t, "AAPL", lot.Ticker)
	assert.Equal(t, "USD", lot.PurchaseCurrency)
	assert.NotEqual(t, "", lot.ID.String())
	assert.Equal(t, testClock().UTC(), lot.CreatedAt)
	mockRepo.AssertExpectations(t)
}

func TestAddEquityLot_NormalizesInput(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	ctx := context.Background()
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*entities.PurchaseLot")).Return(nil)

	req := validRequest()
	req.Ticker = "  aapl "
	req.PurchaseCurrency = "usd"
	req.DisplayName = "  My Apple  "

	lot, err := service.AddEquityLot(ctx, "user-1", req)

	require.NoError(t, err)
	assert.Equal(t, "AAPL", lot.Ticker)
	assert.Equal(t, "USD", lot.PurchaseCurrency)
	assert.Equal(t, "My Apple", lot.DisplayName)
}

func TestAddEquityLot_RejectsCryptoTicker(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	req := validRequest()
	req.Ticker = "BTC-USD"

	_, err := service.AddEquityLot(context.Background(), "user-1", req)

	assertCode(t, err, apperrors.ErrCodeInvalidInput)
	mockRepo.AssertNotCalled(t, "Insert")
}

func TestAddEquityLot_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		mutate   func(*entities.AddLotRequest)
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "missing user id",
			userID:   "  ",
			mutate:   func(r *entities.AddLotRequest) {},
			wantCode: apperrors.ErrCodeMissingField,
		},
		{
			name:     "missing ticker",
			userID:   "user-1",
			mutate:   func(r *entities.AddLotRequest) { r.Ticker = "   " },
			wantCode: apperrors.ErrCodeMissingField,
		},
		{
			name:     "zero quantity",
			userID:   "user-1",
			mutate:   func(r *entities.AddLotRequest) { r.Quantity = decimal.Zero },
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "negative quantity",
			userID:   "user-1",
			mutate:   func(r *entities.AddLotRequest) { r.Quantity = decimal.NewFromInt(-3) },
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "zero price",
			userID:   "user-1",
			mutate:   func(r *entities.AddLotRequest) { r.PurchasePrice = decimal.Zero },
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "unsupported currency",
			userID:   "user-1",
			mutate:   func(r *entities.AddLotRequest) { r.PurchaseCurrency = "JPY" },
			wantCode: apperrors.ErrCodeUnsupportedCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockLotRepository)
			service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

			req := validRequest()
			tt.mutate(&req)

			_, err := service.AddEquityLot(context.Background(), tt.userID, req)

			assertCode(t, err, tt.wantCode)
			mockRepo.AssertNotCalled(t, "Insert")
		})
	}
}

func TestAddEquityLot_StoreFailure(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	ctx := context.Background()
	mockRepo.On("Insert", ctx, mock.Anything).Return(fmt.Errorf("connection refused"))

	_, err := service.AddEquityLot(ctx, "user-1", validRequest())

	assertCode(t, err, apperrors.ErrCodeStoreUnavailable)
}

func TestAddCryptoLot_Success(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	ctx := context.Background()
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*entities.PurchaseLot")).Return(nil)

	req := entities.AddLotRequest{
		Ticker:           "btc-usd",
		Quantity:         decimal.NewFromFloat(0.5),
		PurchasePrice:    decimal.NewFromInt(40000),
		PurchaseCurrency: "USD",
	}

	lot, err := service.AddCryptoLot(ctx, "user-1", req)

	require.NoError(t, err)
	assert.Equal(t, "BTC-USD", lot.Ticker)
	mockRepo.AssertExpectations(t)
}

func TestAddCryptoLot_RejectsUnknownSymbol(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	req := validRequest()
	req.Ticker = "DOGE-EUR"

	_, err := service.AddCryptoLot(context.Background(), "user-1", req)

	assertCode(t, err, apperrors.ErrCodeUnknownTicker)
	mockRepo.AssertNotCalled(t, "Insert")
}

func TestAddCryptoLot_RejectsNonUSDCurrency(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	req := validRequest()
	req.Ticker = "ETH-USD"
	req.PurchaseCurrency = "EUR"

	_, err := service.AddCryptoLot(context.Background(), "user-1", req)

	assertCode(t, err, apperrors.ErrCodeUnsupportedCurrency)
	mockRepo.AssertNotCalled(t, "Insert")
}

func TestRemoveAsset_Success(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	ctx := context.Background()
	mockRepo.On("DeleteByTicker", ctx, "user-1", "AAPL").Return(nil)

	err := service.RemoveAsset(ctx, "user-1", " aapl ")

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestRemoveAsset_MissingTicker(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	err := service.RemoveAsset(context.Background(), "user-1", "   ")

	assertCode(t, err, apperrors.ErrCodeMissingField)
	mockRepo.AssertNotCalled(t, "DeleteByTicker")
}

func TestHeldAssets_PartitionsAndDeduplicates(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	ctx := context.Background()
	mockRepo.On("ListByUser", ctx, "user-1").Return([]entities.PurchaseLot{
		{Ticker: "AAPL"},
		{Ticker: "BTC-USD"},
		{Ticker: "AAPL"},
		{Ticker: "MSFT"},
		{Ticker: "ETH-USD"},
	}, nil)

	held, err := service.HeldAssets(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, held.Equities)
	assert.Equal(t, []string{"BTC-USD", "ETH-USD"}, held.Cryptos)
}

func TestHeldAssets_EmptyUserID(t *testing.T) {
	mockRepo := new(MockLotRepository)
	service := NewService(mockRepo, zaptest.NewLogger(t), testClock)

	held, err := service.HeldAssets(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, held.Equities)
	assert.Empty(t, held.Cryptos)
	mockRepo.AssertNotCalled(t, "ListByUser")
}
