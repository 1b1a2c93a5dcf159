package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/domain/entities"
)

// LotRepository implements the position store on PostgreSQL
type LotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLotRepository creates a new lot repository
func NewLotRepository(db *sqlx.DB, logger *zap.Logger) *LotRepository {
	return &LotRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends one purchase lot row
func (r *LotRepository) Insert(ctx context.Context, lot *entities.PurchaseLot) error {
	query := `
		INSERT INTO portfolio_lots (
			id, user_id, ticker, quantity, purchase_price,
			purchase_currency, display_name, created_at
		) VALUES (
			:id, :user_id, :ticker, :quantity, :purchase_price,
			:purchase_currency, :display_name, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, lot)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("lot already exists: %w", err)
		}
		r.logger.Error("Failed to insert lot", zap.Error(err),
			zap.String("user_id", lot.UserID), zap.String("ticker", lot.Ticker))
		return fmt.Errorf("failed to insert lot: %w", err)
	}

	r.logger.Debug("Lot inserted",
		zap.String("lot_id", lot.ID.String()),
		zap.String("ticker", lot.Ticker))
	return nil
}

// DeleteByTicker removes every lot for the (user, ticker) pair.
// A ticker the user does not hold deletes zero rows and is not an error.
func (r *LotRepository) DeleteByTicker(ctx context.Context, userID, ticker string) error {
	query := `DELETE FROM portfolio_lots WHERE user_id = $1 AND ticker = $2`

	result, err := r.db.ExecContext(ctx, query, userID, ticker)
	if err != nil {
		r.logger.Error("Failed to delete lots", zap.Error(err),
			zap.String("user_id", userID), zap.String("ticker", ticker))
		return fmt.Errorf("failed to delete lots: %w", err)
	}

	if deleted, err := result.RowsAffected(); err == nil {
		r.logger.Debug("Lots deleted",
			zap.String("user_id", userID),
			zap.String("ticker", ticker),
			zap.Int64("rows", deleted))
	}

	return nil
}

// ListByUser returns all of a user's lots, oldest first
func (r *LotRepository) ListByUser(ctx context.Context, userID string) ([]entities.PurchaseLot, error) {
	if userID == "" {
		return []entities.PurchaseLot{}, nil
	}

	query := `
		SELECT id, user_id, ticker, quantity, purchase_price,
		       purchase_currency, display_name, created_at
		FROM portfolio_lots
		WHERE user_id = $1
		ORDER BY created_at ASC`

	lots := []entities.PurchaseLot{}
	if err := r.db.SelectContext(ctx, &lots, query, userID); err != nil {
		r.logger.Error("Failed to list lots", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}

	return lots, nil
}
