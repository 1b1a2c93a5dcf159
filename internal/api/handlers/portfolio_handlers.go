package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/domain/entities"
	"github.com/folio-service/folio_service/internal/domain/services/portfolio"
	"github.com/folio-service/folio_service/internal/domain/services/valuation"
)

// PortfolioHandler exposes lot management and the valuation read model
type PortfolioHandler struct {
	portfolioService *portfolio.Service
	valuationService *valuation.Service
	logger           *zap.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService *portfolio.Service, valuationService *valuation.Service, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		valuationService: valuationService,
		logger:           logger,
	}
}

// AddLot handles POST /portfolio/lots
func (h *PortfolioHandler) AddLot(c *gin.Context) {
	var req entities.AddLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body", map[string]interface{}{"error": err.Error()})
		return
	}

	lot, err := h.portfolioService.AddEquityLot(c.Request.Context(), getUserID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lot)
}

// AddCryptoLot handles POST /portfolio/crypto-lots
func (h *PortfolioHandler) AddCryptoLot(c *gin.Context) {
	var req entities.AddLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body", map[string]interface{}{"error": err.Error()})
		return
	}

	lot, err := h.portfolioService.AddCryptoLot(c.Request.Context(), getUserID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lot)
}

// RemoveAsset handles DELETE /portfolio/assets/:ticker. Every lot for
// the ticker is removed; a ticker the user does not hold is a no-op.
func (h *PortfolioHandler) RemoveAsset(c *gin.Context) {
	ticker := c.Param("ticker")

	if err := h.portfolioService.RemoveAsset(c.Request.Context(), getUserID(c), ticker); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "deleted": true})
}

// GetHeldAssets handles GET /portfolio/assets
func (h *PortfolioHandler) GetHeldAssets(c *gin.Context) {
	held, err := h.portfolioService.HeldAssets(c.Request.Context(), getUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, held)
}

// GetSummary handles GET /portfolio/summary: the full dashboard read
// model in the base currency. An empty portfolio yields zero totals and
// empty breakdowns, not an error.
func (h *PortfolioHandler) GetSummary(c *gin.Context) {
	summary, err := h.valuationService.Summary(c.Request.Context(), getUserID(c))
	if err != nil {
		h.logger.Error("Valuation pass failed",
			zap.Error(err), zap.String("request_id", getRequestID(c)))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
