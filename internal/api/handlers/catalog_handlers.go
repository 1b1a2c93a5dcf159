package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/domain/entities"
)

// CatalogHandler serves the static symbol catalogs that back the add
// forms' dropdowns.
type CatalogHandler struct {
	logger *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{logger: logger}
}

// GetTickers handles GET /catalog/tickers
func (h *CatalogHandler) GetTickers(c *gin.Context) {
	entries := make([]entities.CatalogEntry, 0, len(entities.EquityCatalog))
	for _, entry := range entities.EquityCatalog {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	c.JSON(http.StatusOK, gin.H{
		"tickers":    entries,
		"currencies": entities.SupportedCurrencies,
	})
}

// GetCryptos handles GET /catalog/cryptos
func (h *CatalogHandler) GetCryptos(c *gin.Context) {
	entries := make([]entities.CatalogEntry, 0, len(entities.CryptoCatalog))
	for _, entry := range entities.CryptoCatalog {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	// Crypto purchases are recorded in USD only
	c.JSON(http.StatusOK, gin.H{
		"cryptos":    entries,
		"currencies": []string{"USD"},
	})
}
