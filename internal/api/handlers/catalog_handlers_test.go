package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/folio-service/folio_service/internal/domain/entities"
)

func setupCatalogRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCatalogHandler(zaptest.NewLogger(t))

	router := gin.New()
	router.GET("/catalog/tickers", handler.GetTickers)
	router.GET("/catalog/cryptos", handler.GetCryptos)
	return router
}

func TestGetTickers_ReturnsFullCatalog(t *testing.T) {
	router := setupCatalogRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/tickers", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tickers    []entities.CatalogEntry `json:"tickers"`
		Currencies []string                `json:"currencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Tickers, len(entities.EquityCatalog))
	assert.Equal(t, entities.SupportedCurrencies, resp.Currencies)
	assert.True(t, sort.SliceIsSorted(resp.Tickers, func(i, j int) bool {
		return resp.Tickers[i].Name < resp.Tickers[j].Name
	}))
}

func TestGetCryptos_USDOnly(t *testing.T) {
	router := setupCatalogRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/cryptos", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cryptos    []entities.CatalogEntry `json:"cryptos"`
		Currencies []string                `json:"currencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Cryptos, len(entities.CryptoCatalog))
	assert.Equal(t, []string{"USD"}, resp.Currencies)
	for _, entry := range resp.Cryptos {
		assert.Equal(t, "USD", entry.Currency)
	}
}
