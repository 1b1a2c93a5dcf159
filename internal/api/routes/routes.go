package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/folio-service/folio_service/internal/api/handlers"
	"github.com/folio-service/folio_service/internal/api/middleware"
	"github.com/folio-service/folio_service/internal/infrastructure/di"
)

// SetupRoutes configures all application routes
func SetupRoutes(container *di.Container) *gin.Engine {
	router := gin.New()

	// Global middleware - order matters
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(container.Logger))
	router.Use(middleware.Recovery(container.Logger))
	router.Use(middleware.CORS(container.Config.Server.AllowedOrigins))
	router.Use(middleware.RateLimit(container.Config.Server.RateLimitPerMin))
	router.Use(middleware.SecurityHeaders())

	healthHandler := handlers.NewHealthHandler(container.HealthChecker, container.Logger)
	portfolioHandler := handlers.NewPortfolioHandler(container.PortfolioService, container.ValuationService, container.ZapLog)
	catalogHandler := handlers.NewCatalogHandler(container.ZapLog)

	// Health checks
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/version", healthHandler.Version)

	v1 := router.Group("/api/v1")
	{
		portfolioRoutes := v1.Group("/portfolio")
		{
			portfolioRoutes.POST("/lots", portfolioHandler.AddLot)
			portfolioRoutes.POST("/crypto-lots", portfolioHandler.AddCryptoLot)
			portfolioRoutes.DELETE("/assets/:ticker", portfolioHandler.RemoveAsset)
			portfolioRoutes.GET("/assets", portfolioHandler.GetHeldAssets)
			portfolioRoutes.GET("/summary", portfolioHandler.GetSummary)
		}

		catalogRoutes := v1.Group("/catalog")
		{
			catalogRoutes.GET("/tickers", catalogHandler.GetTickers)
			catalogRoutes.GET("/cryptos", catalogHandler.GetCryptos)
		}
	}

	return router
}
