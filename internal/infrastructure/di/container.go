package di

import (
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/adapters/yahoo"
	"github.com/folio-service/folio_service/internal/domain/services/marketdata"
	"github.com/folio-service/folio_service/internal/domain/services/portfolio"
	"github.com/folio-service/folio_service/internal/domain/services/valuation"
	"github.com/folio-service/folio_service/internal/infrastructure/cache"
	"github.com/folio-service/folio_service/internal/infrastructure/config"
	"github.com/folio-service/folio_service/internal/infrastructure/repositories"
	"github.com/folio-service/folio_service/pkg/health"
	"github.com/folio-service/folio_service/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Logger *logger.Logger
	ZapLog *zap.Logger

	// Infrastructure
	Cache        *cache.Cache
	RateCache    *cache.RateCache
	MarketClient *yahoo.Client

	// Repositories
	LotRepo *repositories.LotRepository

	// Domain services
	MarketData       *marketdata.Service
	PortfolioService *portfolio.Service
	ValuationService *valuation.Service

	HealthChecker *health.HealthChecker
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, db *sqlx.DB, log *logger.Logger) (*Container, error) {
	zapLog := log.Zap()

	redisCache, err := cache.NewCache(cfg.Redis, zapLog)
	if err != nil {
		return nil, err
	}
	rateCache := cache.NewRateCache(redisCache, zapLog)

	marketClient := yahoo.NewClient(yahoo.Config{
		BaseURL:   cfg.Market.BaseURL,
		Timeout:   cfg.Market.TimeoutDuration(),
		UserAgent: cfg.Market.UserAgent,
	}, zapLog)

	lotRepo := repositories.NewLotRepository(db, zapLog)

	marketData := marketdata.NewService(marketClient, rateCache, marketdata.Config{
		RateTTL:             cfg.Market.RateTTLDuration(),
		FXLookbackDays:      cfg.Market.FXLookbackDays,
		SupportedCurrencies: cfg.Valuation.SupportedCurrencies,
	}, zapLog, nil)

	portfolioService := portfolio.NewService(lotRepo, zapLog, nil)
	valuationService := valuation.NewService(lotRepo, marketData, cfg.Valuation.BaseCurrency, zapLog, nil)

	checker := health.NewHealthChecker(5 * time.Second)
	checker.Register(health.NewDatabaseChecker(db.DB, 2*time.Second))
	checker.Register(health.NewRedisChecker(redisCache.Client(), 2*time.Second))
	checker.Register(health.NewExternalAPIChecker("market_data", marketClient.HealthURL(), 5*time.Second))

	return &Container{
		Config:           cfg,
		DB:               db,
		Logger:           log,
		ZapLog:           zapLog,
		Cache:            redisCache,
		RateCache:        rateCache,
		MarketClient:     marketClient,
		LotRepo:          lotRepo,
		MarketData:       marketData,
		PortfolioService: portfolioService,
		ValuationService: valuationService,
		HealthChecker:    checker,
	}, nil
}

// Close releases held connections
func (c *Container) Close() error {
	if c.Cache != nil {
		return c.Cache.Close()
	}
	return nil
}
