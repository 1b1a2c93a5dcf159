package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Market      MarketConfig    `mapstructure:"market"`
	Valuation   ValuationConfig `mapstructure:"valuation"`
}

type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	Host            string   `mapstructure:"host"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	RateLimitPerMin int      `mapstructure:"rate_limit_per_min"`
}

type DatabaseConfig struct {
	URL             string `mapstructure:"url"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MarketConfig configures the quote provider client and its caches
type MarketConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Timeout        int    `mapstructure:"timeout"`
	RateTTL        int    `mapstructure:"rate_ttl"`         // seconds
	FXLookbackDays int    `mapstructure:"fx_lookback_days"` // trailing window for fx closes
	UserAgent      string `mapstructure:"user_agent"`
}

// RateTTLDuration returns the exchange-rate cache TTL
func (m MarketConfig) RateTTLDuration() time.Duration {
	return time.Duration(m.RateTTL) * time.Second
}

// TimeoutDuration returns the provider request timeout
func (m MarketConfig) TimeoutDuration() time.Duration {
	return time.Duration(m.Timeout) * time.Second
}

// ValuationConfig configures the valuation engine
type ValuationConfig struct {
	BaseCurrency        string   `mapstructure:"base_currency"`
	SupportedCurrencies []string `mapstructure:"supported_currencies"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	overrideFromEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.Database.URL == "" {
		config.Database.URL = fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			config.Database.User,
			config.Database.Password,
			config.Database.Host,
			config.Database.Port,
			config.Database.Name,
			config.Database.SSLMode,
		)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.rate_limit_per_min", 100)
	viper.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "folio_service")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.conn_max_lifetime", 300)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	// Market data defaults
	viper.SetDefault("market.base_url", "https://query1.finance.yahoo.com")
	viper.SetDefault("market.timeout", 15)
	viper.SetDefault("market.rate_ttl", 3600) // 1 hour
	viper.SetDefault("market.fx_lookback_days", 7)
	viper.SetDefault("market.user_agent", "Folio-Service/1.0")

	// Valuation defaults
	viper.SetDefault("valuation.base_currency", "USD")
	viper.SetDefault("valuation.supported_currencies", []string{"EUR", "USD", "GBP"})
}

func overrideFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			viper.Set("server.port", p)
		}
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		viper.Set("database.url", dbURL)
	}

	if redisURL := os.Getenv("REDIS_HOST"); redisURL != "" {
		viper.Set("redis.host", redisURL)
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		viper.Set("redis.password", redisPassword)
	}

	if marketURL := os.Getenv("MARKET_BASE_URL"); marketURL != "" {
		viper.Set("market.base_url", marketURL)
	}
	if baseCurrency := os.Getenv("BASE_CURRENCY"); baseCurrency != "" {
		viper.Set("valuation.base_currency", strings.ToUpper(baseCurrency))
	}
}

func validate(config *Config) error {
	if config.Database.URL == "" && (config.Database.Host == "" || config.Database.Name == "") {
		return fmt.Errorf("database configuration is incomplete")
	}

	if config.Market.BaseURL == "" {
		return fmt.Errorf("market data provider base URL is required")
	}

	if config.Valuation.BaseCurrency == "" {
		return fmt.Errorf("base currency is required")
	}

	base := strings.ToUpper(config.Valuation.BaseCurrency)
	supported := false
	for _, c := range config.Valuation.SupportedCurrencies {
		if strings.ToUpper(c) == base {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("base currency %s is not in the supported currency list", base)
	}

	return nil
}
