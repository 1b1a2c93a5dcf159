package yahoo

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/domain/entities"
)

const (
	// DefaultBaseURL is the public quote API endpoint
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	quoteEndpoint = "/v7/finance/quote"
	chartEndpoint = "/v8/finance/chart"

	defaultTimeout = 15 * time.Second
	maxRetries     = 3
	baseBackoff    = 1 * time.Second
	maxBackoff     = 8 * time.Second
)

// Config represents quote provider client configuration
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client is the market-data provider HTTP client
type Client struct {
	config         Config
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker
	logger         *zap.Logger
}

// NewClient creates a new provider client
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.UserAgent == "" {
		config.UserAgent = "Folio-Service/1.0"
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	st := gobreaker.Settings{
		Name:        "QuoteProvider",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Client{
		config:         config,
		httpClient:     httpClient,
		circuitBreaker: gobreaker.NewCircuitBreaker(st),
		logger:         logger,
	}
}

// GetQuotes performs one batched lookup of the most recent traded price
// per symbol. Symbols the provider has no data for are absent from the
// returned map.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (map[string]entities.Quote, error) {
	if len(symbols) == 0 {
		return map[string]entities.Quote{}, nil
	}

	endpoint := fmt.Sprintf("%s?symbols=%s", quoteEndpoint, url.QueryEscape(strings.Join(symbols, ",")))

	var envelope quoteEnvelope
	if err := c.doRequestWithRetry(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}
	if envelope.QuoteResponse.Error != nil {
		return nil, ProviderError{
			Code:    envelope.QuoteResponse.Error.Code,
			Message: envelope.QuoteResponse.Error.Description,
		}
	}

	quotes := make(map[string]entities.Quote, len(envelope.QuoteResponse.Result))
	for _, result := range envelope.QuoteResponse.Result {
		if result.RegularMarketPrice == nil {
			continue
		}
		quotes[result.Symbol] = entities.Quote{
			Symbol:   result.Symbol,
			Price:    decimal.NewFromFloat(*result.RegularMarketPrice),
			Currency: result.Currency,
			AsOf:     time.Unix(result.RegularMarketTime, 0).UTC(),
		}
	}

	return quotes, nil
}

// GetDailyCloses fetches historical daily closes for one symbol over
// [from, to], oldest first. Days without a close are skipped.
func (c *Client) GetDailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]entities.Close, error) {
	endpoint := fmt.Sprintf("%s/%s?period1=%d&period2=%d&interval=1d",
		chartEndpoint, url.PathEscape(symbol), from.Unix(), to.Unix())

	var envelope chartEnvelope
	if err := c.doRequestWithRetry(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}
	if envelope.Chart.Error != nil {
		return nil, ProviderError{
			Code:    envelope.Chart.Error.Code,
			Message: envelope.Chart.Error.Description,
		}
	}
	if len(envelope.Chart.Result) == 0 || len(envelope.Chart.Result[0].Indicators.Quote) == 0 {
		return []entities.Close{}, nil
	}

	result := envelope.Chart.Result[0]
	closeSeries := result.Indicators.Quote[0].Close

	closes := make([]entities.Close, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closeSeries) || closeSeries[i] == nil {
			continue
		}
		closes = append(closes, entities.Close{
			Symbol: symbol,
			Price:  decimal.NewFromFloat(*closeSeries[i]),
			Date:   time.Unix(ts, 0).UTC(),
		})
	}

	return closes, nil
}

func (c *Client) doRequestWithRetry(ctx context.Context, endpoint string, responseBody interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * baseBackoff
			if backoff > maxBackoff {
				backoff = maxBackoff
			}

			c.logger.Info("Retrying quote provider request",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.String("endpoint", endpoint))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, c.doRequest(ctx, endpoint, responseBody)
		})
		if err == nil {
			return nil
		}

		lastErr = err

		if !c.shouldRetry(err) {
			c.logger.Warn("Not retrying quote provider request due to error type",
				zap.Error(err), zap.String("endpoint", endpoint))
			break
		}

		c.logger.Warn("Quote provider request failed, will retry",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("maxRetries", maxRetries),
			zap.String("endpoint", endpoint))
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, lastErr)
}

func (c *Client) doRequest(ctx context.Context, endpoint string, responseBody interface{}) error {
	fullURL := c.config.BaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	c.logger.Debug("Making quote provider request", zap.String("url", fullURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("Received quote provider response",
		zap.String("url", fullURL),
		zap.Int("statusCode", resp.StatusCode),
		zap.Int("bodyBytes", len(body)))

	if resp.StatusCode >= 400 {
		return ProviderError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if responseBody != nil && len(body) > 0 {
		if err := json.Unmarshal(body, responseBody); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

func (c *Client) shouldRetry(err error) bool {
	if err == context.Canceled || err == context.DeadlineExceeded {
		return false
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return false
	}

	if provErr, ok := err.(ProviderError); ok {
		if provErr.StatusCode >= 400 && provErr.StatusCode < 500 {
			return provErr.StatusCode == 429 || provErr.StatusCode == 408
		}
		return provErr.StatusCode >= 500
	}

	// Retry on network errors
	return true
}

// HealthURL returns the endpoint used for reachability probes
func (c *Client) HealthURL() string {
	return c.config.BaseURL + quoteEndpoint + "?symbols=AAPL"
}
