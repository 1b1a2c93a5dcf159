package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio-service/folio_service/pkg/health"
	"github.com/folio-service/folio_service/pkg/logger"
	"github.com/folio-service/folio_service/pkg/version"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	checker *health.HealthChecker
	logger  *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker *health.HealthChecker, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		logger:  logger,
	}
}

// Health runs all registered checks and reports aggregate status
func (h *HealthHandler) Health(c *gin.Context) {
	status, checks := h.checker.Check(c.Request.Context())

	response := health.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Checks:    checks,
	}

	code := http.StatusOK
	if status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	if status != health.StatusHealthy {
		h.logger.CtxWarn(c.Request.Context(), "Health check reported issues", "status", status)
	}

	c.JSON(code, response)
}

// Ready reports whether the service can take traffic. Only the position
// store is load-bearing; market data degrades gracefully.
func (h *HealthHandler) Ready(c *gin.Context) {
	_, checks := h.checker.Check(c.Request.Context())

	if db, ok := checks["database"]; ok && db.Status == health.StatusUnhealthy {
		h.logger.CtxError(c.Request.Context(), "Readiness rejected", "reason", "database unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Live is the liveness probe
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Version reports build information
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
