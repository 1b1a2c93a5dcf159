package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/folio-service/folio_service/internal/domain/entities"
	folioerrors "github.com/folio-service/folio_service/pkg/errors"
)

// userIDHeader carries the opaque user identity; the dashboard has no
// account system, a user is whatever id the sidebar form supplies.
const userIDHeader = "X-User-ID"

// getUserID extracts the user ID header, trimmed
func getUserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(userIDHeader))
}

// getRequestID extracts request ID from context
func getRequestID(c *gin.Context) string {
	if reqID, exists := c.Get("request_id"); exists {
		if id, ok := reqID.(string); ok {
			return id
		}
	}
	return ""
}

// respondError sends a standardized error response
func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, entities.ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// respondServiceError maps a service error onto the standard payload
func respondServiceError(c *gin.Context, err error) {
	var folioErr *folioerrors.FolioError
	if errors.As(err, &folioErr) {
		respondError(c, folioErr.StatusCode, string(folioErr.Code), folioErr.Message, folioErr.Details)
		return
	}
	respondInternalError(c, "unexpected error")
}

// respondBadRequest sends a bad request error
func respondBadRequest(c *gin.Context, message string, details map[string]interface{}) {
	respondError(c, http.StatusBadRequest, string(folioerrors.ErrCodeInvalidInput), message, details)
}

// respondInternalError sends an internal server error
func respondInternalError(c *gin.Context, message string) {
	respondError(c, http.StatusInternalServerError, string(folioerrors.ErrCodeInternal), message, nil)
}
