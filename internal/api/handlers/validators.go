package handlers

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/folio-service/folio_service/internal/domain/entities"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("currency", validCurrency)
	}
}

// validCurrency accepts the purchase currencies the forms offer,
// case-insensitively; the service normalizes to upper case afterwards.
func validCurrency(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return entities.IsSupportedCurrency(code)
}
