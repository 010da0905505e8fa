package handler

import (
	"net/http"
	"reflect"

	"liquorpos/internal/apierror"
	"liquorpos/internal/apperr"
	"liquorpos/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a ledger error kind to an HTTP status. Internal errors
// are logged with the request id and surfaced as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case apperr.KindInsufficientStock:
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case apperr.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case apperr.KindInvalidInput:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case apperr.KindNotImplemented:
		c.JSON(http.StatusNotImplemented, apierror.New(err.Error()))
	default:
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("ledger operation failed")
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
