package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

const (
	// RequestIDKey is the gin context key holding the request ID
	RequestIDKey = "request_id"
	// RequestIDHeader carries the request ID on requests and responses
	RequestIDHeader = "X-Request-ID"
)

// SetupValidator makes gin's validator report JSON (or form) field names and
// registers decimal_gte0 and money. Safe to call more than once.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("decimal_gte0", nonNegativeDecimal)
	_ = v.RegisterValidation("money", moneyAmount)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return ""
}

// nonNegativeDecimal backs the decimal_gte0 tag. The built-in numeric tags
// do not understand decimal.Decimal.
func nonNegativeDecimal(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return !v.IsNegative()
	case *decimal.Decimal:
		return v == nil || !v.IsNegative()
	}
	return false
}

// moneyAmount backs the money tag: what valueobject.NewPrice accepts
func moneyAmount(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return valueobject.CheckAmount(v) == nil
	case *decimal.Decimal:
		return v == nil || valueobject.CheckAmount(*v) == nil
	}
	return false
}

// FormatValidationErrors builds the VALIDATION_ERROR envelope. Field details
// are only present when err comes from the validator; decode errors carry
// none.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	var details []dto.ValidationDetail
	if errors.As(err, &fieldErrs) {
		details = make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError answers a failed ShouldBind*. Bodies cut off by
// BodyLimit get 413, everything else 400.
func HandleValidationError(c *gin.Context, err error) {
	if BodyTooLarge(err) {
		AbortBodyTooLarge(c)
		return
	}
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, getRequestIDFromContext(c)))
}

func getRequestIDFromContext(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

var fixedMessages = map[string]string{
	"required":     "This field is required",
	"email":        "Invalid email format",
	"uuid":         "Invalid UUID format",
	"url":          "Invalid URL format",
	"numeric":      "Must be numeric",
	"alphanum":     "Must be alphanumeric",
	"alpha":        "Must contain only letters",
	"decimal_gte0": "Must be a non-negative amount",
	"money":        "Must be a non-negative amount below 100000000 with at most 2 decimal places",
}

var paramPrefixes = map[string]string{
	"oneof": "Must be one of: ",
	"gte":   "Must be greater than or equal to ",
	"lte":   "Must be less than or equal to ",
	"gt":    "Must be greater than ",
	"lt":    "Must be less than ",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	if prefix, ok := paramPrefixes[fe.Tag()]; ok {
		return prefix + fe.Param()
	}

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "min":
		return "Must be at least " + fe.Param() + unit
	case "max":
		return "Must be at most " + fe.Param() + unit
	case "len":
		return "Must be exactly " + fe.Param() + unit
	}
	return "Invalid value"
}
