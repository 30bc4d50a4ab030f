package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself. Domain errors keep the code
// they were raised with.
const (
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTooBig      = "REQUEST_TOO_LARGE"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTransaction        = "TRANSACTION_FAILED"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeInvalidFile        = "INVALID_FILE"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeInvalidState       = "INVALID_STATE"
	ErrCodeInvalidTransition  = "INVALID_STATUS_TRANSITION"
	ErrCodeTokenNotFound      = "TOKEN_NOT_FOUND"
	ErrCodeTokenRevoked       = "TOKEN_ALREADY_REVOKED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodePasswordHash       = "PASSWORD_HASH_ERROR"
	ErrCodeAlreadySubscribed  = "ALREADY_SUBSCRIBED"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
)

// ErrorCodeHTTPStatus holds the codes whose status does not follow from the
// naming rules in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeTransaction:        http.StatusInternalServerError,
	ErrCodePasswordHash:       http.StatusInternalServerError,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenNotFound:      http.StatusNotFound,
	ErrCodeTokenRevoked:       http.StatusConflict,
	ErrCodeAlreadySubscribed:  http.StatusConflict,
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeInvalidTransition:  http.StatusUnprocessableEntity,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeRequestTooBig:      http.StatusRequestEntityTooLarge,

	// referenced from a request body rather than addressed by the URL
	ErrCodeProductNotFound: http.StatusBadRequest,
	"SUPPLIER_NOT_FOUND":   http.StatusBadRequest,
	"CATEGORY_NOT_FOUND":   http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code. Codes not in
// ErrorCodeHTTPStatus are classified by shape: INVALID_* is 400, *_NOT_FOUND
// is 404, *_EXISTS, *_IN_USE and ALREADY_* are 409. Anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case code == ErrCodeNotFound || strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case code == ErrCodeAlreadyExists,
		code == "IN_USE",
		strings.HasSuffix(code, "_EXISTS"),
		strings.HasSuffix(code, "_IN_USE"),
		strings.HasPrefix(code, "ALREADY_"):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
