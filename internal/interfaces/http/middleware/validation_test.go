package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactInput struct {
	Email    string           `json:"email" binding:"required,email"`
	Subject  string           `json:"subject" binding:"required,max=10"`
	Kind     string           `json:"kind" binding:"omitempty,oneof=question complaint"`
	Quantity int              `json:"quantity" binding:"gte=1"`
	Budget   *decimal.Decimal `json:"budget" binding:"omitempty,decimal_gte0"`
}

func validationRouter() *gin.Engine {
	SetupValidator()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/contact", func(c *gin.Context) {
		var in contactInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	return router
}

func postContact(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		return w, nil
	}
	var resp struct {
		Error struct {
			Code      string                 `json:"code"`
			RequestID string                 `json:"request_id"`
			Details   []dto.ValidationDetail `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-42", resp.Error.RequestID)

	fields := make(map[string]string, len(resp.Error.Details))
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	return w, fields
}

func TestHandleValidationError(t *testing.T) {
	router := validationRouter()

	t.Run("valid input", func(t *testing.T) {
		w, _ := postContact(t, router, `{"email": "jane@example.com", "subject": "Hello", "quantity": 1, "budget": "12.50"}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("details use json names", func(t *testing.T) {
		w, fields := postContact(t, router, `{"email": "nope", "quantity": 0}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]string{
			"email":    "Invalid email format",
			"subject":  "This field is required",
			"quantity": "Must be greater than or equal to 1",
		}, fields)
	})

	t.Run("string bounds and enums", func(t *testing.T) {
		_, fields := postContact(t, router, `{"email": "jane@example.com", "subject": "far too long a subject", "kind": "spam", "quantity": 1}`)
		assert.Equal(t, "Must be at most 10 characters", fields["subject"])
		assert.Equal(t, "Must be one of: question complaint", fields["kind"])
	})

	t.Run("negative amount", func(t *testing.T) {
		_, fields := postContact(t, router, `{"email": "jane@example.com", "subject": "Hi", "quantity": 1, "budget": "-0.01"}`)
		assert.Equal(t, "Must be a non-negative amount", fields["budget"])
	})
}

func TestDecimalGTE0(t *testing.T) {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	type priceInput struct {
		Price decimal.Decimal `json:"price" binding:"decimal_gte0"`
	}

	router := gin.New()
	router.POST("/price", func(c *gin.Context) {
		var in priceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		body     string
		expected int
	}{
		{`{"price": "12.50"}`, http.StatusNoContent},
		{`{"price": 0}`, http.StatusNoContent},
		{`{}`, http.StatusNoContent},
		{`{"price": "-0.01"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/price", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestMoneyTag(t *testing.T) {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	type priceInput struct {
		Price decimal.Decimal `json:"price" binding:"money"`
	}

	router := gin.New()
	router.POST("/price", func(c *gin.Context) {
		var in priceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		body     string
		expected int
	}{
		{`{"price": "12.50"}`, http.StatusNoContent},
		{`{"price": "99999999.99"}`, http.StatusNoContent},
		{`{"price": "3.335"}`, http.StatusBadRequest},
		{`{"price": 100000000}`, http.StatusBadRequest},
		{`{"price": "-1"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/price", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
			if tt.expected == http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), "at most 2 decimal places")
			}
		})
	}
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}

func TestHandleValidationError_BodyCutOffIs413(t *testing.T) {
	SetupValidator()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(32))
	router.POST("/contact", func(c *gin.Context) {
		var in contactInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/contact",
		strings.NewReader(`{"email": "jane@example.com", "subject": "`+strings.Repeat("x", 100)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeRequestTooBig)
}
