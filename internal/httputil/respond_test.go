package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/shopcart/order-service/pkg/apperrors"
	"github.com/shopcart/order-service/pkg/logger"
)

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.NotFound("order not found"), http.StatusNotFound},
		{"validation", apperrors.Validation("cart is empty"), http.StatusBadRequest},
		{"authorization", apperrors.Authorization("nope"), http.StatusForbidden},
		{"insufficient stock", apperrors.InsufficientStock("out of stock"), http.StatusConflict},
		{"invalid state", apperrors.InvalidState("already cancelled"), http.StatusConflict},
		{"unknown", errors.New("pg connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, logger.NewNop(), tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, logger.NewNop(), errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestDecodeInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	var v map[string]interface{}
	err := Decode(req, &v)
	assert.True(t, apperrors.IsValidation(err))
}

func TestJSONWritesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "o1"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"o1"}`, rec.Body.String())
}
