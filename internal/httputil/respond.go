// Package httputil holds the JSON response helpers shared by the handlers.
package httputil

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/shopcart/order-service/pkg/apperrors"
	"github.com/shopcart/order-service/pkg/logger"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Error maps the taxonomy onto HTTP statuses. Anything outside the taxonomy
// is an internal fault and is reported without leaking detail.
func Error(w http.ResponseWriter, log logger.ZapLogger, err error) {
	kind, known := apperrors.KnownKind(err)
	if !known {
		log.Error("internal error", zap.Error(err))
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch kind {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindAuthorization:
		status = http.StatusForbidden
	case apperrors.KindInsufficientStock, apperrors.KindInvalidState:
		status = http.StatusConflict
	}
	JSON(w, status, errorBody{Error: err.Error(), Kind: kind.String()})
}

func Decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Validation("invalid request body")
	}
	return nil
}
