package gateway

import (
	"errors"
	"net/http"

	"github.com/go-jose/go-jose/v4/json"
	"go.uber.org/zap"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/store"
)

// writeJSON encodes body with the teacher's chosen encoder
// (go-jose/go-jose/v4/json) rather than encoding/json, carried through as
// an ambient-stack decision.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the three sentinel error kinds of spec.md §7 to their
// client-facing status codes. StoreError's message is redacted; the
// underlying cause is only ever logged, never returned to the caller.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, cursor.ErrInvalidFormat):
		writeJSON(w, http.StatusConflict, errorBody{Error: "invalid key format"})
	case errors.Is(err, cursor.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, store.ErrNotImplemented):
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "not implemented"})
	default:
		logger.Error("store error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
