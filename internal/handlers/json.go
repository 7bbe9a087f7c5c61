package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lcsmrct/AMBEAUTY/internal/store"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError reports an error to the caller. The "detail" key matches
// what the frontend already expects.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeStoreError maps store sentinel errors onto HTTP statuses, using
// notFoundMsg/conflictMsg for the two expected cases. Callers that do
// not expect a case may leave its message empty and get a generic one.
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg, conflictMsg string) {
	if notFoundMsg == "" {
		notFoundMsg = "resource not found"
	}
	if conflictMsg == "" {
		conflictMsg = "resource conflict"
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, conflictMsg)
	default:
		slog.Error("Store operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
