package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/dataapi"
)

// Detail messages returned in error responses.
const (
	DetailFileNotFound     = "File not found"
	DetailStoreError       = "S3 error"
	DetailInvalidDocument  = "Invalid JSON document"
	DetailRouteNotFound    = "Not Found"
	DetailMethodNotAllowed = "Method Not Allowed"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, detail string) {
	if err := WriteJSON(w, code, ErrorResponse{Detail: detail}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes the error response for err.
//
//   - not found store errors: 404 "File not found"
//   - undecodable documents: 502 "Invalid JSON document"
//   - anything else: 500 "S3 error"
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	attrs := []any{"error", err, "request_id", RequestIDFromContext(ctx)}

	if errors.Is(err, dataapi.ErrDecode) {
		slog.ErrorContext(ctx, "stored document is not valid json", attrs...)
		WriteError(w, http.StatusBadGateway, DetailInvalidDocument)
		return
	}

	if dataapi.KindOf(err) == dataapi.KindNotFound {
		slog.WarnContext(ctx, "document not found", attrs...)
		WriteError(w, http.StatusNotFound, DetailFileNotFound)
		return
	}

	slog.ErrorContext(ctx, "store error", attrs...)
	WriteError(w, http.StatusInternalServerError, DetailStoreError)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
