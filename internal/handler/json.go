package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// The handlers speak JSON in both directions; these helpers keep the
// encoding, content type, and error envelope in one place.

// errorResponse is the envelope for every error body: {"error":"..."}.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes data as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends message in the standard error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// readJSON decodes the request body into dst.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
