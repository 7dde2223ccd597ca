// internal/app/system/respond/respond.go

// Package respond writes the JSON response envelopes used by every API
// handler.
package respond

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a single-message error payload.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ValidationFailed writes a 422 carrying every violation so the dashboard
// can display them all at once.
func ValidationFailed(w http.ResponseWriter, errors []string) {
	JSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation failed",
		"errors": errors,
	})
}
