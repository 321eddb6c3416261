package http

import (
	"encoding/json"
	"net/http"
)

// Response helpers for consistent API responses.
// Success bodies are bare JSON, failure bodies are plain text.

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		// Nothing has been written yet, so a clean 500 is still possible
		respondText(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// respondText sends a plain-text response without a trailing newline
func respondText(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(message))
}

// respondEmpty sends only a status line and headers
func respondEmpty(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}
