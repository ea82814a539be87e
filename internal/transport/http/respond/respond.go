package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody is the single error shape every failure is translated to.
type errorBody struct {
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Error is the catch-all failure funnel: every unhandled operation
// failure becomes a 500 with the failure's message.
func Error(w http.ResponseWriter, err error) {
	slog.Error("Request failed", "error", err)
	JSON(w, http.StatusInternalServerError, errorBody{Message: err.Error()})
}

// BadRequest reports a malformed or invalid request body.
func BadRequest(w http.ResponseWriter, err error) {
	slog.Error("Invalid request", "error", err)
	JSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
}

// NotFound is the catch-all handler for unmatched paths.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusNotFound, errorBody{Message: "path not found on this server"})
}
