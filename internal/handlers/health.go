package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// dishCounter reports the size of the loaded dataset.
type dishCounter interface {
	Count() int
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	dishes dishCounter
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(dishes dishCounter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		dishes: dishes,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Dishes    int       `json:"dishes"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Dishes:    h.dishes.Count(),
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
