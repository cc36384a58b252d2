package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cassmon/cassmon/internal/store"
)

// MetricsHandler handles snapshot endpoints
type MetricsHandler struct {
	snapshots *store.SnapshotStore
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(s *store.SnapshotStore) *MetricsHandler {
	return &MetricsHandler{snapshots: s}
}

// GetLatestSnapshot returns the most recent scrape of the node
func (h *MetricsHandler) GetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Latest()
	if snap == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "No metrics scraped yet")
		return
	}
	respondSuccess(w, http.StatusOK, snap)
}

// GetSnapshotHistory returns retained scrapes, newest first
func (h *MetricsHandler) GetSnapshotHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	snaps := h.snapshots.History(limit)
	response := map[string]interface{}{
		"count":     len(snaps),
		"snapshots": snaps,
	}
	respondSuccess(w, http.StatusOK, response)
}

// HealthHandler handles health check endpoint
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheck returns the health status
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "ok",
		"service": "cassmon agent",
	}
	respondSuccess(w, http.StatusOK, response)
}

// respondSuccess sends a successful JSON response
func respondSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}

	json.NewEncoder(w).Encode(response)
}

// respondError sends an error JSON response
func respondError(w http.ResponseWriter, statusCode int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}

	json.NewEncoder(w).Encode(response)
}
