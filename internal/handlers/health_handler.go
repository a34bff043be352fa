package handlers

import "net/http"

// StatsFunc reports backing-store pool utilization.
type StatsFunc func() map[string]interface{}

type HealthHandler struct {
	stats StatsFunc
}

func NewHealthHandler(stats StatsFunc) *HealthHandler {
	return &HealthHandler{stats: stats}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status": "ok",
	}
	if h.stats != nil {
		body["db"] = h.stats()
	}
	respondJSON(w, http.StatusOK, body)
}
