package handlers

import (
	"context"
	"net/http"
	"time"

	"recipes_backend/logger"
	"recipes_backend/store"
)

const readyTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}

// Readyz reports whether the store answers a ping.
func Readyz(st store.Store, w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := st.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).WithError(err).Warn("Store is not reachable")
		writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "not_ready", Reason: "store unreachable"})
		return
	}
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ready"})
}
