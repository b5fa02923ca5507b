package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dom/vidtube/internal/api/response"
	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/repository"
)

type HealthHandler struct {
	store repository.HealthChecker
}

func NewHealthHandler(store repository.HealthChecker) *HealthHandler {
	return &HealthHandler{store: store}
}

type HealthStatus struct {
	Status string `json:"status"`
}

// Live reports that the process is serving requests.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	response.JSON(r.Context(), w, http.StatusOK, HealthStatus{Status: "ok"}, "OK")
}

// Check pings the document store.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		response.Error(r.Context(), w, domain.Internal("store unreachable", err))
		return
	}
	response.JSON(r.Context(), w, http.StatusOK, HealthStatus{Status: "ok"}, "health check passed")
}
