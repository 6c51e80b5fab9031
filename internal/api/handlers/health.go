package handlers

import (
	"context"
	"net/http"

	"github.com/mesaviva/menurag/internal/api"
)

type DatabasePinger interface {
	Ping(ctx context.Context) error
}

type ProviderChecker interface {
	IsReachable(ctx context.Context) bool
}

// HealthHandler reports liveness of the service and its two hard
// dependencies: Postgres and the inference endpoint. The provider
// being down degrades status but does not return a non-200, because
// the service can still answer with disclaimers from stored data.
type HealthHandler struct {
	db       DatabasePinger
	provider ProviderChecker
}

func NewHealthHandler(db DatabasePinger, provider ProviderChecker) *HealthHandler {
	return &HealthHandler{db: db, provider: provider}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Ollama   string `json:"ollama"`
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok", Ollama: "ok"}
	status := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if !h.provider.IsReachable(r.Context()) {
		resp.Ollama = "unreachable"
		if resp.Status == "ok" {
			resp.Status = "degraded"
		}
	}

	api.Success(w, status, resp)
}
