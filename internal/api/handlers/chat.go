package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mesaviva/menurag/internal/api"
	"github.com/mesaviva/menurag/internal/service"
)

type ChatQueryService interface {
	ProcessQuery(ctx context.Context, input service.ChatInput) (*service.ChatOutput, error)
}

type ChatHandler struct {
	svc         ChatQueryService
	topKDefault int
	topKMax     int
}

func NewChatHandler(svc ChatQueryService, topKDefault, topKMax int) *ChatHandler {
	return &ChatHandler{svc: svc, topKDefault: topKDefault, topKMax: topKMax}
}

type ChatRequest struct {
	Question string `json:"question"`
	DishID   *int64 `json:"dish_id,omitempty"`
	TopK     int    `json:"top_k,omitempty"`
}

// Query handles POST /chat. The response carries the generated answer
// plus the evidence trail (decision, confidence, sources, trace id).
func (h *ChatHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.DishID != nil && *req.DishID <= 0 {
		api.Error(w, http.StatusBadRequest, "dish_id must be positive")
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = h.topKDefault
	}
	if topK > h.topKMax {
		topK = h.topKMax
	}

	output, err := h.svc.ProcessQuery(r.Context(), service.ChatInput{
		Question: req.Question,
		DishID:   req.DishID,
		TopK:     topK,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, output)
}
