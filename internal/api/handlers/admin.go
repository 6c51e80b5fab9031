package handlers

import (
	"context"
	"net/http"

	"github.com/mesaviva/menurag/internal/api"
)

type Seeder interface {
	SeedDishes(ctx context.Context) (string, error)
}

type Indexer interface {
	IndexPending(ctx context.Context) (int, error)
}

type AdminHandler struct {
	seeder  Seeder
	indexer Indexer
}

func NewAdminHandler(seeder Seeder, indexer Indexer) *AdminHandler {
	return &AdminHandler{seeder: seeder, indexer: indexer}
}

type SeedResponse struct {
	Message string `json:"message"`
}

type IndexResponse struct {
	Indexed int `json:"indexed"`
}

// Seed loads the demo menu. Running it against a populated database
// is a no-op and still returns 200.
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	message, err := h.seeder.SeedDishes(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, SeedResponse{Message: message})
}

func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	created, err := h.indexer.IndexPending(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, IndexResponse{Indexed: created})
}
