package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mesaviva/menurag/internal/api"
	"github.com/mesaviva/menurag/internal/domain"
	"github.com/mesaviva/menurag/internal/pagination"
	"github.com/go-chi/chi/v5"
)

type DishLister interface {
	GetByID(ctx context.Context, id int64) (*domain.Dish, error)
	ListActive(ctx context.Context, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.Dish], error)
}

type DishHandler struct {
	repo DishLister
}

func NewDishHandler(repo DishLister) *DishHandler {
	return &DishHandler{repo: repo}
}

type DishResponse struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	PriceCents int      `json:"price_cents"`
	Tags       []string `json:"tags"`
	IsActive   bool     `json:"is_active"`
	CreatedAt  string   `json:"created_at"`
}

func dishToResponse(d *domain.Dish) *DishResponse {
	return &DishResponse{
		ID:         d.ID,
		Name:       d.Name,
		Category:   d.Category,
		PriceCents: d.PriceCents,
		Tags:       d.Tags,
		IsActive:   d.IsActive,
		CreatedAt:  d.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

type DishListResponse struct {
	Items   []*DishResponse `json:"items"`
	Cursor  string          `json:"cursor,omitempty"`
	HasMore bool            `json:"has_more"`
}

func (h *DishHandler) Get(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		api.Error(w, http.StatusBadRequest, "invalid dish id")
		return
	}

	dish, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, dishToResponse(dish))
}

func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor, err := pagination.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	page, err := h.repo.ListActive(r.Context(), cursor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*DishResponse, len(page.Items))
	for i, d := range page.Items {
		responses[i] = dishToResponse(d)
	}

	api.Success(w, http.StatusOK, DishListResponse{
		Items:   responses,
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	})
}
