package service

import (
	"context"
	"fmt"

	"github.com/mesaviva/menurag/internal/domain"
	"github.com/mesaviva/menurag/internal/seed"
)

// DishRepositoryInterface defines the repository operations seeding depends on.
type DishRepositoryInterface interface {
	Create(ctx context.Context, dish *domain.Dish) (*domain.Dish, error)
	Count(ctx context.Context) (int, error)
}

// ChunkRepositoryInterface persists ficha chunks.
type ChunkRepositoryInterface interface {
	CreateForDish(ctx context.Context, dishID int64, contents []string, metadata map[string]any) ([]*domain.Chunk, error)
}

// SeedService loads the demo menu: dishes plus their chunked fichas.
// Embeddings are created later by the indexing workflow.
type SeedService struct {
	dishRepo  DishRepositoryInterface
	chunkRepo ChunkRepositoryInterface
	text      *TextService
}

// NewSeedService creates a new SeedService instance
func NewSeedService(dishRepo DishRepositoryInterface, chunkRepo ChunkRepositoryInterface, text *TextService) *SeedService {
	return &SeedService{
		dishRepo:  dishRepo,
		chunkRepo: chunkRepo,
		text:      text,
	}
}

// SeedDishes loads the demo menu if the database is empty. Idempotent:
// a non-empty database leaves existing data untouched.
func (s *SeedService) SeedDishes(ctx context.Context) (string, error) {
	existing, err := s.dishRepo.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count dishes: %w", err)
	}
	if existing > 0 {
		return "Ya hay datos. Si querés reiniciar, borrá tablas o limpiá manualmente.", nil
	}

	dishes := seed.Dishes()
	for _, sd := range dishes {
		dish := &domain.Dish{
			Name:       sd.Name,
			Category:   sd.Category,
			PriceCents: sd.PriceCents,
			Tags:       sd.Tags,
			IsActive:   true,
		}
		if err := domain.ValidateDish(dish); err != nil {
			return "", err
		}

		created, err := s.dishRepo.Create(ctx, dish)
		if err != nil {
			return "", fmt.Errorf("failed to create dish %q: %w", sd.Name, err)
		}

		contents := s.text.Chunk(sd.Ficha)
		metadata := map[string]any{"source": "seed", "type": "ficha_plato"}
		if _, err := s.chunkRepo.CreateForDish(ctx, created.ID, contents, metadata); err != nil {
			return "", fmt.Errorf("failed to create chunks for dish %q: %w", sd.Name, err)
		}
	}

	return fmt.Sprintf("Seed OK: %d platos + fichas cargadas.", len(dishes)), nil
}
