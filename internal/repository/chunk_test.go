//go:build integration

package repository

import (
	"testing"

	"github.com/mesaviva/menurag/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRepository_CreateForDish(t *testing.T) {
	ctx, pool := newTestPool(t)
	dishRepo := NewDishRepository(pool)
	chunkRepo := NewChunkRepository(pool)

	dish := createTestDish(ctx, t, dishRepo, "Trucha grillada")

	contents := []string{
		"FICHA: Trucha grillada. Trucha patagónica a la plancha.",
		"Alérgenos: pescado. Apto sin TACC.",
	}
	metadata := map[string]any{"source": "seed", "type": "ficha_plato"}

	chunks, err := chunkRepo.CreateForDish(ctx, dish.ID, contents, metadata)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, 1, chunks[0].ChunkIndex)
	assert.Equal(t, 2, chunks[1].ChunkIndex)
	assert.Equal(t, contents[0], chunks[0].Content)
	require.NotNil(t, chunks[0].DishID)
	assert.Equal(t, dish.ID, *chunks[0].DishID)
	assert.Positive(t, chunks[0].ID)
}

func TestChunkRepository_CreateForDish_EmptyContent(t *testing.T) {
	ctx, pool := newTestPool(t)
	dishRepo := NewDishRepository(pool)
	chunkRepo := NewChunkRepository(pool)

	dish := createTestDish(ctx, t, dishRepo, "Bife de chorizo")

	_, err := chunkRepo.CreateForDish(ctx, dish.ID, []string{""}, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyChunkContent)
}

func TestChunkRepository_GetUnindexed(t *testing.T) {
	ctx, pool := newTestPool(t)
	dishRepo := NewDishRepository(pool)
	chunkRepo := NewChunkRepository(pool)
	embRepo := NewEmbeddingRepository(pool)

	dish := createTestDish(ctx, t, dishRepo, "Sorrentinos de jamón")

	chunks, err := chunkRepo.CreateForDish(ctx, dish.ID,
		[]string{"primer fragmento", "segundo fragmento"},
		map[string]any{"source": "seed"},
	)
	require.NoError(t, err)

	unindexed, err := chunkRepo.GetUnindexed(ctx)
	require.NoError(t, err)
	require.Len(t, unindexed, 2)
	assert.Equal(t, map[string]any{"source": "seed"}, unindexed[0].Metadata)

	embedding := make([]float32, DefaultEmbeddingDimensions)
	embedding[0] = 1.0
	require.NoError(t, embRepo.Create(ctx, chunks[0].ID, embedding))

	unindexed, err = chunkRepo.GetUnindexed(ctx)
	require.NoError(t, err)
	require.Len(t, unindexed, 1)
	assert.Equal(t, chunks[1].ID, unindexed[0].ID)
}

func TestChunkRepository_Count(t *testing.T) {
	ctx, pool := newTestPool(t)
	dishRepo := NewDishRepository(pool)
	chunkRepo := NewChunkRepository(pool)

	count, err := chunkRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	dish := createTestDish(ctx, t, dishRepo, "Risotto de hongos")
	_, err = chunkRepo.CreateForDish(ctx, dish.ID, []string{"uno", "dos", "tres"}, nil)
	require.NoError(t, err)

	count, err = chunkRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
