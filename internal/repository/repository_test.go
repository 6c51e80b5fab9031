//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mesaviva/menurag/internal/domain"
	"github.com/mesaviva/menurag/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T) (context.Context, *pgxpool.Pool) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pc.Terminate(ctx) })

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	t.Cleanup(pool.Close)

	return ctx, pool
}

func createTestDish(ctx context.Context, t *testing.T, repo *DishRepository, name string) *domain.Dish {
	dish, err := repo.Create(ctx, &domain.Dish{
		Name:       name,
		Category:   "principal",
		PriceCents: 1250,
		Tags:       []string{"sin_tacc"},
		IsActive:   true,
	})
	require.NoError(t, err)
	return dish
}
