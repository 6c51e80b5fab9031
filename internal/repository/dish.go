package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mesaviva/menurag/internal/domain"
	"github.com/mesaviva/menurag/internal/pagination"
)

// DishRepository handles persistence of menu dishes.
type DishRepository struct {
	db dbtx
}

func NewDishRepository(pool *pgxpool.Pool) *DishRepository {
	return &DishRepository{db: pool}
}

func NewDishRepositoryWithTx(tx pgx.Tx) *DishRepository {
	return &DishRepository{db: tx}
}

func (r *DishRepository) Create(ctx context.Context, d *domain.Dish) (*domain.Dish, error) {
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO dish (name, category, price_cents, tags, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		d.Name, d.Category, d.PriceCents, tags, d.IsActive, createdAt,
	).Scan(&d.ID)
	if err != nil {
		return nil, err
	}

	d.CreatedAt = createdAt
	return d, nil
}

func (r *DishRepository) GetByID(ctx context.Context, id int64) (*domain.Dish, error) {
	var d domain.Dish
	err := r.db.QueryRow(ctx,
		`SELECT id, name, category, price_cents, tags, is_active, created_at
		 FROM dish WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.Name, &d.Category, &d.PriceCents, &d.Tags, &d.IsActive, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDishNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DishRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM dish`).Scan(&count)
	return count, err
}

// ListActive returns active dishes ordered by id, one page at a time.
func (r *DishRepository) ListActive(ctx context.Context, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.Dish], error) {
	if limit <= 0 {
		limit = 50
	}

	lastID := int64(0)
	if cursor != nil {
		lastID = cursor.LastID
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, price_cents, tags, is_active, created_at
		 FROM dish
		 WHERE is_active = TRUE AND id > $1
		 ORDER BY id
		 LIMIT $2`,
		lastID, limit+1,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := make([]*domain.Dish, 0, limit)
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.PriceCents, &d.Tags, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, err
		}
		dishes = append(dishes, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &pagination.PageResult[*domain.Dish]{Items: dishes}
	if len(dishes) > limit {
		result.Items = dishes[:limit]
		result.HasMore = true
		result.Cursor = pagination.EncodeCursor(result.Items[limit-1].ID)
	}

	return result, nil
}
