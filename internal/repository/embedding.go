package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mesaviva/menurag/internal/domain"
	"github.com/pgvector/pgvector-go"
)

// DefaultEmbeddingDimensions is the fixed vector size of the kb_embedding column.
const DefaultEmbeddingDimensions = 768

// EmbeddingRepository handles chunk embedding storage and vector search.
type EmbeddingRepository struct {
	db         dbtx
	dimensions int
}

func NewEmbeddingRepository(pool *pgxpool.Pool) *EmbeddingRepository {
	return &EmbeddingRepository{db: pool, dimensions: DefaultEmbeddingDimensions}
}

func NewEmbeddingRepositoryWithTx(tx pgx.Tx) *EmbeddingRepository {
	return &EmbeddingRepository{db: tx, dimensions: DefaultEmbeddingDimensions}
}

// Create stores a chunk embedding, replacing any existing one (1:1 upsert).
// A dimension mismatch is a hard error, never silently padded or truncated.
func (r *EmbeddingRepository) Create(ctx context.Context, chunkID int64, embedding []float32) error {
	if len(embedding) != r.dimensions {
		return domain.NewDomainError(domain.ErrCodeValidation,
			fmt.Sprintf("embedding has %d dimensions, expected %d", len(embedding), r.dimensions))
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO kb_embedding (chunk_id, embedding)
		 VALUES ($1, $2)
		 ON CONFLICT (chunk_id) DO UPDATE SET embedding = EXCLUDED.embedding`,
		chunkID, pgvector.NewVector(embedding),
	)
	return err
}

func (r *EmbeddingRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM kb_embedding`).Scan(&count)
	return count, err
}

// SearchSimilar runs a cosine-distance nearest-neighbor query, optionally
// scoped to one dish. Hits come back ordered by ascending distance with
// score = max(0, 1-distance) clamped to [0,1]. An empty corpus or filter
// miss yields an empty slice, never an error.
func (r *EmbeddingRepository) SearchSimilar(ctx context.Context, queryEmbedding []float32, topK int, dishID *int64) ([]domain.SearchHit, error) {
	if topK <= 0 {
		topK = 1
	}

	vec := pgvector.NewVector(queryEmbedding)

	baseQuery := `
		SELECT c.id, c.content, e.embedding <=> $1 AS dist
		FROM kb_chunk c
		JOIN kb_embedding e ON e.chunk_id = c.id`

	var rows pgx.Rows
	var err error
	if dishID != nil {
		rows, err = r.db.Query(ctx,
			baseQuery+` WHERE c.dish_id = $2 ORDER BY dist ASC LIMIT $3`,
			vec, *dishID, topK,
		)
	} else {
		rows, err = r.db.Query(ctx,
			baseQuery+` ORDER BY dist ASC LIMIT $2`,
			vec, topK,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hits := make([]domain.SearchHit, 0, topK)
	for rows.Next() {
		var hit domain.SearchHit
		var dist float64
		if err := rows.Scan(&hit.ChunkID, &hit.Content, &dist); err != nil {
			return nil, err
		}
		hit.Score = scoreFromDistance(dist)
		hits = append(hits, hit)
	}

	return hits, rows.Err()
}

// scoreFromDistance converts cosine distance in [0,2] to a similarity
// score clamped to [0,1].
func scoreFromDistance(dist float64) float64 {
	score := 1.0 - dist
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
