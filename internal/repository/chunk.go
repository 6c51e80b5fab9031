package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mesaviva/menurag/internal/domain"
)

// ChunkRepository handles persistence of ficha text chunks.
type ChunkRepository struct {
	db dbtx
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: pool}
}

func NewChunkRepositoryWithTx(tx pgx.Tx) *ChunkRepository {
	return &ChunkRepository{db: tx}
}

// CreateForDish inserts ordered chunks for a dish. ChunkIndex starts at 1.
func (r *ChunkRepository) CreateForDish(ctx context.Context, dishID int64, contents []string, metadata map[string]any) ([]*domain.Chunk, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	chunks := make([]*domain.Chunk, 0, len(contents))
	for i, content := range contents {
		chunk := &domain.Chunk{
			DishID:     &dishID,
			ChunkIndex: i + 1,
			Content:    content,
			Metadata:   metadata,
		}
		if err := domain.ValidateChunk(chunk); err != nil {
			return nil, err
		}

		err := r.db.QueryRow(ctx,
			`INSERT INTO kb_chunk (dish_id, chunk_index, content, metadata)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			dishID, chunk.ChunkIndex, content, metaJSON,
		).Scan(&chunk.ID)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// GetUnindexed returns chunks that have no embedding yet, ordered by id.
func (r *ChunkRepository) GetUnindexed(ctx context.Context) ([]*domain.Chunk, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.dish_id, c.chunk_index, c.content, c.metadata
		 FROM kb_chunk c
		 LEFT JOIN kb_embedding e ON e.chunk_id = c.id
		 WHERE e.chunk_id IS NULL
		 ORDER BY c.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChunks(rows)
}

func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM kb_chunk`).Scan(&count)
	return count, err
}

func scanChunks(rows pgx.Rows) ([]*domain.Chunk, error) {
	var chunks []*domain.Chunk
	for rows.Next() {
		var c domain.Chunk
		var metaJSON []byte
		if err := rows.Scan(&c.ID, &c.DishID, &c.ChunkIndex, &c.Content, &metaJSON); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &c.Metadata); err != nil {
				return nil, err
			}
		}
		chunks = append(chunks, &c)
	}
	return chunks, rows.Err()
}
