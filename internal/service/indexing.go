package service

import (
	"context"
	"fmt"

	"github.com/mesaviva/menurag/internal/domain"
	"github.com/mesaviva/menurag/internal/telemetry"
)

// UnindexedChunkRepository lists chunks that have no stored embedding yet.
type UnindexedChunkRepository interface {
	GetUnindexed(ctx context.Context) ([]*domain.Chunk, error)
}

// EmbeddingRepositoryInterface persists chunk embeddings.
type EmbeddingRepositoryInterface interface {
	Create(ctx context.Context, chunkID int64, embedding []float32) error
}

// EmbeddingProvider generates embedding vectors.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// IndexService embeds chunks that are still missing an embedding.
// Called synchronously from the admin endpoint and periodically by the
// background worker.
type IndexService struct {
	chunkRepo     UnindexedChunkRepository
	embeddingRepo EmbeddingRepositoryInterface
	provider      EmbeddingProvider
}

// NewIndexService creates a new IndexService instance
func NewIndexService(
	chunkRepo UnindexedChunkRepository,
	embeddingRepo EmbeddingRepositoryInterface,
	provider EmbeddingProvider,
) *IndexService {
	return &IndexService{
		chunkRepo:     chunkRepo,
		embeddingRepo: embeddingRepo,
		provider:      provider,
	}
}

// IndexPending embeds every unindexed chunk and stores the vectors.
// Returns the number of embeddings created. A provider failure aborts
// the batch; chunks embedded before the failure stay indexed.
func (s *IndexService) IndexPending(ctx context.Context) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "IndexService.IndexPending", telemetry.SpanAttributes{
		Operation: "index",
	})
	defer span.End()

	chunks, err := s.chunkRepo.GetUnindexed(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list unindexed chunks: %w", err)
	}

	created := 0
	for _, chunk := range chunks {
		embedding, err := s.provider.Embed(ctx, chunk.Content)
		if err != nil {
			return created, err
		}

		if err := s.embeddingRepo.Create(ctx, chunk.ID, embedding); err != nil {
			return created, fmt.Errorf("failed to store embedding for chunk %d: %w", chunk.ID, err)
		}
		created++
	}

	return created, nil
}
