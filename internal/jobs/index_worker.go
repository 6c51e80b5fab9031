package jobs

import (
	"context"
	"fmt"
	"log"
)

// Indexer defines the interface for embedding pending chunks
type Indexer interface {
	IndexPending(ctx context.Context) (int, error)
}

// IndexProcessor embeds chunks that are still missing embeddings.
// It runs inside the generic polling Worker so seeded fichas become
// searchable without waiting for a manual index call.
type IndexProcessor struct {
	indexer Indexer
}

// NewIndexProcessor creates a new IndexProcessor instance
func NewIndexProcessor(indexer Indexer) *IndexProcessor {
	return &IndexProcessor{indexer: indexer}
}

// ProcessPending implements the Processor interface
func (p *IndexProcessor) ProcessPending(ctx context.Context) error {
	created, err := p.indexer.IndexPending(ctx)
	if created > 0 {
		log.Printf("indexed %d chunk embeddings", created)
	}
	if err != nil {
		return fmt.Errorf("indexing pending chunks failed: %w", err)
	}
	return nil
}
