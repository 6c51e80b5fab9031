package domain

// Chunk represents a bounded slice of ficha text stored for retrieval.
// Content is normalized and non-empty; chunks are ordered by ChunkIndex
// within their source dish.
type Chunk struct {
	ID         int64
	DishID     *int64
	ChunkIndex int
	Content    string
	Metadata   map[string]any
}

// ValidateChunk validates a Chunk instance
func ValidateChunk(c *Chunk) error {
	if c == nil {
		return NewDomainError(ErrCodeValidation, "chunk cannot be nil")
	}

	if c.Content == "" {
		return ErrEmptyChunkContent
	}

	if c.ChunkIndex < 0 {
		return NewDomainError(ErrCodeValidation, "chunk ChunkIndex cannot be negative")
	}

	return nil
}

// SearchHit is a transient ranked result from similarity search.
// Score is max(0, 1-cosine_distance), clamped to [0,1].
type SearchHit struct {
	ChunkID int64
	Content string
	Score   float64
}
