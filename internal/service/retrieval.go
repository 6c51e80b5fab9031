package service

import (
	"context"

	"github.com/mesaviva/menurag/internal/domain"
)

const (
	// DefaultAnswerThreshold is the confidence at or above which a direct
	// answer is allowed.
	DefaultAnswerThreshold = 0.78
	// DefaultSoftThreshold is the confidence at or above which a hedged
	// answer is allowed.
	DefaultSoftThreshold = 0.60
)

// SearchGateway issues nearest-neighbor queries against the vector store.
// An empty result set is a normal outcome, not an error.
type SearchGateway interface {
	SearchSimilar(ctx context.Context, queryEmbedding []float32, topK int, dishID *int64) ([]domain.SearchHit, error)
}

// RetrievalConfig holds the decision thresholds.
type RetrievalConfig struct {
	AnswerThreshold float64
	SoftThreshold   float64
}

// DefaultRetrievalConfig returns the fixed production thresholds.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		AnswerThreshold: DefaultAnswerThreshold,
		SoftThreshold:   DefaultSoftThreshold,
	}
}

// RetrievalService ranks stored chunks against a query embedding and
// classifies the outcome into a three-state decision.
type RetrievalService struct {
	gateway SearchGateway
	cfg     RetrievalConfig
}

// NewRetrievalService creates a new RetrievalService instance
func NewRetrievalService(gateway SearchGateway) *RetrievalService {
	return NewRetrievalServiceWithConfig(gateway, DefaultRetrievalConfig())
}

// NewRetrievalServiceWithConfig creates a RetrievalService with explicit thresholds.
func NewRetrievalServiceWithConfig(gateway SearchGateway, cfg RetrievalConfig) *RetrievalService {
	if cfg.AnswerThreshold <= 0 {
		cfg.AnswerThreshold = DefaultAnswerThreshold
	}
	if cfg.SoftThreshold <= 0 {
		cfg.SoftThreshold = DefaultSoftThreshold
	}
	return &RetrievalService{gateway: gateway, cfg: cfg}
}

// Search runs similarity search and computes confidence and decision.
// Confidence is the maximum hit score, not an average: a single strong
// match is sufficient evidence of topical relevance.
func (s *RetrievalService) Search(ctx context.Context, queryEmbedding []float32, topK int, dishID *int64) (*domain.RetrievalResult, error) {
	hits, err := s.gateway.SearchSimilar(ctx, queryEmbedding, topK, dishID)
	if err != nil {
		return nil, err
	}

	confidence := 0.0
	for _, h := range hits {
		if h.Score > confidence {
			confidence = h.Score
		}
	}

	return &domain.RetrievalResult{
		Hits:       hits,
		Confidence: confidence,
		Decision:   s.decide(confidence, len(hits) > 0),
	}, nil
}

// decide maps confidence to one of the three terminal states. Both
// comparisons are inclusive at the lower bound, so a confidence exactly
// on a threshold falls into the higher tier.
func (s *RetrievalService) decide(confidence float64, hasHits bool) domain.Decision {
	if !hasHits {
		return domain.DecisionDisclaimer
	}
	if confidence >= s.cfg.AnswerThreshold {
		return domain.DecisionAnswer
	}
	if confidence >= s.cfg.SoftThreshold {
		return domain.DecisionSoftDisclaimer
	}
	return domain.DecisionDisclaimer
}
