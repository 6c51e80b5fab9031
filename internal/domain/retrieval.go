package domain

// Decision classifies how much hedging a generated answer needs.
type Decision string

const (
	DecisionAnswer         Decision = "answer"
	DecisionSoftDisclaimer Decision = "soft_disclaimer"
	DecisionDisclaimer     Decision = "disclaimer"
)

// IsValidDecision checks if a Decision is one of the three terminal states
func IsValidDecision(d Decision) bool {
	switch d {
	case DecisionAnswer, DecisionSoftDisclaimer, DecisionDisclaimer:
		return true
	}
	return false
}

// RetrievalResult is the transient outcome of one similarity search:
// ranked hits, the best hit score, and the three-state decision.
type RetrievalResult struct {
	Hits       []SearchHit
	Confidence float64
	Decision   Decision
}
