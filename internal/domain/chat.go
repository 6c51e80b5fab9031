package domain

import "time"

// Turn is the audit record of one question-answer exchange.
// BotText is nil until generation completes; turns are append-only.
type Turn struct {
	ID        int64
	DishID    *int64
	UserText  string
	BotText   *string
	CreatedAt time.Time
}

// Trace records the evidence and decision behind a turn's answer.
// Created once after the decision is known, immutable thereafter.
type Trace struct {
	ID           int64
	TurnID       int64
	UsedChunkIDs []int64
	Scores       []float64
	Confidence   float64
	Decision     Decision
	CreatedAt    time.Time
}

// ValidateTrace validates a Trace instance
func ValidateTrace(tr *Trace) error {
	if tr == nil {
		return NewDomainError(ErrCodeValidation, "trace cannot be nil")
	}

	if tr.TurnID <= 0 {
		return NewDomainError(ErrCodeValidation, "trace TurnID is required")
	}

	if !IsValidDecision(tr.Decision) {
		return ErrInvalidDecision
	}

	if len(tr.UsedChunkIDs) != len(tr.Scores) {
		return NewDomainError(ErrCodeValidation, "trace UsedChunkIDs and Scores must have the same length")
	}

	return nil
}
