package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mesaviva/menurag/internal/domain"
)

// ChatRepository handles persistence of chat turns and retrieval traces.
type ChatRepository struct {
	db dbtx
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: pool}
}

func NewChatRepositoryWithTx(tx pgx.Tx) *ChatRepository {
	return &ChatRepository{db: tx}
}

// CreateTurn records the start of an exchange. BotText stays NULL until
// generation completes.
func (r *ChatRepository) CreateTurn(ctx context.Context, userText string, dishID *int64) (*domain.Turn, error) {
	turn := &domain.Turn{
		DishID:    dishID,
		UserText:  userText,
		CreatedAt: time.Now().UTC(),
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO chat_turn (dish_id, user_text, bot_text, created_at)
		 VALUES ($1, $2, NULL, $3)
		 RETURNING id`,
		dishID, userText, turn.CreatedAt,
	).Scan(&turn.ID)
	if err != nil {
		return nil, err
	}

	return turn, nil
}

// UpdateTurnResponse sets the bot response for a turn. Turns are mutated
// exactly once, after generation completes.
func (r *ChatRepository) UpdateTurnResponse(ctx context.Context, turnID int64, botText string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE chat_turn SET bot_text = $1 WHERE id = $2`,
		botText, turnID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTurnNotFound
	}
	return nil
}

// CreateTrace records the evidence and decision behind a turn's answer.
func (r *ChatRepository) CreateTrace(ctx context.Context, trace *domain.Trace) (*domain.Trace, error) {
	if trace.CreatedAt.IsZero() {
		trace.CreatedAt = time.Now().UTC()
	}
	if err := domain.ValidateTrace(trace); err != nil {
		return nil, err
	}

	usedChunkIDs := trace.UsedChunkIDs
	if usedChunkIDs == nil {
		usedChunkIDs = []int64{}
	}
	scores := trace.Scores
	if scores == nil {
		scores = []float64{}
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO rag_trace (turn_id, used_chunk_ids, scores, confidence, decision, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		trace.TurnID, usedChunkIDs, scores, trace.Confidence, string(trace.Decision), trace.CreatedAt,
	).Scan(&trace.ID)
	if err != nil {
		return nil, err
	}

	return trace, nil
}
