package service

import (
	"context"
	"fmt"

	"github.com/mesaviva/menurag/internal/domain"
	"github.com/mesaviva/menurag/internal/telemetry"
)

// ProviderClient defines the inference operations the chat flow depends on.
type ProviderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ChatRepositoryInterface persists turns and traces.
type ChatRepositoryInterface interface {
	CreateTurn(ctx context.Context, userText string, dishID *int64) (*domain.Turn, error)
	UpdateTurnResponse(ctx context.Context, turnID int64, botText string) error
	CreateTrace(ctx context.Context, trace *domain.Trace) (*domain.Trace, error)
}

// ChatInput represents one incoming question.
type ChatInput struct {
	Question string
	DishID   *int64
	TopK     int
}

// Source summarizes one evidence chunk for the caller.
type Source struct {
	ChunkID int64   `json:"chunk_id"`
	Score   float64 `json:"score"`
	Preview string  `json:"preview"`
}

// ChatOutput is the result of one end-to-end turn.
type ChatOutput struct {
	Answer     string          `json:"answer"`
	Decision   domain.Decision `json:"decision"`
	Confidence float64         `json:"confidence"`
	Sources    []Source        `json:"sources"`
	TraceID    int64           `json:"trace_id"`
}

// ChatService orchestrates one query end to end:
// normalize, embed, retrieve, decide, generate, record.
type ChatService struct {
	provider  ProviderClient
	text      *TextService
	prompt    *PromptService
	retrieval *RetrievalService
	chatRepo  ChatRepositoryInterface
}

// NewChatService creates a new ChatService instance
func NewChatService(
	provider ProviderClient,
	text *TextService,
	prompt *PromptService,
	retrieval *RetrievalService,
	chatRepo ChatRepositoryInterface,
) *ChatService {
	return &ChatService{
		provider:  provider,
		text:      text,
		prompt:    prompt,
		retrieval: retrieval,
		chatRepo:  chatRepo,
	}
}

// ProcessQuery runs the strictly sequential pipeline for one question.
// Provider errors abort the turn and propagate untouched; the turn record
// is left without a bot response in that case.
func (s *ChatService) ProcessQuery(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "ChatService.ProcessQuery", telemetry.SpanAttributes{
		DishID:    input.DishID,
		Operation: "chat",
	})
	defer span.End()

	question := s.text.Normalize(input.Question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}
	allergyMode := s.text.IsAllergyQuery(question)

	topK := input.TopK
	if topK < 1 {
		topK = 1
	}

	turn, err := s.chatRepo.CreateTurn(ctx, question, input.DishID)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat turn: %w", err)
	}

	queryEmbedding, err := s.provider.Embed(ctx, question)
	if err != nil {
		return nil, err
	}

	result, err := s.retrieval.Search(ctx, queryEmbedding, topK, input.DishID)
	if err != nil {
		return nil, err
	}

	answer, err := s.generateAnswer(ctx, question, result, allergyMode)
	if err != nil {
		return nil, err
	}

	usedChunkIDs := make([]int64, 0, len(result.Hits))
	scores := make([]float64, 0, len(result.Hits))
	for _, h := range result.Hits {
		usedChunkIDs = append(usedChunkIDs, h.ChunkID)
		scores = append(scores, h.Score)
	}

	trace, err := s.chatRepo.CreateTrace(ctx, &domain.Trace{
		TurnID:       turn.ID,
		UsedChunkIDs: usedChunkIDs,
		Scores:       scores,
		Confidence:   result.Confidence,
		Decision:     result.Decision,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create trace: %w", err)
	}

	if err := s.chatRepo.UpdateTurnResponse(ctx, turn.ID, answer); err != nil {
		return nil, fmt.Errorf("failed to update turn response: %w", err)
	}

	sources := make([]Source, 0, len(result.Hits))
	for _, h := range result.Hits {
		sources = append(sources, Source{
			ChunkID: h.ChunkID,
			Score:   h.Score,
			Preview: s.text.TruncateForPreview(h.Content),
		})
	}

	return &ChatOutput{
		Answer:     answer,
		Decision:   result.Decision,
		Confidence: result.Confidence,
		Sources:    sources,
		TraceID:    trace.ID,
	}, nil
}

// generateAnswer builds the grounded generation request. A DISCLAIMER with
// zero hits short-circuits to the canned response so no generation call is
// spent when there is nothing to ground it in; a DISCLAIMER with hits still
// generates so the model can explain what little was found.
func (s *ChatService) generateAnswer(ctx context.Context, question string, result *domain.RetrievalResult, allergyMode bool) (string, error) {
	if result.Decision == domain.DecisionDisclaimer && len(result.Hits) == 0 {
		return s.prompt.NoEvidenceResponse(), nil
	}

	evidence := make([]EvidenceChunk, 0, len(result.Hits))
	for _, h := range result.Hits {
		evidence = append(evidence, EvidenceChunk{ChunkID: h.ChunkID, Content: h.Content})
	}

	systemPrompt := s.prompt.BuildSystemPrompt(allergyMode)
	userPrompt := s.prompt.BuildUserPrompt(question, evidence)

	answer, err := s.provider.Chat(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	if result.Decision == domain.DecisionSoftDisclaimer {
		answer = s.prompt.AddSoftDisclaimer(answer)
	}

	return answer, nil
}
