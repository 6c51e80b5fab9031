package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultEmbedModel is the model used for generating embeddings
	DefaultEmbedModel = "nomic-embed-text"
	// DefaultChatModel is the model used for answer generation
	DefaultChatModel = "llama3.2:1b"
	// DefaultEmbedDimensions is the expected dimension of embeddings
	DefaultEmbedDimensions = 768

	defaultEmbedTimeout  = 60 * time.Second
	defaultChatTimeout   = 300 * time.Second
	defaultHealthTimeout = 3 * time.Second
)

// ErrEmptyText is returned when text is empty
var ErrEmptyText = errors.New("text cannot be empty")

// Config holds client configuration for the Ollama inference endpoint.
type Config struct {
	BaseURL         string
	EmbedModel      string
	ChatModel       string
	EmbedTimeout    time.Duration
	ChatTimeout     time.Duration
	HealthTimeout   time.Duration
	EmbedDimensions int
}

// Client wraps the Ollama HTTP API for embeddings and chat generation.
// Each operation carries its own timeout budget; there are no retries here.
type Client struct {
	baseURL       string
	embedModel    string
	chatModel     string
	embedTimeout  time.Duration
	chatTimeout   time.Duration
	healthTimeout time.Duration
	dimensions    int
	httpClient    *http.Client
}

// NewClient creates a new Client with explicit configuration, filling defaults.
func NewClient(cfg Config) *Client {
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = DefaultEmbedModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbedTimeout <= 0 {
		cfg.EmbedTimeout = defaultEmbedTimeout
	}
	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = defaultChatTimeout
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = defaultHealthTimeout
	}
	if cfg.EmbedDimensions <= 0 {
		cfg.EmbedDimensions = DefaultEmbedDimensions
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		embedModel:    cfg.EmbedModel,
		chatModel:     cfg.ChatModel,
		embedTimeout:  cfg.EmbedTimeout,
		chatTimeout:   cfg.ChatTimeout,
		healthTimeout: cfg.HealthTimeout,
		dimensions:    cfg.EmbedDimensions,
		httpClient:    &http.Client{},
	}
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Embed generates an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	ctx, cancel := context.WithTimeout(ctx, c.embedTimeout)
	defer cancel()

	body, status, err := c.post(ctx, "/api/embeddings", embedRequest{
		Model:  c.embedModel,
		Prompt: text,
	})
	if err != nil {
		return nil, classifyTransportError("embedding request failed", err)
	}

	if status != http.StatusOK {
		return nil, NewError(ErrKindResponse,
			fmt.Sprintf("embeddings returned status %d: %s", status, truncateBody(body)), nil)
	}

	var resp embedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewError(ErrKindResponse, "embeddings returned malformed payload", err)
	}

	if len(resp.Embedding) == 0 {
		return nil, NewError(ErrKindResponse, "embeddings response missing 'embedding' field", nil)
	}

	if len(resp.Embedding) != c.dimensions {
		return nil, NewError(ErrKindResponse,
			fmt.Sprintf("embedding has %d dimensions, expected %d", len(resp.Embedding), c.dimensions), nil)
	}

	return resp.Embedding, nil
}

// Chat generates a response from system and user prompts. A missing or
// empty content field is returned as an empty string, not an error.
func (c *Client) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.chatTimeout)
	defer cancel()

	body, status, err := c.post(ctx, "/api/chat", chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: false,
	})
	if err != nil {
		return "", classifyTransportError("chat request failed", err)
	}

	if status != http.StatusOK {
		return "", NewError(ErrKindResponse,
			fmt.Sprintf("chat returned status %d: %s", status, truncateBody(body)), nil)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", NewError(ErrKindResponse, "chat returned malformed payload", err)
	}

	return strings.TrimSpace(resp.Message.Content), nil
}

// IsReachable probes the endpoint's liveness. Every failure, of any kind,
// is reported as false.
func (c *Client) IsReachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

func classifyTransportError(message string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrKindTimeout, message, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewError(ErrKindTimeout, message, err)
	}
	return NewError(ErrKindConnection, message, err)
}

func truncateBody(body []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
