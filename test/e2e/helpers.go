//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mesaviva/menurag/internal/api/handlers"
	"github.com/mesaviva/menurag/internal/ollama"
	"github.com/mesaviva/menurag/internal/repository"
	"github.com/mesaviva/menurag/internal/server"
	"github.com/mesaviva/menurag/internal/service"
	"github.com/mesaviva/menurag/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T          *testing.T
	Ctx        context.Context
	PostgresC  *testutil.PostgresContainer
	Pool       *pgxpool.Pool
	OllamaSrv  *httptest.Server
	ServerURL  string
	ServerSrv  *httptest.Server
	HTTPClient *http.Client
}

// dishKeywords maps a dish-identifying keyword to a deterministic
// embedding bucket. Texts sharing a bucket embed to the same unit
// vector, so their cosine similarity is exactly 1; texts in different
// buckets are orthogonal.
var dishKeywords = []string{
	"milanesa", "ñoquis", "risotto", "trucha", "quinoa",
	"sorrentinos", "tofu", "bife", "rabas", "flan",
}

func bucketFor(text string) int {
	lower := strings.ToLower(text)
	for i, kw := range dishKeywords {
		if strings.Contains(lower, kw) {
			return i
		}
	}
	return len(dishKeywords)
}

func bucketEmbedding(text string) []float64 {
	vec := make([]float64, 768)
	vec[bucketFor(text)] = 1.0
	return vec
}

// newFakeOllama returns an httptest server speaking the Ollama native
// API with deterministic keyword-bucket embeddings and a canned chat
// response.
func newFakeOllama() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": bucketEmbedding(req.Prompt),
		})
	})

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{
				"role":    "assistant",
				"content": "Respuesta generada a partir de la evidencia disponible.",
			},
		})
	})

	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"models": []string{}})
	})

	return httptest.NewServer(mux)
}

// SetupE2EEnv creates a full E2E test environment with a pgvector
// container, a fake inference server, and the HTTP API in-process.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	ollamaSrv := newFakeOllama()

	provider := ollama.NewClient(ollama.Config{
		BaseURL:         ollamaSrv.URL,
		EmbedModel:      "nomic-embed-text",
		ChatModel:       "llama3.2:1b",
		EmbedTimeout:    10 * time.Second,
		ChatTimeout:     10 * time.Second,
		HealthTimeout:   3 * time.Second,
		EmbedDimensions: 768,
	})

	dishRepo := repository.NewDishRepository(pool)
	chunkRepo := repository.NewChunkRepository(pool)
	embeddingRepo := repository.NewEmbeddingRepository(pool)
	chatRepo := repository.NewChatRepository(pool)

	textSvc := service.NewTextService(service.DefaultChunkConfig())
	promptSvc := service.NewPromptService()
	retrievalSvc := service.NewRetrievalService(embeddingRepo)
	chatSvc := service.NewChatService(provider, textSvc, promptSvc, retrievalSvc, chatRepo)
	seedSvc := service.NewSeedService(dishRepo, chunkRepo, textSvc)
	indexSvc := service.NewIndexService(chunkRepo, embeddingRepo, provider)

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:   handlers.NewChatHandler(chatSvc, 6, 12),
		DishHandler:   handlers.NewDishHandler(dishRepo),
		HealthHandler: handlers.NewHealthHandler(pool, provider),
		AdminHandler:  handlers.NewAdminHandler(seedSvc, indexSvc),
	})

	srv := httptest.NewServer(router)

	return &E2ETestEnv{
		T:          t,
		Ctx:        ctx,
		PostgresC:  pgC,
		Pool:       pool,
		OllamaSrv:  ollamaSrv,
		ServerURL:  srv.URL,
		ServerSrv:  srv,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup tears down all E2E resources
func (env *E2ETestEnv) Cleanup() {
	env.ServerSrv.Close()
	env.OllamaSrv.Close()
	env.Pool.Close()
	if err := env.PostgresC.Terminate(env.Ctx); err != nil {
		env.T.Logf("failed to terminate postgres container: %v", err)
	}
}

// APIResponse mirrors the server envelope
type APIResponse struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET against the test server
func (env *E2ETestEnv) Get(path string) (*APIResponse, int, error) {
	resp, err := env.HTTPClient.Get(env.ServerURL + path)
	if err != nil {
		return nil, 0, err
	}
	return env.parse(resp)
}

// Post performs a POST against the test server
func (env *E2ETestEnv) Post(path string, body interface{}) (*APIResponse, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(data)
	}

	resp, err := env.HTTPClient.Post(env.ServerURL+path, "application/json", reqBody)
	if err != nil {
		return nil, 0, err
	}
	return env.parse(resp)
}

func (env *E2ETestEnv) parse(resp *http.Response) (*APIResponse, int, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to parse response %q: %w", string(data), err)
	}

	return &apiResp, resp.StatusCode, nil
}
