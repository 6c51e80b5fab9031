package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mesaviva/menurag/internal/api/handlers"
	"github.com/mesaviva/menurag/internal/domain"
	"github.com/mesaviva/menurag/internal/pagination"
	"github.com/mesaviva/menurag/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) ProcessQuery(ctx context.Context, input service.ChatInput) (*service.ChatOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatOutput), args.Error(1)
}

type MockDishLister struct {
	mock.Mock
}

func (m *MockDishLister) GetByID(ctx context.Context, id int64) (*domain.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dish), args.Error(1)
}

func (m *MockDishLister) ListActive(ctx context.Context, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.Dish], error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.PageResult[*domain.Dish]), args.Error(1)
}

type MockDBPinger struct {
	mock.Mock
}

func (m *MockDBPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProviderChecker struct {
	mock.Mock
}

func (m *MockProviderChecker) IsReachable(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

type MockSeeder struct {
	mock.Mock
}

func (m *MockSeeder) SeedDishes(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) IndexPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func setupRouter() (http.Handler, *MockChatService, *MockDishLister, *MockDBPinger, *MockProviderChecker, *MockSeeder, *MockIndexer) {
	chatSvc := new(MockChatService)
	dishes := new(MockDishLister)
	db := new(MockDBPinger)
	provider := new(MockProviderChecker)
	seeder := new(MockSeeder)
	indexer := new(MockIndexer)

	cfg := RouterConfig{
		ChatHandler:   handlers.NewChatHandler(chatSvc, 6, 12),
		DishHandler:   handlers.NewDishHandler(dishes),
		HealthHandler: handlers.NewHealthHandler(db, provider),
		AdminHandler:  handlers.NewAdminHandler(seeder, indexer),
	}

	router := NewRouter(cfg)
	return router, chatSvc, dishes, db, provider, seeder, indexer
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router, _, _, db, provider, _, _ := setupRouter()

	db.On("Ping", mock.Anything).Return(nil)
	provider.On("IsReachable", mock.Anything).Return(true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "ok", data["database"])
	assert.Equal(t, "ok", data["ollama"])
}

func TestRouter_HealthEndpoint_ProviderDown(t *testing.T) {
	router, _, _, db, provider, _, _ := setupRouter()

	db.On("Ping", mock.Anything).Return(nil)
	provider.On("IsReachable", mock.Anything).Return(false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, "unreachable", data["ollama"])
}

func TestRouter_ChatEndpoint(t *testing.T) {
	router, chatSvc, _, _, _, _, _ := setupRouter()

	expected := &service.ChatOutput{
		Answer:     "La milanesa lleva pan rallado.",
		Decision:   domain.DecisionAnswer,
		Confidence: 0.91,
		Sources:    []service.Source{{ChunkID: 1, Score: 0.91, Preview: "Milanesa..."}},
		TraceID:    7,
	}
	chatSvc.On("ProcessQuery", mock.Anything, service.ChatInput{Question: "¿Qué lleva la milanesa?", TopK: 6}).Return(expected, nil)

	body, _ := json.Marshal(map[string]string{"question": "¿Qué lleva la milanesa?"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "answer", data["decision"])
	assert.InDelta(t, 0.91, data["confidence"], 0.0001)
	chatSvc.AssertExpectations(t)
}

func TestRouter_ChatEndpoint_EmptyQuestion(t *testing.T) {
	router, _, _, _, _, _, _ := setupRouter()

	body, _ := json.Marshal(map[string]string{"question": "   "})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_DishList(t *testing.T) {
	router, _, dishes, _, _, _, _ := setupRouter()

	page := &pagination.PageResult[*domain.Dish]{
		Items: []*domain.Dish{{ID: 1, Name: "Milanesa napolitana", Category: "principal", IsActive: true}},
	}
	dishes.On("ListActive", mock.Anything, (*pagination.Cursor)(nil), 20).Return(page, nil)

	req := httptest.NewRequest(http.MethodGet, "/dishes", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	dishes.AssertExpectations(t)
}

func TestRouter_AdminSeed(t *testing.T) {
	router, _, _, _, _, seeder, _ := setupRouter()

	seeder.On("SeedDishes", mock.Anything).Return("Seed OK: 10 platos + fichas cargadas.", nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/seed", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	seeder.AssertExpectations(t)
}

func TestRouter_AdminIndex(t *testing.T) {
	router, _, _, _, _, _, indexer := setupRouter()

	indexer.On("IndexPending", mock.Anything).Return(12, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/index", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.InDelta(t, 12, data["indexed"], 0.0001)
	indexer.AssertExpectations(t)
}
