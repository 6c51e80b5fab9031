package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mesaviva/menurag/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatQueryService struct {
	mock.Mock
}

func (m *MockChatQueryService) ProcessQuery(ctx context.Context, input service.ChatInput) (*service.ChatOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatOutput), args.Error(1)
}

func postChat(t *testing.T, h *ChatHandler, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Query(rec, req)
	return rec
}

func TestChatHandler_Query_AppliesTopKDefault(t *testing.T) {
	svc := new(MockChatQueryService)
	svc.On("ProcessQuery", mock.Anything, mock.MatchedBy(func(input service.ChatInput) bool {
		return input.TopK == 6
	})).Return(&service.ChatOutput{Answer: "ok"}, nil)

	h := NewChatHandler(svc, 6, 12)
	rec := postChat(t, h, ChatRequest{Question: "¿Qué lleva el flan?"})

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestChatHandler_Query_ClampsTopKToMax(t *testing.T) {
	svc := new(MockChatQueryService)
	svc.On("ProcessQuery", mock.Anything, mock.MatchedBy(func(input service.ChatInput) bool {
		return input.TopK == 12
	})).Return(&service.ChatOutput{Answer: "ok"}, nil)

	h := NewChatHandler(svc, 6, 12)
	rec := postChat(t, h, ChatRequest{Question: "¿Qué lleva el flan?", TopK: 50})

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestChatHandler_Query_BlankQuestion(t *testing.T) {
	svc := new(MockChatQueryService)
	h := NewChatHandler(svc, 6, 12)

	rec := postChat(t, h, ChatRequest{Question: "   \t "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ProcessQuery", mock.Anything, mock.Anything)
}

func TestChatHandler_Query_NonPositiveDishID(t *testing.T) {
	svc := new(MockChatQueryService)
	h := NewChatHandler(svc, 6, 12)

	badID := int64(0)
	rec := postChat(t, h, ChatRequest{Question: "¿Tiene gluten?", DishID: &badID})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ProcessQuery", mock.Anything, mock.Anything)
}

func TestChatHandler_Query_MalformedBody(t *testing.T) {
	svc := new(MockChatQueryService)
	h := NewChatHandler(svc, 6, 12)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Query(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
