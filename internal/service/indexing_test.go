package service

import (
	"context"
	"testing"

	"github.com/mesaviva/menurag/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUnindexedChunkRepository is a mock implementation of UnindexedChunkRepository
type MockUnindexedChunkRepository struct {
	mock.Mock
}

func (m *MockUnindexedChunkRepository) GetUnindexed(ctx context.Context) ([]*domain.Chunk, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Chunk), args.Error(1)
}

// MockEmbeddingRepository is a mock implementation of EmbeddingRepositoryInterface
type MockEmbeddingRepository struct {
	mock.Mock
}

func (m *MockEmbeddingRepository) Create(ctx context.Context, chunkID int64, embedding []float32) error {
	args := m.Called(ctx, chunkID, embedding)
	return args.Error(0)
}

func TestIndexService_IndexPending(t *testing.T) {
	chunkRepo := new(MockUnindexedChunkRepository)
	embeddingRepo := new(MockEmbeddingRepository)
	provider := new(MockProviderClient)
	svc := NewIndexService(chunkRepo, embeddingRepo, provider)

	chunks := []*domain.Chunk{
		{ID: 1, Content: "ficha uno"},
		{ID: 2, Content: "ficha dos"},
	}
	embedding := []float32{0.1, 0.2}

	chunkRepo.On("GetUnindexed", mock.Anything).Return(chunks, nil)
	provider.On("Embed", mock.Anything, "ficha uno").Return(embedding, nil)
	provider.On("Embed", mock.Anything, "ficha dos").Return(embedding, nil)
	embeddingRepo.On("Create", mock.Anything, int64(1), embedding).Return(nil)
	embeddingRepo.On("Create", mock.Anything, int64(2), embedding).Return(nil)

	created, err := svc.IndexPending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, created)
	embeddingRepo.AssertExpectations(t)
}

func TestIndexService_IndexPending_NothingToDo(t *testing.T) {
	chunkRepo := new(MockUnindexedChunkRepository)
	embeddingRepo := new(MockEmbeddingRepository)
	provider := new(MockProviderClient)
	svc := NewIndexService(chunkRepo, embeddingRepo, provider)

	chunkRepo.On("GetUnindexed", mock.Anything).Return([]*domain.Chunk{}, nil)

	created, err := svc.IndexPending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, created)
	provider.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything)
}

func TestIndexService_IndexPending_ProviderErrorAbortsBatch(t *testing.T) {
	chunkRepo := new(MockUnindexedChunkRepository)
	embeddingRepo := new(MockEmbeddingRepository)
	provider := new(MockProviderClient)
	svc := NewIndexService(chunkRepo, embeddingRepo, provider)

	chunks := []*domain.Chunk{
		{ID: 1, Content: "ficha uno"},
		{ID: 2, Content: "ficha dos"},
	}
	embedding := []float32{0.1}

	chunkRepo.On("GetUnindexed", mock.Anything).Return(chunks, nil)
	provider.On("Embed", mock.Anything, "ficha uno").Return(embedding, nil)
	embeddingRepo.On("Create", mock.Anything, int64(1), embedding).Return(nil)
	provider.On("Embed", mock.Anything, "ficha dos").Return(nil, assert.AnError)

	created, err := svc.IndexPending(context.Background())

	// the chunk embedded before the failure stays indexed
	assert.Equal(t, 1, created)
	assert.ErrorIs(t, err, assert.AnError)
	embeddingRepo.AssertNumberOfCalls(t, "Create", 1)
}
