package mocks

import (
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/mock"
)

// MockEmbeddingService is a mock implementation of the embedding service
type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) GenerateEmbedding(text string) (pgvector.Vector, error) {
	args := m.Called(text)
	return args.Get(0).(pgvector.Vector), args.Error(1)
}

// StaticEmbeddingService returns the same vector for every input
type StaticEmbeddingService struct{}

func (StaticEmbeddingService) GenerateEmbedding(text string) (pgvector.Vector, error) {
	return pgvector.NewVector([]float32{0.1, 0.2, 0.3}), nil
}
