package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/recipe-suggestions/backend/internal/suggest"
)

// EmbeddingService is the default EmbeddingServiceInterface
type EmbeddingService struct{}

// NewEmbeddingService creates a new EmbeddingService
func NewEmbeddingService() *EmbeddingService {
	return &EmbeddingService{}
}

// GenerateEmbedding implements EmbeddingServiceInterface
func (s *EmbeddingService) GenerateEmbedding(text string) (pgvector.Vector, error) {
	return GenerateEmbedding(text), nil
}

// GenerateEmbedding returns a simple deterministic embedding for the given text.
// This implementation counts the total length, vowels and consonants.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	length := float32(len(text))
	return pgvector.NewVector([]float32{length, vowels, consonants})
}

// embeddingText is what a saved recipe is embedded from
func embeddingText(r suggest.Recipe) string {
	var b strings.Builder
	b.WriteString(r.Name)
	for _, ing := range r.Ingredients {
		b.WriteByte(' ')
		b.WriteString(ing.Item)
	}
	return b.String()
}
