package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextService_Normalize(t *testing.T) {
	svc := NewTextService(DefaultChunkConfig())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"only whitespace", "   \t  \n  ", ""},
		{"non-breaking spaces", "hola mundo", "hola mundo"},
		{"collapses tabs and spaces", "hola \t  mundo", "hola mundo"},
		{"collapses excess newlines", "a\n\n\n\nb", "a\n\nb"},
		{"keeps double newline", "a\n\nb", "a\n\nb"},
		{"trims edges", "  hola  ", "hola"},
		{"mixed", "  hola  \t mundo\n\n\n\nchau ", "hola mundo\n\nchau"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.Normalize(tt.input))
		})
	}
}

func TestTextService_Chunk_Empty(t *testing.T) {
	svc := NewTextService(DefaultChunkConfig())

	assert.Empty(t, svc.Chunk(""))
	assert.Empty(t, svc.Chunk("   \n\n  "))
}

func TestTextService_Chunk_ShortText(t *testing.T) {
	svc := NewTextService(DefaultChunkConfig())

	chunks := svc.Chunk("texto corto")
	assert.Equal(t, []string{"texto corto"}, chunks)
}

func TestTextService_Chunk_Overlap(t *testing.T) {
	svc := NewTextService(ChunkConfig{ChunkSize: 10, Overlap: 4, PreviewChars: 220})

	text := strings.Repeat("abcdefghij", 3) // 30 chars
	chunks := svc.Chunk(text)

	// step = 6, windows start at 0, 6, 12, 18, 24
	assert.Len(t, chunks, 5)
	assert.Equal(t, "abcdefghij", chunks[0])
	assert.Equal(t, "ghijabcdef", chunks[1])

	// consecutive chunks share the overlap region
	assert.Equal(t, chunks[0][6:], chunks[1][:4])
}

func TestTextService_Chunk_OverlapAtLeastStepOne(t *testing.T) {
	// overlap >= size must not stall the loop
	svc := NewTextService(ChunkConfig{ChunkSize: 5, Overlap: 5, PreviewChars: 220})

	chunks := svc.Chunk("abcdefgh")
	assert.NotEmpty(t, chunks)
	assert.Equal(t, "abcde", chunks[0])
	assert.Equal(t, "bcdef", chunks[1])
}

func TestTextService_Chunk_MultibyteRunes(t *testing.T) {
	svc := NewTextService(ChunkConfig{ChunkSize: 4, Overlap: 0, PreviewChars: 220})

	chunks := svc.Chunk("ñandú ñoquis")
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 4)
	}
	assert.Equal(t, "ñand", chunks[0])
}

func TestTextService_IsAllergyQuery(t *testing.T) {
	svc := NewTextService(DefaultChunkConfig())

	tests := []struct {
		query    string
		expected bool
	}{
		{"¿Tiene gluten la milanesa?", true},
		{"soy celíaco, puedo comer esto?", true},
		{"es apto para celiacos?", true},
		{"SOY ALÉRGICO al maní", true},
		{"es apto sin TACC?", true},
		{"tiene lactosa?", true},
		{"contiene huevo?", true},
		{"puede contener trazas de soja?", true},
		{"soy intolerante a la fructosa", true},
		{"¿Cuánto sale la milanesa?", false},
		{"qué postres hay?", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.IsAllergyQuery(tt.query))
		})
	}
}

func TestTextService_TruncateForPreview(t *testing.T) {
	svc := NewTextService(ChunkConfig{ChunkSize: 1200, Overlap: 200, PreviewChars: 10})

	assert.Equal(t, "abcdefghij", svc.TruncateForPreview("abcdefghijklmno"))
	assert.Equal(t, "corto", svc.TruncateForPreview("corto"))

	// newlines become spaces so previews stay single-line
	assert.Equal(t, "a b", svc.TruncateForPreview("a\nb"))
}
