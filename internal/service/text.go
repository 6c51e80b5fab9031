package service

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	excessNewlinesRe  = regexp.MustCompile(`\n{3,}`)
)

// allergyTriggers is the vocabulary of allergen and dietary-restriction
// terms that switch generation into conservative mode. Matching is a
// case-insensitive substring check, so stems like "alerg" and "intoler"
// cover their inflections.
var allergyTriggers = []string{
	"alerg",
	"celiac",
	"celíac",
	"sin tacc",
	"gluten",
	"lactosa",
	"lácteo",
	"lacteos",
	"lácteos",
	"mani",
	"maní",
	"huevo",
	"soja",
	"pescado",
	"marisco",
	"sesamo",
	"sésamo",
	"intoler",
	"trazas",
	"contiene",
	"puede contener",
}

// ChunkConfig controls text chunking for knowledge indexing.
type ChunkConfig struct {
	ChunkSize    int
	Overlap      int
	PreviewChars int
}

// DefaultChunkConfig provides sane defaults for chunking.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		ChunkSize:    1200,
		Overlap:      200,
		PreviewChars: 220,
	}
}

// TextService handles text normalization, chunking, and query classification.
type TextService struct {
	cfg ChunkConfig
}

// NewTextService creates a new TextService instance
func NewTextService(cfg ChunkConfig) *TextService {
	if cfg.ChunkSize <= 0 {
		cfg = DefaultChunkConfig()
	}
	return &TextService{cfg: cfg}
}

// Normalize cleans whitespace: non-breaking spaces become ordinary spaces,
// runs of horizontal whitespace collapse to one space, 3+ newlines collapse
// to exactly 2, and leading/trailing whitespace is stripped.
func (s *TextService) Normalize(text string) string {
	text = strings.ReplaceAll(text, " ", " ")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = excessNewlinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Chunk normalizes text and splits it into overlapping windows. Empty input
// yields zero chunks. The window advances by chunk_size-overlap characters,
// floored to 1 so overlap >= chunk_size cannot stall the loop.
func (s *TextService) Chunk(text string) []string {
	text = s.Normalize(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	step := s.cfg.ChunkSize - s.cfg.Overlap
	if step < 1 {
		step = 1
	}

	chunks := make([]string, 0, len(runes)/step+1)
	for i := 0; i < len(runes); i += step {
		end := i + s.cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		part := strings.TrimSpace(string(runes[i:end]))
		if part != "" {
			chunks = append(chunks, part)
		}
	}

	return chunks
}

// IsAllergyQuery reports whether a query concerns allergies or dietary
// restrictions. Pure predicate, false on no match.
func (s *TextService) IsAllergyQuery(query string) bool {
	queryLower := strings.ToLower(query)
	for _, trigger := range allergyTriggers {
		if strings.Contains(queryLower, trigger) {
			return true
		}
	}
	return false
}

// TruncateForPreview produces a bounded single-line preview of text for
// human display. Never used as retrieval or generation input.
func (s *TextService) TruncateForPreview(text string) string {
	normalized := s.Normalize(text)
	runes := []rune(normalized)
	if len(runes) > s.cfg.PreviewChars {
		runes = runes[:s.cfg.PreviewChars]
	}
	return strings.ReplaceAll(string(runes), "\n", " ")
}
