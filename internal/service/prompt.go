package service

import (
	"fmt"
	"strings"
)

const (
	systemPromptBase = "Sos un asistente de carta gastronómica.\n" +
		"REGLA CRÍTICA: NO inventes ingredientes ni alérgenos.\n" +
		"Solo afirmes 'contiene X' si aparece explícitamente en la EVIDENCIA.\n" +
		"Si falta evidencia o no está claro, decí: 'No puedo confirmarlo con la información disponible' " +
		"y sugerí verificar con el personal.\n" +
		"Respondé en español, claro, directo, sin marketing.\n" +
		"Formato:\n" +
		"1) Resumen (1-2 líneas)\n" +
		"2) Ingredientes (si hay evidencia)\n" +
		"3) Alérgenos (si hay evidencia; si no, 'No confirmado')\n" +
		"4) Adaptaciones posibles (si hay evidencia)\n" +
		"5) Nota de seguridad (si aplica)\n"

	allergyModeAddition = "\nMODO ALERGIA ACTIVO:\n" +
		"- Sé extremadamente conservador.\n" +
		"- Si hay duda o falta evidencia, marcá 'No confirmado' y recomendá verificación.\n"

	userPromptTemplate = "CONSULTA DEL COMENSAL:\n%s\n\n" +
		"EVIDENCIA (usar solo esto como fuente):\n%s\n\n" +
		"IMPORTANTE:\n" +
		"- Si la evidencia es 'SIN_EVIDENCIA' o no menciona el punto consultado, respondé con 'No puedo confirmarlo'.\n" +
		"- Al final agregá: Fuentes: [chunk:ID] ... (solo si usaste evidencia)\n"

	noEvidenceResponse = "No puedo confirmarlo con la información disponible en las fichas cargadas.\n\n" +
		"Si me decís el nombre exacto del plato o cargás la ficha correspondiente, lo reviso. " +
		"Por seguridad (especialmente por alérgenos), verificá con el personal."

	softDisclaimerSuffix = "\n\nNota: la evidencia recuperada es parcial; si es por alergias/intolerancias, " +
		"confirmá con el personal."

	noEvidenceMarker = "SIN_EVIDENCIA"
)

// EvidenceChunk pairs a chunk id with its content for prompt rendering.
type EvidenceChunk struct {
	ChunkID int64
	Content string
}

// PromptService builds generation prompts. Pure string construction,
// no I/O and no failure modes.
type PromptService struct{}

// NewPromptService creates a new PromptService instance
func NewPromptService() *PromptService {
	return &PromptService{}
}

// BuildSystemPrompt returns the base system instructions, with a stricter
// addendum when allergy mode is active.
func (s *PromptService) BuildSystemPrompt(allergyMode bool) string {
	if allergyMode {
		return systemPromptBase + allergyModeAddition
	}
	return systemPromptBase
}

// BuildUserPrompt renders the question and evidence block. Empty evidence
// substitutes the SIN_EVIDENCIA marker, never an empty block.
func (s *PromptService) BuildUserPrompt(question string, evidence []EvidenceChunk) string {
	evidenceBlock := noEvidenceMarker
	if len(evidence) > 0 {
		blocks := make([]string, 0, len(evidence))
		for _, e := range evidence {
			blocks = append(blocks, fmt.Sprintf("[chunk:%d] %s", e.ChunkID, e.Content))
		}
		evidenceBlock = strings.Join(blocks, "\n\n")
	}

	return fmt.Sprintf(userPromptTemplate, question, evidenceBlock)
}

// NoEvidenceResponse returns the canned answer used to bypass generation
// when retrieval produced zero hits.
func (s *PromptService) NoEvidenceResponse() string {
	return noEvidenceResponse
}

// AddSoftDisclaimer appends the verification disclaimer to an answer.
func (s *PromptService) AddSoftDisclaimer(answer string) string {
	return answer + softDisclaimerSuffix
}
