package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptService_BuildSystemPrompt(t *testing.T) {
	svc := NewPromptService()

	base := svc.BuildSystemPrompt(false)
	assert.Contains(t, base, "NO inventes ingredientes ni alérgenos")
	assert.NotContains(t, base, "MODO ALERGIA ACTIVO")

	allergy := svc.BuildSystemPrompt(true)
	assert.Contains(t, allergy, "MODO ALERGIA ACTIVO")
	assert.Contains(t, allergy, "extremadamente conservador")
	assert.True(t, len(allergy) > len(base))
}

func TestPromptService_BuildUserPrompt_WithEvidence(t *testing.T) {
	svc := NewPromptService()

	prompt := svc.BuildUserPrompt("¿Tiene gluten?", []EvidenceChunk{
		{ChunkID: 1, Content: "contiene gluten"},
		{ChunkID: 2, Content: "apto celíacos"},
	})

	assert.Contains(t, prompt, "CONSULTA DEL COMENSAL:\n¿Tiene gluten?")
	assert.Contains(t, prompt, "[chunk:1] contiene gluten")
	assert.Contains(t, prompt, "[chunk:2] apto celíacos")
	assert.NotContains(t, prompt, "SIN_EVIDENCIA")
}

func TestPromptService_BuildUserPrompt_NoEvidence(t *testing.T) {
	svc := NewPromptService()

	prompt := svc.BuildUserPrompt("¿Tiene gluten?", nil)

	assert.Contains(t, prompt, "SIN_EVIDENCIA")
	assert.NotContains(t, prompt, "[chunk:")
}

func TestPromptService_NoEvidenceResponse(t *testing.T) {
	svc := NewPromptService()

	resp := svc.NoEvidenceResponse()
	assert.Contains(t, resp, "No puedo confirmarlo")
	assert.Contains(t, resp, "verificá con el personal")
}

func TestPromptService_AddSoftDisclaimer(t *testing.T) {
	svc := NewPromptService()

	answer := svc.AddSoftDisclaimer("La milanesa lleva pan rallado.")
	assert.True(t, len(answer) > len("La milanesa lleva pan rallado."))
	assert.Contains(t, answer, "La milanesa lleva pan rallado.")
	assert.Contains(t, answer, "la evidencia recuperada es parcial")
}
