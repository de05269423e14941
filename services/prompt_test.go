package services

import (
	"encoding/json"
	"strings"
	"testing"

	"corretor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_EmbedsEssayAndRubric(t *testing.T) {
	essay := "A educação é \"essencial\" para o desenvolvimento do país.\nSegundo parágrafo."
	prompt := BuildPrompt(DefaultRubric(), essay)

	assert.Contains(t, prompt, `"`+essay+`"`)
	for _, c := range DefaultRubric().Criteria {
		assert.Contains(t, prompt, c.Title)
	}
	assert.Contains(t, prompt, "0 a 200 pontos")
	assert.Contains(t, prompt, "0 a 1000 pontos")
	assert.Contains(t, prompt, "APENAS um JSON")
}

func TestBuildPrompt_ExampleMatchesModel(t *testing.T) {
	prompt := BuildPrompt(DefaultRubric(), "texto")

	start := strings.Index(prompt, "{")
	end := strings.LastIndex(prompt, "}")
	require.True(t, start >= 0 && end > start)

	var example models.EssayAnalysis
	require.NoError(t, json.Unmarshal([]byte(prompt[start:end+1]), &example))
	assert.Equal(t, 800, example.OverallScore)
	require.Len(t, example.Competencies, CriteriaCount)
	assert.Equal(t, 5, example.Competencies[4].Number)

	// The example itself satisfies the shape check applied to provider output.
	_, err := ParseAnalysis(prompt[start : end+1])
	assert.NoError(t, err)
}
