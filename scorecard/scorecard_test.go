package scorecard

import (
	"testing"

	"corretor/models"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	a := models.EssayAnalysis{
		OverallScore: 820,
		Competencies: []models.CompetencyScore{
			{Number: 1, Title: "Domínio da Escrita", Score: 160, Feedback: "Boa estrutura"},
			{Number: 5, Title: "Proposta de Intervenção", Score: 80},
		},
		Suggestions:       []string{"Ampliar repertório"},
		StrengthsSummary:  "Argumentação sólida",
		WeaknessesSummary: "",
	}

	out := Render(a)

	assert.Contains(t, out, "820/1000")
	assert.Contains(t, out, "Competência 1 · Domínio da Escrita")
	assert.Contains(t, out, "160/200")
	assert.Contains(t, out, "Boa estrutura")
	assert.Contains(t, out, "80/200")
	assert.Contains(t, out, "Argumentação sólida")
	assert.Contains(t, out, "-")
	assert.Contains(t, out, "• Ampliar repertório")
}

func TestRender_NoSuggestions(t *testing.T) {
	out := Render(models.EssayAnalysis{OverallScore: 600})
	assert.NotContains(t, out, "Sugestões")
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, colorHigh, scoreColor(160, 200))
	assert.Equal(t, colorMid, scoreColor(100, 200))
	assert.Equal(t, colorLow, scoreColor(99, 200))
	assert.Equal(t, colorDim, scoreColor(1, 0))
}
