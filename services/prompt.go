package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"corretor/models"
)

const exampleCriterionScore = 160

// BuildPrompt constructs the single instruction sent to the provider. The
// essay is embedded verbatim; the JSON example is derived from the rubric so
// the field names always match models.EssayAnalysis.
func BuildPrompt(r Rubric, essay string) string {
	var criteria strings.Builder
	for _, c := range r.Criteria {
		fmt.Fprintf(&criteria, "%d. %s (0 a %d pontos): %s\n", c.Number, c.Title, r.MaxScorePerCriterion, c.Description)
	}

	return fmt.Sprintf(
		`Atue como um avaliador especialista em redações do %s. Avalie a redação abaixo usando exatamente as %d competências a seguir, atribuindo a cada uma uma nota de 0 a %d pontos. A nota geral é a soma das competências (0 a %d pontos).

Competências:
%s
Redação:
"%s"

Formato JSON obrigatório (exemplo):
%s

Retorne APENAS um JSON válido nesse formato, sem texto adicional e sem formatação markdown.`,
		r.Name, len(r.Criteria), r.MaxScorePerCriterion, r.MaxOverallScore(),
		criteria.String(),
		essay,
		exampleJSON(r),
	)
}

func exampleJSON(r Rubric) string {
	example := models.EssayAnalysis{
		OverallScore:      exampleCriterionScore * len(r.Criteria),
		Competencies:      make([]models.CompetencyScore, 0, len(r.Criteria)),
		Suggestions:       []string{"Sugestão de melhoria 1", "Sugestão de melhoria 2"},
		StrengthsSummary:  "Resumo dos pontos fortes",
		WeaknessesSummary: "Resumo dos pontos frágeis",
	}
	for _, c := range r.Criteria {
		example.Competencies = append(example.Competencies, models.CompetencyScore{
			Number:   c.Number,
			Title:    c.Title,
			Score:    exampleCriterionScore,
			Feedback: "Comentário sobre a competência",
		})
	}

	data, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		panic("marshal prompt example: " + err.Error())
	}
	return string(data)
}
