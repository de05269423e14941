// Package scorecard renders an essay analysis for the terminal.
package scorecard

import (
	"fmt"
	"strings"

	"corretor/models"

	"github.com/charmbracelet/lipgloss"
)

const (
	maxCompetencyScore = 200
	maxOverallScore    = 1000
	cardWidth          = 72
)

var (
	colorHigh = lipgloss.Color("#00ff88")
	colorMid  = lipgloss.Color("#f5a623")
	colorLow  = lipgloss.Color("#ff4757")
	colorDim  = lipgloss.Color("#8a93a8")

	titleStyle   = lipgloss.NewStyle().Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorDim)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(cardWidth)
)

// scoreColor picks a color from the share of the maximum a score reaches.
func scoreColor(score, outOf int) lipgloss.Color {
	if outOf <= 0 {
		return colorDim
	}
	switch ratio := float64(score) / float64(outOf); {
	case ratio >= 0.8:
		return colorHigh
	case ratio >= 0.5:
		return colorMid
	default:
		return colorLow
	}
}

func scoreText(score, outOf int) string {
	return lipgloss.NewStyle().Bold(true).Foreground(scoreColor(score, outOf)).Render(fmt.Sprintf("%d/%d", score, outOf))
}

// Render formats the overall score, one card per competency, the strength and
// weakness summaries, and the suggestions.
func Render(a models.EssayAnalysis) string {
	blocks := []string{
		titleStyle.Render("Nota geral: ") + scoreText(a.OverallScore, maxOverallScore),
	}

	for _, c := range a.Competencies {
		header := fmt.Sprintf("Competência %d · %s", c.Number, c.Title)
		body := titleStyle.Render(header) + "  " + scoreText(c.Score, maxCompetencyScore)
		if c.Feedback != "" {
			body += "\n" + c.Feedback
		}
		blocks = append(blocks, cardStyle.Render(body))
	}

	blocks = append(blocks,
		headingStyle.Render("Pontos fortes"), orDash(a.StrengthsSummary),
		headingStyle.Render("Pontos a melhorar"), orDash(a.WeaknessesSummary),
	)

	if len(a.Suggestions) > 0 {
		lines := make([]string, len(a.Suggestions))
		for i, s := range a.Suggestions {
			lines[i] = "• " + s
		}
		blocks = append(blocks, headingStyle.Render("Sugestões"), strings.Join(lines, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return mutedStyle.Render("-")
	}
	return s
}
