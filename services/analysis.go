package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"corretor/models"

	"go.uber.org/zap"
)

// MinEssayChars is the minimum trimmed essay length, in characters, the service accepts.
const MinEssayChars = 50

const fallbackFeedback = "Análise temporariamente indisponível"

// AnalysisService turns an essay into a scorecard by delegating the grading
// to a Generator. It holds no per-request state.
type AnalysisService struct {
	generator Generator
	rubric    Rubric
	logger    *zap.Logger
}

// NewAnalysisService wires a Generator and rubric into a service.
func NewAnalysisService(generator Generator, rubric Rubric, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{generator: generator, rubric: rubric, logger: logger}
}

// ValidateEssay checks the minimum length of the trimmed essay.
// Length is counted in runes, so a character outside the BMP counts once.
func ValidateEssay(essay string) error {
	if utf8.RuneCountInString(strings.TrimSpace(essay)) < MinEssayChars {
		return ErrEssayTooShort
	}
	return nil
}

// Analyze validates the essay, asks the provider for a scorecard and parses
// it. Unusable provider output is replaced by the fallback record; only
// validation and provider call failures are returned as errors.
func (s *AnalysisService) Analyze(ctx context.Context, essay string) (Analysis, error) {
	s.logger.Info("analysis started", zap.Int("essay_chars", utf8.RuneCountInString(essay)))

	if err := ValidateEssay(essay); err != nil {
		return Analysis{}, err
	}

	prompt := BuildPrompt(s.rubric, essay)
	s.logger.Info("prompt submitted", zap.Int("prompt_chars", utf8.RuneCountInString(prompt)))

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		err = classifyProviderError(err)
		s.logger.Error("provider call failed", zap.Error(err))
		return Analysis{}, fmt.Errorf("generate analysis: %w", err)
	}

	analysis, err := ParseAnalysis(text)
	if err != nil {
		s.logger.Warn("provider response parse failed, using fallback",
			zap.Error(err),
			zap.String("raw", text),
		)
		return fallback(), nil
	}
	if analysis.Partial {
		s.logger.Debug("provider response only partially fits the scorecard", zap.Error(analysis.PartialErr))
	}
	return analysis, nil
}

// FallbackAnalysis returns a fresh copy of the fixed record served when the
// provider answer cannot be used.
func FallbackAnalysis() models.EssayAnalysis {
	titles := []string{
		"Domínio da Escrita",
		"Compreensão do Tema",
		"Argumentação",
		"Coesão e Coerência",
		"Proposta de Intervenção",
	}
	competencies := make([]models.CompetencyScore, len(titles))
	for i, title := range titles {
		competencies[i] = models.CompetencyScore{
			Number:   i + 1,
			Title:    title,
			Score:    150,
			Feedback: fallbackFeedback,
		}
	}

	return models.EssayAnalysis{
		OverallScore:      750,
		Competencies:      competencies,
		Suggestions:       []string{"Tente novamente para análise detalhada"},
		StrengthsSummary:  "Redação enviada com sucesso",
		WeaknessesSummary: "Aguardando processamento completo",
	}
}

func fallback() Analysis {
	card := FallbackAnalysis()
	raw, err := json.Marshal(card)
	if err != nil {
		panic("marshal fallback analysis: " + err.Error())
	}
	return Analysis{Raw: raw, Scorecard: card, Fallback: true}
}
