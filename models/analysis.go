package models

import "encoding/json"

// CompetencyScore is the evaluation of a single rubric criterion.
type CompetencyScore struct {
	Number   int    `json:"numero"`
	Title    string `json:"titulo"`
	Score    int    `json:"nota"`
	Feedback string `json:"feedback"`
}

// EssayAnalysis is the scorecard returned for an essay.
// OverallScore is nominally the sum of the five 0-200 competency scores.
type EssayAnalysis struct {
	OverallScore      int               `json:"notaGeral"`
	Competencies      []CompetencyScore `json:"competencias"`
	Suggestions       []string          `json:"sugestoes"`
	StrengthsSummary  string            `json:"pontosFortesGerais"`
	WeaknessesSummary string            `json:"pontosFrageis"`
}

// AnalyzeRequest is the payload sent by the frontend to analyze an essay
type AnalyzeRequest struct {
	Redacao string `json:"redacao"`
}

// AnalyzeResponse is the success envelope. Data holds the analysis object
// exactly as it was accepted from the provider (or the fallback record).
type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
