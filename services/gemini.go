package services

import (
	"context"
	"errors"
	"fmt"

	"corretor/config"

	"google.golang.org/genai"
)

// Generator produces a single free-form text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator is the Generator backed by the Gemini API. It is created
// once at startup and is safe for concurrent use.
type GeminiGenerator struct {
	client *genai.Client
	cfg    config.GeminiConfig
}

// NewGeminiGenerator creates the provider client from configuration.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, cfg: cfg}, nil
}

// Model returns the configured model identifier.
func (g *GeminiGenerator) Model() string {
	return g.cfg.Model
}

// Generate sends one prompt and returns the completion text. The call is
// bounded by the configured timeout and never retried.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), g.contentConfig())
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (g *GeminiGenerator) contentConfig() *genai.GenerateContentConfig {
	// Essay themes often touch violence or discrimination; block only high-probability harm.
	threshold := genai.HarmBlockThresholdBlockOnlyHigh
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.cfg.Temperature),
		ResponseMIMEType: "application/json",
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: threshold},
			{Category: genai.HarmCategoryHateSpeech, Threshold: threshold},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: threshold},
			{Category: genai.HarmCategoryDangerousContent, Threshold: threshold},
		},
	}
}
