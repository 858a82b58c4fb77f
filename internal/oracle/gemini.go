package oracle

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiConfig holds configuration for the Gemini provider.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string

	// Model is the model name to query.
	// Defaults to "gemini-2.0-flash" if empty.
	Model string
}

// Gemini generates completions through the Gemini API. It exists for
// model-comparison runs against the Azure deployments.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("oracle: create gemini client: %w", err)
	}

	return &Gemini{client: client, model: cfg.Model}, nil
}

// Generate sends one generation request and returns the concatenated text
// parts of the response.
func (g *Gemini) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens:   int32(maxTokens),
		Temperature:       genai.Ptr(float32(sampleTemperature)),
		SystemInstruction: genai.NewContentFromText(systemMessage, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("oracle: gemini generate: %w", err)
	}
	return resp.Text(), nil
}
