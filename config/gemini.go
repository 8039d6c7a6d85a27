package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// NewGeminiModel creates the generative model used by the AI assistant. The
// API key and model name come in as explicit configuration; nothing in the
// pipeline reads them from the environment at call time.
func NewGeminiModel(ctx context.Context, apiKey, modelName string) (*genai.GenerativeModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}

	slog.Info("Gemini client initialized", "model", modelName)
	return client.GenerativeModel(modelName), nil
}
