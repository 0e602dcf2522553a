package providers

import (
	"context"
	"fmt"

	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/generation/gemini"
	"rai-review-backend/internal/generation/openai"
	"rai-review-backend/internal/shared/config"
)

const defaultOpenAIModel = "gpt-4o-mini"

// New returns the generation client selected by cfg.LLMProvider.
// The placeholder client is returned for an unset or unknown provider.
func New(ctx context.Context, cfg config.Config) (generation.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		model := cfg.LLMModel
		if model == "" {
			model = defaultOpenAIModel
		}
		c, err := openai.NewClient(cfg.OpenAIAPIKey, model, cfg.GenerationTimeout)
		if err != nil {
			return nil, fmt.Errorf("openai provider: %w", err)
		}
		return c, nil
	case "gemini":
		c, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		return c, nil
	default:
		return generation.PlaceholderClient{}, nil
	}
}
