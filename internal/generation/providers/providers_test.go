package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rai-review-backend/internal/shared/config"
)

func TestNewSelectsProvider(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, config.Config{LLMProvider: "placeholder"})
	require.NoError(t, err)
	assert.Equal(t, "placeholder", c.Name())

	c, err = New(ctx, config.Config{LLMProvider: "openai", OpenAIAPIKey: "k", GenerationTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())

	c, err = New(ctx, config.Config{LLMProvider: "gemini", GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", c.Name())
}

func TestNewReportsMissingKey(t *testing.T) {
	_, err := New(context.Background(), config.Config{LLMProvider: "openai"})
	assert.Error(t, err)
	_, err = New(context.Background(), config.Config{LLMProvider: "gemini"})
	assert.Error(t, err)
}
