package textgen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nickzanarak/Edu/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// ollamaClient runs prompts against a local Ollama server. Structured
// output from small local models is less reliable than the hosted API,
// so callers rely on the tolerant JSON extraction in parse.go.
type ollamaClient struct {
	llm *ollama.LLM
}

// NewOllamaGenerator creates a Generator backed by a local Ollama model.
func NewOllamaGenerator(cfg config.OllamaConfig, limits config.QuizGenConfig, logger *zap.Logger) (*Generator, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &Generator{
		client: &ollamaClient{llm: llm},
		limits: limits,
		logger: logger,
	}, nil
}

func (c *ollamaClient) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(float64(temperature)),
	)
}

func (c *ollamaClient) CompleteJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(float64(temperature)),
		llms.WithJSONMode(),
	)
}
