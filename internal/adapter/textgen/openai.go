package textgen

import (
	"context"
	"errors"
	"net/http"

	"github.com/Nickzanarak/Edu/internal/config"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// openAIClient calls the OpenAI chat completion API with JSON response
// format where structured output is required.
type openAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a Generator backed by the OpenAI API.
func NewOpenAIGenerator(cfg config.OpenAIConfig, limits config.QuizGenConfig, logger *zap.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key cannot be empty")
	}
	if cfg.Model == "" {
		return nil, errors.New("OpenAI model name cannot be empty")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &Generator{
		client: &openAIClient{
			client: openai.NewClientWithConfig(clientCfg),
			model:  cfg.Model,
		},
		limits: limits,
		logger: logger,
	}, nil
}

func (c *openAIClient) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	return c.complete(ctx, prompt, temperature, nil)
}

func (c *openAIClient) CompleteJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	return c.complete(ctx, prompt, temperature, &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	})
}

func (c *openAIClient) complete(ctx context.Context, prompt string, temperature float32, format *openai.ChatCompletionResponseFormat) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:    temperature,
		ResponseFormat: format,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
