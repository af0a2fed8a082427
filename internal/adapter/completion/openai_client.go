package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/logger"

	"go.uber.org/zap"
)

// OpenAIClient implements domain.CompletionClient against a chat-completion
// API. The credential and model are injected at construction; nothing is read
// from ambient process state.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIClient creates a client for the public OpenAI endpoint.
// timeout bounds each completion request at the HTTP client level.
func NewOpenAIClient(apiKey, model string, temperature float32, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI model name cannot be empty")
	}
	return NewOpenAIClientWithConfig(openai.DefaultConfig(apiKey), model, temperature, timeout), nil
}

// NewOpenAIClientWithConfig creates a client with a custom client config,
// used to point the adapter at a compatible endpoint or a test server.
// A positive timeout replaces the config's HTTP client.
func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string, temperature float32, timeout time.Duration) *OpenAIClient {
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
	}
}

// Complete sends a single-turn system+user request and returns the raw text
// of the first choice. No retries, no backoff, no streaming.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", mapCompletionError(err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewCompletionError(fmt.Errorf("completion response contained no choices"))
	}

	return resp.Choices[0].Message.Content, nil
}

// mapCompletionError translates transport/API failures into the domain error
// taxonomy. 429 and 402 carry their own codes so the handler can propagate the
// status; everything else surfaces as a completion failure.
func mapCompletionError(err error) error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	logger.Get().Error("Completion service call failed",
		zap.Int("status", status),
		zap.Error(err))

	switch status {
	case http.StatusTooManyRequests:
		return domain.NewRateLimitError(err)
	case http.StatusPaymentRequired:
		return domain.NewPaymentRequiredError(err)
	default:
		return domain.NewCompletionError(err)
	}
}

var _ domain.CompletionClient = (*OpenAIClient)(nil)
