package nvidia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/llm"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

// Client talks to the NVIDIA inference endpoint through its OpenAI-compatible
// chat completions surface. Retries are handled here, not by the sdk, so the
// per-attempt timeout and backoff stay under our control.
type Client struct {
	baseURL    string
	model      string
	maxRetries int
	backoff    time.Duration
	timeout    time.Duration
	logger     *logger_i.Logger
}

func NewClient() *Client {
	return &Client{
		baseURL:    config.LLMBaseURL,
		model:      config.LLMModelName,
		maxRetries: config.LLMMaxRetries,
		backoff:    config.LLMRetryBackoff,
		timeout:    config.LLMAttemptTimeout,
		logger:     logger_i.NewLogger("nvidiaLLM"),
	}
}

// NewClientWithEndpoint exists for tests that stand up their own server.
func NewClientWithEndpoint(baseURL string, backoff time.Duration) *Client {
	c := NewClient()
	c.baseURL = baseURL
	c.backoff = backoff
	return c
}

func (c *Client) Generate(ctx context.Context, apiKey string, req llm.Request) (string, error) {
	if apiKey == "" {
		return "", errors.New("no api key available")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithMaxRetries(0),
	)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		MaxTokens:        openai.Int(int64(req.MaxTokens)),
		Temperature:      openai.Float(req.Temperature),
		TopP:             openai.Float(config.LLMTopP),
		FrequencyPenalty: openai.Float(config.LLMFrequencyPenalty),
		PresencePenalty:  openai.Float(config.LLMPresencePenalty),
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		answer, err := c.attempt(ctx, &client, params)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		c.logger.Warn("llm call failed", "attempt", attempt+1, "error", err)
	}
	return "", fmt.Errorf("llm call failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) attempt(ctx context.Context, client *openai.Client, params openai.ChatCompletionNewParams) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := client.Chat.Completions.New(attemptCtx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
