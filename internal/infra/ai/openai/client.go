package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/loan-insights/internal/domain/ai"
	"github.com/bryanwahyu/loan-insights/internal/infra/ai/prompt"
)

const (
	defaultModel     = "gpt-3.5-turbo"
	defaultMaxTokens = 150
	providerName     = "openai"
)

type Client struct {
	*openai.Client
	apiKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// NewClient builds a client; baseURL is optional (OpenAI-compatible gateways, tests).
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), apiKey: apiKey, Model: model}
}

// Summarize implementasi ai.Summarizer
func (c *Client) Summarize(ctx context.Context, statistics, promptTemplate string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", &domai.SummaryGenerationError{Provider: providerName, Err: domai.ErrMissingCredential}
	}
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: domai.FillTemplate(promptTemplate, statistics)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		if statusCode(err) == http.StatusTooManyRequests {
			err = fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
		}
		return "", &domai.SummaryGenerationError{Provider: providerName, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &domai.SummaryGenerationError{Provider: providerName, Err: errors.New("empty completion")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
