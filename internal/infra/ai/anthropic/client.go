package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	domai "github.com/bryanwahyu/loan-insights/internal/domain/ai"
	"github.com/bryanwahyu/loan-insights/internal/infra/ai/prompt"
)

const (
	defaultModel     = "claude-haiku-4-5-20251001"
	defaultMaxTokens = 150
	providerName     = "anthropic"
)

// Client summarizes through the Anthropic Messages API.
type Client struct {
	client    anthropicsdk.Client
	apiKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

func NewClient(apiKey, model, baseURL string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	return &Client{client: anthropicsdk.NewClient(opts...), apiKey: apiKey, Model: model}
}

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

	msg, err := c.client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(model),
		MaxTokens: int64(maxTokens),
		System:    []anthropicsdk.TextBlockParam{{Text: prompt.GetSystemPrompt()}},
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(domai.FillTemplate(promptTemplate, statistics))),
		},
	})
	if err != nil {
		var apiErr *anthropicsdk.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			err = fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
		}
		return "", &domai.SummaryGenerationError{Provider: providerName, Err: err}
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", &domai.SummaryGenerationError{Provider: providerName, Err: errors.New("empty completion")}
	}
	return text, nil
}
