package genai

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// OpenRouterConfig carries the settings for the hosted model gateway.
type OpenRouterConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// OpenRouter is a Generator backed by the OpenRouter chat-completions API.
// The wire protocol is OpenAI-compatible, so only the base URL and key
// differ from a stock OpenAI client.
type OpenRouter struct {
	client  *openai.Client
	timeout time.Duration
	retries int
}

var _ Generator = (*OpenRouter)(nil)

// NewOpenRouter builds the gateway client. It returns ErrNotConfigured when
// no API key is set so callers can wire their deterministic fallbacks at
// startup instead of failing per request.
func NewOpenRouter(cfg OpenRouterConfig) (*OpenRouter, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	return &OpenRouter{
		client:  openai.NewClientWithConfig(cc),
		timeout: timeout,
		retries: retries,
	}, nil
}

// Generate sends one prompt exchange and returns the trimmed completion text.
// Transient failures are retried with linear backoff and jitter; the parent
// context cancels retries immediately.
func (o *OpenRouter) Generate(ctx context.Context, req Request) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	creq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
	}
	if req.MaxTokens > 0 {
		creq.MaxTokens = req.MaxTokens
	}

	var resp openai.ChatCompletionResponse
	var err error
	for attempt := 1; attempt <= o.retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
		resp, err = o.client.CreateChatCompletion(attemptCtx, creq)
		cancel()

		if err == nil && len(resp.Choices) > 0 {
			return strings.TrimSpace(resp.Choices[0].Message.Content), nil
		}
		if err == nil {
			err = fmt.Errorf("chat completion returned no choices")
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt < o.retries {
			backoff := time.Duration(attempt)*time.Second + time.Duration(rand.Intn(1000))*time.Millisecond
			log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).Msg("openrouter request failed, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", fmt.Errorf("openrouter: chat completion failed after %d attempts: %w", o.retries, err)
}
