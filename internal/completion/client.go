// Package completion performs the single, non-streaming chat-completion call
// against an OpenAI-compatible endpoint. It adds no retries, backoff, or
// timeouts of its own; the caller's context and the transport defaults apply.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-wellbeing-backend/internal/conversation"
)

// ErrNoAPIKey is returned by Complete when no bearer token is configured.
var ErrNoAPIKey = errors.New("completion api key not configured")

// Config describes the upstream completion endpoint.
type Config struct {
	// BaseURL is the API root, e.g. https://gen.ai.kku.ac.th/api/v1. A full
	// .../chat/completions URL is accepted as well.
	BaseURL string
	APIKey  string
	Model   string
	// MaxTokens caps the reply length.
	MaxTokens int
	// HTTPClient overrides the transport (tests); nil uses http.DefaultClient.
	HTTPClient *http.Client
}

// Client calls the completion endpoint. It is safe for concurrent use.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
	hasKey    bool
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	key := strings.TrimSpace(cfg.APIKey)
	oc := openai.DefaultConfig(key)
	if base := normalizeBaseURL(cfg.BaseURL); base != "" {
		oc.BaseURL = base
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}
	return &Client{
		api:       openai.NewClientWithConfig(oc),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		hasKey:    key != "",
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete sends turns and returns the first choice's content. A successful
// response without choices yields an empty string and no error; non-2xx
// statuses and transport failures are returned as errors.
func (c *Client) Complete(ctx context.Context, turns []conversation.Turn) (string, error) {
	tr := otel.Tracer("completion/Client")
	ctx, span := tr.Start(ctx, "Complete",
		trace.WithAttributes(
			attribute.String("llm.model", c.model),
			attribute.Int("llm.messages", len(turns)),
		),
	)
	defer span.End()

	if !c.hasKey {
		span.SetStatus(codes.Error, ErrNoAPIKey.Error())
		return "", ErrNoAPIKey
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: t.Role, Content: t.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  msgs,
		MaxTokens: c.maxTokens,
		Stream:    false,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	span.SetAttributes(attribute.String("llm.finish_reason", string(resp.Choices[0].FinishReason)))
	return resp.Choices[0].Message.Content, nil
}

// normalizeBaseURL trims whitespace and trailing slashes and strips a
// trailing /chat/completions, since the SDK appends that path itself.
func normalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	u = strings.TrimSuffix(u, "/chat/completions")
	return strings.TrimRight(u, "/")
}
