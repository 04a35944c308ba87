// Package generator turns a prompt and its classification labels into
// Pulumi TypeScript by calling an OpenAI-compatible chat-completion API.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/instanti8/api/internal/config"
	"github.com/instanti8/api/internal/metrics"
	"github.com/instanti8/api/internal/models"
)

const maxResponseBytes = 4 << 20

var tracer = otel.Tracer("github.com/instanti8/api/internal/generator")

// Generator produces infrastructure code for a classified prompt
type Generator interface {
	Generate(ctx context.Context, prompt string, provider models.ProviderLabel, infraType models.InfraTypeLabel) (string, error)
}

// Client calls the Groq chat-completion endpoint
type Client struct {
	apiKey      string
	url         string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewClient creates a client from the service configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:      cfg.GroqAPIKey,
		url:         cfg.GroqAPIURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      &http.Client{Timeout: cfg.GenerationTimeout},
	}
}

// ChatMessage is one entry of a chat-completion conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the outbound request body
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// ChatCompletionResponse is the subset of the response body we read
type ChatCompletionResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// SystemPrompt builds the system instruction for a provider and infra type
func SystemPrompt(provider models.ProviderLabel, infraType models.InfraTypeLabel) string {
	return fmt.Sprintf(`You are an expert in cloud infrastructure and Pulumi.
Generate valid Pulumi TypeScript code for %s deployments.
Focus specifically on %s infrastructure.
Include proper error handling, security best practices, and resource tagging.`, provider, infraType)
}

// UserPrompt builds the user instruction wrapping the raw prompt
func UserPrompt(prompt string, provider models.ProviderLabel) string {
	return fmt.Sprintf(`Convert the following infrastructure description to Pulumi TypeScript code for %s:

%s

Format the response as valid TypeScript code only, with no explanations or markdown.
The code should be ready to use with Pulumi CLI.
`, provider, prompt)
}

// Generate makes exactly one chat-completion call and returns the first
// choice's content verbatim.
func (c *Client) Generate(ctx context.Context, prompt string, provider models.ProviderLabel, infraType models.InfraTypeLabel) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingCredential
	}

	ctx, span := tracer.Start(ctx, "generator.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", c.model),
		attribute.String("iac.provider", provider.String()),
		attribute.String("iac.infra_type", infraType.String()),
	)

	start := time.Now()
	code, err := c.complete(ctx, ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: SystemPrompt(provider, infraType)},
			{Role: "user", Content: UserPrompt(prompt, provider)},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		metrics.ObserveRemote("error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	metrics.ObserveRemote("success", start)
	return code, nil
}

func (c *Client) complete(ctx context.Context, body ChatCompletionRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", &RemoteError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &RemoteError{Err: fmt.Errorf("groq request: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &RemoteError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &RemoteError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed ChatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &RemoteError{StatusCode: resp.StatusCode, Body: string(raw), Err: fmt.Errorf("decode: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &RemoteError{StatusCode: resp.StatusCode, Body: string(raw), Err: errors.New("empty response")}
	}
	msg := parsed.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", &RemoteError{StatusCode: resp.StatusCode, Body: string(raw), Err: errors.New("missing message content")}
	}

	return *msg.Content, nil
}
