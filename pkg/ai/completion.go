package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voicepost-team/voicepost/pkg/config"
)

// CompletionRequest is the fixed contract of the completion capability
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	JSONResponse bool
}

// CompletionClient abstracts the completion capability so the pipeline is
// agnostic to which model or vendor backs it, and so tests can inject mocks.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// OpenAIClient implements CompletionClient against any OpenAI-compatible
// chat completions endpoint (OpenAI, Groq, vLLM, ...).
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient creates a completion client from config. The model
// argument overrides cfg.Model when non-empty, so the same config can back
// both the generation model and the cheaper classifier model.
func NewOpenAIClient(cfg *config.CompletionConfig, model string) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if model == "" {
		model = cfg.Model
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: cfg.Timeout(),
	}
}

// Complete sends one system/user prompt pair and returns the assistant
// content. Every call is bounded by the configured timeout on top of
// whatever deadline the caller's context carries, so a stalled endpoint
// cannot hold a pipeline stage open. When JSONResponse is set the endpoint
// is asked for a strict JSON object; parsability is still the caller's
// responsibility to verify.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
	}
	if req.JSONResponse {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from completion endpoint")
	}
	return resp.Choices[0].Message.Content, nil
}
