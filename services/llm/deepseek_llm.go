package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const defaultDeepSeekBaseURL = "https://api.deepseek.com/v1"

// DeepSeekClient is the fast/low-cost provider. DeepSeek speaks the
// OpenAI chat-completions wire protocol (POST {base}/chat/completions
// with a bearer token, answer in choices[0].message.content), so the
// client is built on go-openai with a custom base URL.
type DeepSeekClient struct {
	client *openai.Client
	model  string
}

func NewDeepSeekClient() (*DeepSeekClient, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	model := os.Getenv("DEEPSEEK_MODEL")
	baseURL := os.Getenv("DEEPSEEK_BASE_URL")

	if apiKey == "" {
		secretPath := "/run/secrets/deepseek_api_key"
		if content, err := os.ReadFile(secretPath); err == nil {
			apiKey = strings.TrimSpace(string(content))
			slog.Info("Read DeepSeek API Key from container secrets")
		}
	}
	if apiKey == "" {
		slog.Warn("DeepSeek API Key is missing.")
		return nil, fmt.Errorf("DEEPSEEK_API_KEY is missing")
	}
	if model == "" {
		model = DefaultDeepSeekModel
		slog.Info("DEEPSEEK_MODEL not set, defaulting to", "model", model)
	}
	if baseURL == "" {
		baseURL = defaultDeepSeekBaseURL
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}

	slog.Info("Initializing DeepSeek client", "model", model, "base_url", baseURL)
	return &DeepSeekClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (d *DeepSeekClient) Name() string { return ProviderDeepSeek }

func (d *DeepSeekClient) Model() string { return d.model }

// Complete implements the Client interface.
func (d *DeepSeekClient) Complete(ctx context.Context, messages []Message, params GenerationParams) (string, error) {
	model := d.model
	if params.Model != "" {
		model = params.Model
	}

	apiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		apiMessages = append(apiMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: apiMessages,
		Stream:   false,
	}
	if params.Temperature != nil {
		req.Temperature = *params.Temperature
	}
	if params.MaxTokens != nil {
		req.MaxTokens = *params.MaxTokens
	}

	slog.Debug("Sending chat completion request to DeepSeek", "model", model)

	resp, err := d.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", d.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		slog.Warn("DeepSeek returned no choices")
		return "", fmt.Errorf("DeepSeek returned no choices")
	}
	slog.Debug("Received response from DeepSeek", "finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}

// wrapError converts go-openai error types into a ProviderError so the
// handler sees one shape regardless of wire library.
func (d *DeepSeekClient) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{
			Provider:   ProviderDeepSeek,
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{
			Provider:   ProviderDeepSeek,
			StatusCode: reqErr.HTTPStatusCode,
			Body:       reqErr.Error(),
		}
	}
	return fmt.Errorf("DeepSeek API call failed: %w", err)
}
