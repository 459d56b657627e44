package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	anthropicAPIVersion    = "2023-06-01"
	defaultClaudeEndpoint  = "https://api.anthropic.com/v1/messages"
	claudeDefaultMaxTokens = 2048
)

type claudeRequest struct {
	Model     string          `json:"model"`
	Messages  []claudeMessage `json:"messages"`
	System    []systemBlock   `json:"system,omitempty"` // Top-level system prompt
	MaxTokens int             `json:"max_tokens"`

	Temperature *float32 `json:"temperature,omitempty"`
	Stream      bool     `json:"stream,omitempty"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type systemBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeResponse struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Role    string          `json:"role"`
	Content []claudeContent `json:"content"`
	Error   *claudeAPIError `json:"error,omitempty"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeAPIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ClaudeClient is the deep/reasoning provider. It speaks Anthropic's
// messages protocol: POST {base}/messages with x-api-key and
// anthropic-version headers, answer in content[0].text.
type ClaudeClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
}

func NewClaudeClient() (*ClaudeClient, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	model := os.Getenv("CLAUDE_MODEL")
	endpoint := os.Getenv("ANTHROPIC_BASE_URL")

	if apiKey == "" {
		secretPath := "/run/secrets/anthropic_api_key"
		if content, err := os.ReadFile(secretPath); err == nil {
			apiKey = strings.TrimSpace(string(content))
			slog.Info("Read Anthropic API Key from container secrets")
		}
	}
	if apiKey == "" {
		slog.Warn("Anthropic API Key is missing.")
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is missing")
	}
	if model == "" {
		model = DefaultClaudeModel
		slog.Info("CLAUDE_MODEL not set, defaulting to", "model", model)
	}
	if endpoint == "" {
		endpoint = defaultClaudeEndpoint
	} else {
		endpoint = strings.TrimSuffix(endpoint, "/") + "/messages"
	}

	return &ClaudeClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
	}, nil
}

func (a *ClaudeClient) Name() string { return ProviderClaude }

func (a *ClaudeClient) Model() string { return a.model }

// Complete implements the Client interface.
func (a *ClaudeClient) Complete(ctx context.Context, messages []Message, params GenerationParams) (string, error) {
	var apiMessages []claudeMessage
	var systemPrompt string

	// Anthropic takes the system prompt at the top level, not as a
	// message role.
	for _, msg := range messages {
		if strings.ToLower(msg.Role) == "system" {
			systemPrompt = msg.Content
			continue
		}
		apiMessages = append(apiMessages, claudeMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	var systemBlocks []systemBlock
	if systemPrompt != "" {
		systemBlocks = append(systemBlocks, systemBlock{Type: "text", Text: systemPrompt})
	}

	model := a.model
	if params.Model != "" {
		model = params.Model
	}

	reqPayload := claudeRequest{
		Model:       model,
		Messages:    apiMessages,
		System:      systemBlocks,
		MaxTokens:   claudeDefaultMaxTokens,
		Temperature: params.Temperature,
	}
	if params.MaxTokens != nil {
		reqPayload.MaxTokens = *params.MaxTokens
	}

	reqBodyBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.endpoint, bytes.NewBuffer(reqBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)
	req.Header.Set("content-type", "application/json")

	slog.Debug("Sending REST request to Anthropic", "model", model)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider:   ProviderClaude,
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	var apiResp claudeResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse response JSON: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("anthropic API error: %s - %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("received empty content from Anthropic")
	}

	finalText := ""
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			finalText += block.Text
		}
	}
	if finalText == "" {
		return "", fmt.Errorf("received content but no text block found")
	}

	return finalText, nil
}
