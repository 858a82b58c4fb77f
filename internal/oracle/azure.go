package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds configuration for the Azure OpenAI chat-completions client.
type Config struct {
	// Endpoint is the resource endpoint, e.g.
	// "https://myresource.openai.azure.com". Required.
	Endpoint string

	// APIKey is sent in the api-key header. Required.
	APIKey string

	// Deployment is the name of the model deployment to address. Required.
	Deployment string

	// APIVersion selects the service API version.
	// Defaults to "2024-06-01" if empty.
	APIVersion string

	// HTTPClient allows injecting a custom HTTP client (useful for testing).
	// Defaults to a client with 30s timeout.
	HTTPClient *http.Client
}

// Azure is a chat-completions client for an Azure OpenAI deployment.
type Azure struct {
	config Config
	http   *http.Client
}

// NewAzure creates a new Azure OpenAI client with the given configuration.
// Credential presence is the config layer's problem; a missing key simply
// surfaces as an auth error on the first call.
func NewAzure(cfg Config) *Azure {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-06-01"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Azure{
		config: cfg,
		http:   httpClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Generate sends one chat-completions request and returns the first
// choice's content, trimmed. There is no retry; callers own the failure
// policy.
func (a *Azure) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	base := a.config.Endpoint
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(base, "/"), a.config.Deployment, a.config.APIVersion)

	body, err := json.Marshal(chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: sampleTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("oracle: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("oracle: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", a.config.APIKey)

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("oracle: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// The service wraps most failures in {"error": {...}}.
		var envelope struct {
			Error *APIError `json:"error"`
		}
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error != nil {
			envelope.Error.StatusCode = resp.StatusCode
			return "", envelope.Error
		}
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("oracle: invalid response JSON: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("oracle: response contained no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
