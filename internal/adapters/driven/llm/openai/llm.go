// Package openai provides a model driver for the OpenAI chat completions API.
// Any OpenAI-compatible endpoint can be used by changing BaseURL.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/llm"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/logger"
)

// Ensure Driver implements the interface.
var _ driven.ModelDriver = (*Driver)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second
)

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("openai: API key is required")

// Config holds configuration for the OpenAI driver.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the model to use (default: gpt-4o-mini).
	Model string

	// System is an optional system message sent with every query.
	System string

	MaxTokens   int
	Temperature float64

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond throttles queries. Zero disables throttling.
	RequestsPerSecond float64
}

// Driver sends queries to the OpenAI API.
type Driver struct {
	client *http.Client
	cfg    Config
	gate   *llm.Gate
}

// chatCompletionRequest is the OpenAI /chat/completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

// chatCompletionMsg is the OpenAI chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the OpenAI /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// New creates an OpenAI driver. The driver is not connected.
func New(cfg Config) (*Driver, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Driver{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		gate:   llm.NewGate(cfg.RequestsPerSecond),
	}, nil
}

// Connect verifies the API key against the /models endpoint.
func (d *Driver) Connect(ctx context.Context) error {
	if err := d.Ping(ctx); err != nil {
		return err
	}
	d.gate.Open()
	logger.Debug("openai: connected to %s (model %s)", d.cfg.BaseURL, d.cfg.Model)
	return nil
}

// Disconnect releases idle connections.
func (d *Driver) Disconnect(_ context.Context) error {
	d.gate.Close()
	d.client.CloseIdleConnections()
	return nil
}

// Query sends input as a user message and returns the first choice.
func (d *Driver) Query(ctx context.Context, input string) (string, error) {
	if err := d.gate.Enter(ctx); err != nil {
		return "", err
	}

	var messages []chatCompletionMsg
	if d.cfg.System != "" {
		messages = append(messages, chatCompletionMsg{Role: "system", Content: d.cfg.System})
	}
	messages = append(messages, chatCompletionMsg{Role: "user", Content: input})

	reqBody := chatCompletionRequest{
		Model:       d.cfg.Model,
		Messages:    messages,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.cfg.BaseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ModelName returns the configured model.
func (d *Driver) ModelName() string {
	return d.cfg.Model
}

// Ping validates the API key by listing models.
func (d *Driver) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.cfg.BaseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openai: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
