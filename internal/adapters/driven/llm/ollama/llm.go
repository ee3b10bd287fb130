// Package ollama provides a model driver backed by a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
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
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Ollama driver.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to use (default: llama3.2).
	Model string

	// System is an optional system prompt sent with every query.
	System string

	// MaxTokens caps the response length. Zero uses the model default.
	MaxTokens int

	// Temperature controls sampling. Zero uses the model default.
	Temperature float64

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond throttles queries. Zero disables throttling.
	RequestsPerSecond float64
}

// Driver sends queries to an Ollama server.
type Driver struct {
	client *http.Client
	cfg    Config
	gate   *llm.Gate
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	System  string   `json:"system,omitempty"`
	Stream  bool     `json:"stream"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// New creates an Ollama driver. The driver is not connected.
func New(cfg Config) *Driver {
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
	}
}

// Connect checks that the server is reachable.
func (d *Driver) Connect(ctx context.Context) error {
	if err := d.Ping(ctx); err != nil {
		return err
	}
	d.gate.Open()
	logger.Debug("ollama: connected to %s (model %s)", d.cfg.BaseURL, d.cfg.Model)
	return nil
}

// Disconnect releases idle connections.
func (d *Driver) Disconnect(_ context.Context) error {
	d.gate.Close()
	d.client.CloseIdleConnections()
	return nil
}

// Query sends input as a prompt and returns the completion.
func (d *Driver) Query(ctx context.Context, input string) (string, error) {
	if err := d.gate.Enter(ctx); err != nil {
		return "", err
	}

	reqBody := generateRequest{
		Model:  d.cfg.Model,
		Prompt: input,
		System: d.cfg.System,
		Stream: false,
	}
	if d.cfg.MaxTokens > 0 || d.cfg.Temperature > 0 {
		reqBody.Options = &options{
			NumPredict:  d.cfg.MaxTokens,
			Temperature: d.cfg.Temperature,
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.cfg.BaseURL+"/api/generate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return genResp.Response, nil
}

// ModelName returns the configured model.
func (d *Driver) ModelName() string {
	return d.cfg.Model
}

// Ping validates the server is reachable by checking the /api/tags endpoint.
func (d *Driver) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.cfg.BaseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
