// Package openai implements the analysis backend against an
// OpenAI-compatible chat completions endpoint. Anything that accepts the
// {model, messages, temperature, max_tokens} request shape and answers
// with choices[0].message.content is substitutable.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/citypulse/citypulse/internal/provider/resilience"
)

const (
	// ProviderName identifies this analysis backend.
	ProviderName = "openai"

	// DefaultBaseURL is the OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultMaxTokens bounds the completion length.
	DefaultMaxTokens = 1024

	// DefaultTemperature keeps the analysis output fairly steady.
	DefaultTemperature = 0.4

	// defaultClientTimeout sits above the analysis service's own
	// deadline; the service context is what actually cuts the call off.
	defaultClientTimeout = 10 * time.Second
)

// ClientConfig holds configuration for the chat completions client.
type ClientConfig struct {
	// APIKey is the backend API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to OpenAI).
	BaseURL string

	// Model is the chat model (optional).
	Model string

	// Temperature is the sampling temperature (optional).
	Temperature float64

	// MaxTokens bounds the completion length (optional).
	MaxTokens int

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a single-attempt resilient client: the analysis
	// contract is one request inside a hard deadline, no retries.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a chat completions client.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *resilience.Client
	logger      zerolog.Logger
}

// NewClient creates a new chat completions client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.AdapterClientConfig(ProviderName, defaultClientTimeout))
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient:  httpClient,
		logger:      cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Complete sends one chat completion request and returns the response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Chat completions wire structures.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
