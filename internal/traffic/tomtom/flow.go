// Package tomtom implements the two external traffic feed adapters against
// the TomTom Traffic APIs: flow segment data and incident details. The two
// adapters are independent, each with its own client, circuit breaker, and
// timeout, and each makes a single best-effort attempt per call.
package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/citypulse/citypulse/internal/provider/resilience"
	"github.com/citypulse/citypulse/internal/traffic"
)

const (
	// FlowProviderName identifies the flow-speed adapter.
	FlowProviderName = "tomtom-flow"

	// DefaultBaseURL is the TomTom API base URL.
	DefaultBaseURL = "https://api.tomtom.com"

	// DefaultAdapterTimeout bounds each adapter call. Adapters are
	// best-effort and unretried, so this is also the worst-case latency
	// they add to an aggregation.
	DefaultAdapterTimeout = 4 * time.Second
)

// FlowClientConfig holds configuration for the flow adapter.
type FlowClientConfig struct {
	// APIKey is the TomTom API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to TomTom).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a single-attempt resilient client.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// FlowClient is the flow segment data adapter.
type FlowClient struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewFlowClient creates a new flow adapter.
func NewFlowClient(cfg FlowClientConfig) *FlowClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.AdapterClientConfig(FlowProviderName, DefaultAdapterTimeout))
	}

	return &FlowClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *FlowClient) Name() string {
	return FlowProviderName
}

// GetFlow fetches the flow segment observation nearest to the point.
func (c *FlowClient) GetFlow(ctx context.Context, lat, lon float64) (*traffic.FlowObservation, error) {
	url := fmt.Sprintf("%s/traffic/services/4/flowSegmentData/absolute/10/json?point=%.6f,%.6f&unit=KMPH&key=%s",
		c.baseURL, lat, lon, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var ttResp flowSegmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&ttResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &traffic.FlowObservation{
		CurrentSpeed:  ttResp.FlowSegmentData.CurrentSpeed,
		FreeFlowSpeed: ttResp.FlowSegmentData.FreeFlowSpeed,
		Confidence:    ttResp.FlowSegmentData.Confidence,
		FetchedAt:     time.Now(),
	}, nil
}

// TomTom flow segment response structure.

type flowSegmentResponse struct {
	FlowSegmentData struct {
		FRC                string  `json:"frc"`
		CurrentSpeed       float64 `json:"currentSpeed"`
		FreeFlowSpeed      float64 `json:"freeFlowSpeed"`
		CurrentTravelTime  float64 `json:"currentTravelTime"`
		FreeFlowTravelTime float64 `json:"freeFlowTravelTime"`
		Confidence         float64 `json:"confidence"`
		RoadClosure        bool    `json:"roadClosure"`
	} `json:"flowSegmentData"`
}
